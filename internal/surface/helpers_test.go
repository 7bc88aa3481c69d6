package surface

type message struct {
	Address string
	Value   float64
}

type recorder struct {
	msgs []message
}

func (r *recorder) Send(address string, value float64) {
	r.msgs = append(r.msgs, message{Address: address, Value: value})
}

func (r *recorder) addresses() []string {
	out := make([]string, len(r.msgs))
	for i, m := range r.msgs {
		out[i] = m.Address
	}
	return out
}

type redraws struct {
	ids []string
}

func (r *redraws) RequestRedraw(id string) { r.ids = append(r.ids, id) }

func (r *redraws) count(id string) int {
	n := 0
	for _, v := range r.ids {
		if v == id {
			n++
		}
	}
	return n
}
