package surface

import "sync"

type subscriber[T any] struct {
	id int
	fn func(T)
}

// listeners is a registration-ordered callback list. Callbacks are copied
// under the lock and invoked outside it, so a callback may subscribe or
// unsubscribe without deadlocking.
type listeners[T any] struct {
	mu   sync.Mutex
	next int
	subs []subscriber[T]
}

func (l *listeners[T]) add(fn func(T)) func() {
	l.mu.Lock()
	id := l.next
	l.next++
	l.subs = append(l.subs, subscriber[T]{id: id, fn: fn})
	l.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() { l.remove(id) })
	}
}

func (l *listeners[T]) remove(id int) {
	l.mu.Lock()
	defer l.mu.Unlock()

	for i, s := range l.subs {
		if s.id == id {
			l.subs = append(l.subs[:i:i], l.subs[i+1:]...)
			return
		}
	}
}

func (l *listeners[T]) len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.subs)
}

func (l *listeners[T]) notify(v T) {
	l.mu.Lock()
	fns := make([]func(T), len(l.subs))
	for i, s := range l.subs {
		fns[i] = s.fn
	}
	l.mu.Unlock()

	for _, fn := range fns {
		fn(v)
	}
}
