// Package osc delivers surface messages to the DAW over UDP.
package osc

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"strings"
	"sync/atomic"

	"github.com/scgolang/osc"
)

// DefaultQueueSize is used when the config does not set one.
const DefaultQueueSize = 256

type sender interface {
	Send(osc.Packet) error
	Close() error
}

type message struct {
	address string
	value   float64
}

// Client is a fire-and-forget gateway: Send enqueues and returns, Run drains
// the queue onto the socket. Messages that do not fit the queue are dropped
// and logged; send failures are logged and never reach the caller.
type Client struct {
	conn    sender
	queue   chan message
	logger  *slog.Logger
	dropped atomic.Int64
	failed  atomic.Int64
}

// Dial connects to the DAW's OSC port.
func Dial(host string, port, queueSize int) (*Client, error) {
	raddr, err := net.ResolveUDPAddr("udp", net.JoinHostPort(host, fmt.Sprint(port)))
	if err != nil {
		return nil, fmt.Errorf("osc: resolve %s:%d: %w", host, port, err)
	}
	conn, err := osc.DialUDP("udp", nil, raddr)
	if err != nil {
		return nil, fmt.Errorf("osc: dial %s: %w", raddr, err)
	}
	return newClient(conn, queueSize, slog.Default().With("component", "osc", "remote", raddr.String())), nil
}

func newClient(conn sender, queueSize int, logger *slog.Logger) *Client {
	if queueSize <= 0 {
		queueSize = DefaultQueueSize
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		conn:   conn,
		queue:  make(chan message, queueSize),
		logger: logger,
	}
}

// Send queues one message. It never blocks.
func (c *Client) Send(address string, value float64) {
	select {
	case c.queue <- message{address: Address(address), value: value}:
	default:
		c.dropped.Add(1)
		c.logger.Warn("queue full, message dropped", "address", address, "value", value)
	}
}

// Run sends queued messages until ctx is canceled.
func (c *Client) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case m := <-c.queue:
			c.deliver(m)
		}
	}
}

func (c *Client) deliver(m message) {
	pkt := &osc.Message{
		Address:   m.address,
		Arguments: osc.Arguments{osc.Float(float32(m.value))},
	}
	if err := c.conn.Send(pkt); err != nil {
		c.failed.Add(1)
		c.logger.Warn("send failed", "address", m.address, "value", m.value, "err", err)
		return
	}
	c.logger.Debug("sent", "address", m.address, "value", m.value)
}

// Dropped returns how many messages were discarded because the queue was full.
func (c *Client) Dropped() int64 { return c.dropped.Load() }

// Failed returns how many messages the socket refused.
func (c *Client) Failed() int64 { return c.failed.Load() }

// Close closes the socket.
func (c *Client) Close() error {
	if err := c.conn.Close(); err != nil {
		return fmt.Errorf("osc: close: %w", err)
	}
	return nil
}

// Address returns addr with the leading slash OSC requires.
func Address(addr string) string {
	if strings.HasPrefix(addr, "/") {
		return addr
	}
	return "/" + addr
}
