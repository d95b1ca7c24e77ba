package core

import "github.com/rs/zerolog"

// DefaultEventBuffer is used when a connection is created with a
// non-positive buffer size.
const DefaultEventBuffer = 32

// Conn is one live transport session as seen by the core layer. The
// transport drains Events in its own write loop; the core never blocks
// on a connection.
type Conn struct {
	ID     string
	Events chan *Event
}

// NewConn constructs a connection with a buffered event channel.
func NewConn(id string, buffer int) *Conn {
	if buffer <= 0 {
		buffer = DefaultEventBuffer
	}
	return &Conn{
		ID:     id,
		Events: make(chan *Event, buffer),
	}
}

// enqueue hands an event to the connection without blocking. Returns
// false when the buffer is full and the event was dropped.
func (c *Conn) enqueue(ev *Event) bool {
	select {
	case c.Events <- ev:
		return true
	default:
		return false
	}
}

// deliver enqueues ev for c, logging a drop when the consumer is too
// slow to keep up. A drop affects that connection only.
func deliver(logger *zerolog.Logger, c *Conn, ev *Event) {
	if !c.enqueue(ev) {
		logger.Debug().
			Str("conn_id", c.ID).
			Str("room", ev.Room).
			Msg("event dropped for slow consumer")
	}
}
