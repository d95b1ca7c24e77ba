package core

import "time"

// EventKind is a notification the core emits to connections.
type EventKind int

const (
	// EventMessage carries a chat message to every room member,
	// sender included.
	EventMessage EventKind = iota
	// EventUserJoined notifies existing members that someone joined.
	EventUserJoined
	// EventUserLeft notifies remaining members that someone left.
	EventUserLeft
	// EventUserCount carries the current member count of a room.
	EventUserCount
	// EventTyping notifies members, except the sender, that someone
	// started typing.
	EventTyping
	// EventStopTyping notifies members, except the sender, that someone
	// stopped typing.
	EventStopTyping
)

// Event describes something that happened in a room. User is the
// display name captured when the event was built; a later rename never
// rewrites an already-emitted event.
type Event struct {
	Kind  EventKind
	Room  string
	User  string
	Count int
	Text  string
	At    time.Time // message timestamp, UTC
}
