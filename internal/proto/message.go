package proto

import "encoding/json"

// Inbound is the envelope for frames coming from the client. Connect
// and disconnect have no frame: they are the socket lifecycle itself.
type Inbound struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

const (
	InboundTypeJoin       = "join"
	InboundTypeMessage    = "message"
	InboundTypeTyping     = "typing"
	InboundTypeStopTyping = "stop_typing"
)

// Outbound event names.
const (
	EventUserJoined = "user_joined"
	EventUserCount  = "user_count"
	EventUserLeft   = "user_left"
	EventMessage    = "message"
	EventTyping     = "user_typing"
	EventStopTyping = "user_stopped_typing"
	EventError      = "error"
)

// JoinData requests to join a room. Both fields default server-side:
// the room to the configured default room, the username to "Anonymous".
type JoinData struct {
	Room     string `json:"room"`
	Username string `json:"username"`
}

// MessageData is a chat message from the client. Username, when set,
// overrides the display name the sender joined with.
type MessageData struct {
	Room     string `json:"room"`
	Message  string `json:"message"`
	Username string `json:"username,omitempty"`
}

// TypingData signals the start or end of typing.
type TypingData struct {
	Room     string `json:"room"`
	Username string `json:"username,omitempty"`
}

// Outbound is the envelope for frames pushed to the client. Data is a
// bare integer for user_count and a payload struct otherwise.
type Outbound struct {
	Event string `json:"event"`
	Data  any    `json:"data,omitempty"`
	Error *Error `json:"error,omitempty"`
}

// UserJoined notifies room members that someone joined.
type UserJoined struct {
	Username  string `json:"username"`
	UserCount int    `json:"user_count"`
}

// UserLeft notifies remaining members that someone left.
type UserLeft struct {
	Username  string `json:"username"`
	UserCount int    `json:"user_count"`
}

// ChatMessage carries one chat message. Timestamp is ISO-8601 UTC.
type ChatMessage struct {
	Username  string `json:"username"`
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
}

// TypingUser names who is, or stopped, typing.
type TypingUser struct {
	Username string `json:"username"`
}

// Error describes a protocol-level reject. The frame that caused it is
// dropped; the connection stays up.
type Error struct {
	Code string `json:"code"`
	Msg  string `json:"msg"`
}
