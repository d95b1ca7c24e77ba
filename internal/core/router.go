package core

import (
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Router fans chat messages and typing signals out to room members. It
// reads the registry for display-name resolution but never mutates
// membership.
type Router struct {
	registry  *Registry
	directory *Directory
	log       *zerolog.Logger
}

// NewRouter wires the router to the shared state.
func NewRouter(registry *Registry, directory *Directory, logger *zerolog.Logger) *Router {
	return &Router{
		registry:  registry,
		directory: directory,
		log:       logger,
	}
}

// SendMessage broadcasts text to every member of the room, the sender
// included; the echo is the sender's confirmation of delivery.
// Whitespace-only text is dropped without a broadcast and the trimmed
// form is what goes out. The timestamp is assigned at broadcast time.
func (r *Router) SendMessage(roomID, senderID, nameOverride, text string) {
	text = strings.TrimSpace(text)
	if text == "" {
		r.log.Debug().Str("conn_id", senderID).Str("room", roomID).Msg("dropping empty message")
		return
	}

	name := r.resolveName(senderID, nameOverride)
	r.directory.Fanout(roomID, func(members []Member) {
		ev := &Event{
			Kind: EventMessage,
			Room: roomID,
			User: name,
			Text: text,
			At:   time.Now().UTC(),
		}
		for _, m := range members {
			deliver(r.log, m.Conn, ev)
		}
	})
}

// Typing notifies every member of the room except the sender that the
// sender started typing. The signal is transient: members joining later
// never see it.
func (r *Router) Typing(roomID, senderID, nameOverride string) {
	r.signal(EventTyping, roomID, senderID, nameOverride)
}

// StopTyping is the counterpart of Typing.
func (r *Router) StopTyping(roomID, senderID, nameOverride string) {
	r.signal(EventStopTyping, roomID, senderID, nameOverride)
}

func (r *Router) signal(kind EventKind, roomID, senderID, nameOverride string) {
	name := r.resolveName(senderID, nameOverride)
	r.directory.Fanout(roomID, func(members []Member) {
		ev := &Event{Kind: kind, Room: roomID, User: name}
		for _, m := range members {
			if m.Conn.ID == senderID {
				continue
			}
			deliver(r.log, m.Conn, ev)
		}
	})
}

// resolveName prefers the explicit override, then the sender's last
// known display name, then the anonymous default.
func (r *Router) resolveName(senderID, override string) string {
	if s := strings.TrimSpace(override); s != "" {
		return s
	}
	if rec, ok := r.registry.Lookup(senderID); ok && rec.Name != "" {
		return rec.Name
	}
	return Anonymous
}
