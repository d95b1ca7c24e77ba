package core

import (
	"strings"

	"github.com/rs/zerolog"
)

// Presence drives the per-connection lifecycle: connect, join with an
// implicit leave when switching rooms, and disconnect. It keeps the
// registry and the directory in agreement about membership; no other
// component mutates either.
type Presence struct {
	registry  *Registry
	directory *Directory
	log       *zerolog.Logger
}

// NewPresence wires the coordinator to its owned state.
func NewPresence(registry *Registry, directory *Directory, logger *zerolog.Logger) *Presence {
	return &Presence{
		registry:  registry,
		directory: directory,
		log:       logger,
	}
}

// Connect registers the connection. Nothing is broadcast.
func (p *Presence) Connect(c *Conn) {
	p.registry.Register(c.ID)
	p.log.Debug().Str("conn_id", c.ID).Msg("client connected")
}

// Join places the connection into roomID under the given display name.
// A connection occupies at most one room: when it is already in a
// different room it leaves that room first, with the usual leave
// broadcast. Other members of the new room get user_joined; the joiner
// alone gets user_count.
func (p *Presence) Join(c *Conn, roomID, name string) {
	if strings.TrimSpace(name) == "" {
		name = Anonymous
	}

	rec, ok := p.registry.Lookup(c.ID)
	if !ok {
		p.log.Warn().Str("conn_id", c.ID).Str("room", roomID).Msg("join from unknown connection")
		return
	}
	if rec.Room != "" && rec.Room != roomID {
		p.leaveRoom(c.ID, rec.Room, rec.Name)
	}

	p.directory.Join(roomID, c, name, func(count int, members []Member) {
		joined := &Event{Kind: EventUserJoined, Room: roomID, User: name, Count: count}
		for _, m := range members {
			if m.Conn.ID == c.ID {
				continue
			}
			deliver(p.log, m.Conn, joined)
		}
		deliver(p.log, c, &Event{Kind: EventUserCount, Room: roomID, Count: count})
	})
	p.registry.SetRoom(c.ID, roomID, name)

	p.log.Debug().Str("conn_id", c.ID).Str("room", roomID).Str("user", name).Msg("joined room")
}

// Disconnect forgets the connection and, when it occupied a room,
// removes it there and notifies the remaining members. Calling it again
// for the same id is a no-op: the registry record is the single gate,
// so a disconnect racing an explicit leave never double-broadcasts.
func (p *Presence) Disconnect(connID string) {
	rec, ok := p.registry.Forget(connID)
	if !ok {
		return
	}
	if rec.Room != "" {
		p.leaveRoom(connID, rec.Room, rec.Name)
	}
	p.log.Debug().Str("conn_id", connID).Msg("client disconnected")
}

// leaveRoom removes the connection from roomID and broadcasts user_left
// plus user_count to whoever remains. When the room emptied there is no
// one left to notify and the room itself is already gone.
func (p *Presence) leaveRoom(connID, roomID, name string) {
	p.directory.Leave(roomID, connID, func(count int, remaining []Member) {
		left := &Event{Kind: EventUserLeft, Room: roomID, User: name, Count: count}
		countEv := &Event{Kind: EventUserCount, Room: roomID, Count: count}
		for _, m := range remaining {
			deliver(p.log, m.Conn, left)
			deliver(p.log, m.Conn, countEv)
		}
	})
}
