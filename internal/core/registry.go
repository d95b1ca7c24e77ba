package core

import (
	"sync"

	"github.com/rs/zerolog"
)

// Anonymous is the display name used when a client never supplied one.
const Anonymous = "Anonymous"

// Record describes one registered connection.
type Record struct {
	Name string
	Room string // empty while the connection occupies no room
}

// Registry tracks live connections: id, display name, and the room the
// connection currently occupies. It owns nothing but its own map and
// never broadcasts; Presence is the only writer of room membership.
type Registry struct {
	mu    sync.RWMutex
	conns map[string]Record
	log   *zerolog.Logger
}

// NewRegistry constructs an empty registry.
func NewRegistry(logger *zerolog.Logger) *Registry {
	return &Registry{
		conns: make(map[string]Record),
		log:   logger,
	}
}

// Register creates a record with no room and the default display name.
// Registering an id twice overwrites the previous record rather than
// corrupting it.
func (r *Registry) Register(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.conns[id] = Record{Name: Anonymous}
}

// Forget removes the record for id and returns it. ok is false when the
// id was unknown, which makes repeated disconnects a no-op.
func (r *Registry) Forget(id string) (Record, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec, ok := r.conns[id]
	if ok {
		delete(r.conns, id)
	}
	return rec, ok
}

// SetRoom updates the current room and display name for id. Unknown ids
// are logged and ignored.
func (r *Registry) SetRoom(id, room, name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.conns[id]; !ok {
		r.log.Warn().Str("conn_id", id).Str("room", room).Msg("set room for unknown connection")
		return
	}
	r.conns[id] = Record{Name: name, Room: room}
}

// Lookup returns the record for id.
func (r *Registry) Lookup(id string) (Record, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rec, ok := r.conns[id]
	return rec, ok
}

// Len returns the number of live connections.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.conns)
}
