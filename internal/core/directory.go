package core

import "sync"

// Member is a room occupant as seen by fan-out callbacks.
type Member struct {
	Conn *Conn
	Name string
}

type room struct {
	mu      sync.Mutex
	members map[string]Member // keyed by connection id
	// gone marks a room that emptied out and was unlinked from the
	// directory; a join that raced the deletion re-resolves the room.
	gone bool
}

func (r *room) snapshot() []Member {
	out := make([]Member, 0, len(r.members))
	for _, m := range r.members {
		out = append(out, m)
	}
	return out
}

// Directory maps room ids to member sets. Rooms are created on first
// join and deleted the moment their member set empties; an empty room
// never lingers. Each room carries its own mutex, so operations on
// different rooms proceed independently. The emit callbacks run while
// the room is still serialized, which is what makes broadcasts observe
// invocation order per room; callbacks must only enqueue, never block.
type Directory struct {
	mu    sync.RWMutex
	rooms map[string]*room
}

// NewDirectory constructs an empty directory.
func NewDirectory() *Directory {
	return &Directory{rooms: make(map[string]*room)}
}

// acquire returns the room locked, creating it when create is set.
// Returns nil for an unknown room when create is false. The caller
// must release room.mu.
func (d *Directory) acquire(roomID string, create bool) *room {
	for {
		d.mu.RLock()
		r := d.rooms[roomID]
		d.mu.RUnlock()

		if r == nil {
			if !create {
				return nil
			}
			d.mu.Lock()
			r = d.rooms[roomID]
			if r == nil {
				r = &room{members: make(map[string]Member)}
				d.rooms[roomID] = r
			}
			d.mu.Unlock()
		}

		r.mu.Lock()
		if r.gone {
			r.mu.Unlock()
			continue
		}
		return r
	}
}

// Join inserts the connection into the room's member set, creating the
// room if absent, and returns the new member count. Joining a room the
// connection is already in overwrites the stored display name and
// leaves the count unchanged. emit, when non-nil, observes the count
// and the full member set.
func (d *Directory) Join(roomID string, c *Conn, name string, emit func(count int, members []Member)) int {
	r := d.acquire(roomID, true)
	defer r.mu.Unlock()

	r.members[c.ID] = Member{Conn: c, Name: name}
	count := len(r.members)
	if emit != nil {
		emit(count, r.snapshot())
	}
	return count
}

// Leave removes the connection from the room and returns the
// post-removal member count, deleting the room entirely when the set
// empties. Leaving a room the connection is not in, or a room that does
// not exist, is a no-op that still reports the current count; emit runs
// only when a member was actually removed.
func (d *Directory) Leave(roomID, connID string, emit func(count int, remaining []Member)) int {
	r := d.acquire(roomID, false)
	if r == nil {
		return 0
	}
	defer r.mu.Unlock()

	_, present := r.members[connID]
	if present {
		delete(r.members, connID)
	}
	count := len(r.members)
	if count == 0 {
		r.gone = true
		d.mu.Lock()
		delete(d.rooms, roomID)
		d.mu.Unlock()
	}
	if present && emit != nil {
		emit(count, r.snapshot())
	}
	return count
}

// Fanout runs emit with the room's current member set while the room is
// serialized. Unknown rooms yield an empty set.
func (d *Directory) Fanout(roomID string, emit func(members []Member)) {
	r := d.acquire(roomID, false)
	if r == nil {
		emit(nil)
		return
	}
	defer r.mu.Unlock()
	emit(r.snapshot())
}

// Count returns the current member count, 0 when the room does not
// exist.
func (d *Directory) Count(roomID string) int {
	r := d.acquire(roomID, false)
	if r == nil {
		return 0
	}
	defer r.mu.Unlock()
	return len(r.members)
}

// Rooms returns a snapshot of active room ids and their member counts.
func (d *Directory) Rooms() map[string]int {
	d.mu.RLock()
	refs := make(map[string]*room, len(d.rooms))
	for id, r := range d.rooms {
		refs[id] = r
	}
	d.mu.RUnlock()

	counts := make(map[string]int, len(refs))
	for id, r := range refs {
		r.mu.Lock()
		if !r.gone && len(r.members) > 0 {
			counts[id] = len(r.members)
		}
		r.mu.Unlock()
	}
	return counts
}
