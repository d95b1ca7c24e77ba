package core

import (
	"testing"

	"github.com/rs/zerolog"
)

func testLogger() *zerolog.Logger {
	logger := zerolog.Nop()
	return &logger
}

func newTestCore() (*Registry, *Directory, *Presence, *Router) {
	logger := testLogger()
	registry := NewRegistry(logger)
	directory := NewDirectory()
	return registry, directory,
		NewPresence(registry, directory, logger),
		NewRouter(registry, directory, logger)
}

// mustEvent pops the next pending event and asserts its kind. Core
// operations enqueue synchronously, so an expected event is either
// already buffered or missing for good.
func mustEvent(t *testing.T, ch <-chan *Event, kind EventKind) *Event {
	t.Helper()

	select {
	case ev := <-ch:
		if ev.Kind != kind {
			t.Fatalf("expected event kind %v, got %+v", kind, ev)
		}
		return ev
	default:
		t.Fatalf("expected event kind %v, channel empty", kind)
		return nil
	}
}

func mustNoEvent(t *testing.T, ch <-chan *Event) {
	t.Helper()

	select {
	case ev := <-ch:
		t.Fatalf("unexpected event: %+v", ev)
	default:
	}
}

func drain(ch <-chan *Event) {
	for {
		select {
		case <-ch:
		default:
			return
		}
	}
}

// assertConsistent checks the bidirectional membership invariant: every
// registered connection with a room is in that room's member set, every
// member maps back to a matching record, and no empty room survives.
func assertConsistent(t *testing.T, registry *Registry, directory *Directory) {
	t.Helper()

	registry.mu.RLock()
	conns := make(map[string]Record, len(registry.conns))
	for id, rec := range registry.conns {
		conns[id] = rec
	}
	registry.mu.RUnlock()

	directory.mu.RLock()
	rooms := make(map[string]*room, len(directory.rooms))
	for id, r := range directory.rooms {
		rooms[id] = r
	}
	directory.mu.RUnlock()

	for id, rec := range conns {
		if rec.Room == "" {
			continue
		}
		r := rooms[rec.Room]
		if r == nil {
			t.Fatalf("connection %s claims room %s which does not exist", id, rec.Room)
		}
		r.mu.Lock()
		_, ok := r.members[id]
		r.mu.Unlock()
		if !ok {
			t.Fatalf("connection %s missing from member set of room %s", id, rec.Room)
		}
	}

	for roomID, r := range rooms {
		r.mu.Lock()
		ids := make([]string, 0, len(r.members))
		for id := range r.members {
			ids = append(ids, id)
		}
		r.mu.Unlock()

		if len(ids) == 0 {
			t.Fatalf("room %s persists with an empty member set", roomID)
		}
		for _, id := range ids {
			rec, ok := conns[id]
			if !ok || rec.Room != roomID {
				t.Fatalf("room %s holds connection %s which is not registered there", roomID, id)
			}
		}
	}
}
