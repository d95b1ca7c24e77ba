package core

import (
	"testing"
	"time"
)

func joinTwo(t *testing.T, presence *Presence) (*Conn, *Conn) {
	t.Helper()

	x := NewConn("x", 0)
	y := NewConn("y", 0)
	presence.Connect(x)
	presence.Join(x, "peer-support", "Alice")
	presence.Connect(y)
	presence.Join(y, "peer-support", "Bob")
	drain(x.Events)
	drain(y.Events)
	return x, y
}

func TestMessageEchoesToAllMembers(t *testing.T) {
	_, _, presence, router := newTestCore()
	x, y := joinTwo(t, presence)

	before := time.Now().UTC()
	router.SendMessage("peer-support", "x", "", "hi")

	for _, c := range []*Conn{x, y} {
		ev := mustEvent(t, c.Events, EventMessage)
		if ev.User != "Alice" || ev.Text != "hi" {
			t.Fatalf("unexpected message event: %+v", ev)
		}
		if ev.At.Before(before) || ev.At.Location() != time.UTC {
			t.Fatalf("timestamp should be assigned at broadcast time in UTC: %v", ev.At)
		}
	}
}

func TestWhitespaceMessageIsDropped(t *testing.T) {
	registry, directory, presence, router := newTestCore()
	x, y := joinTwo(t, presence)

	router.SendMessage("peer-support", "x", "", "   ")

	mustNoEvent(t, x.Events)
	mustNoEvent(t, y.Events)
	if directory.Count("peer-support") != 2 {
		t.Fatalf("room state must be unchanged")
	}
	assertConsistent(t, registry, directory)
}

func TestMessageTextIsTrimmed(t *testing.T) {
	_, _, presence, router := newTestCore()
	x, _ := joinTwo(t, presence)

	router.SendMessage("peer-support", "x", "", "  hi there  ")

	ev := mustEvent(t, x.Events, EventMessage)
	if ev.Text != "hi there" {
		t.Fatalf("expected trimmed text, got %q", ev.Text)
	}
}

func TestTypingSkipsSender(t *testing.T) {
	_, _, presence, router := newTestCore()
	x, y := joinTwo(t, presence)

	router.Typing("peer-support", "x", "")

	ev := mustEvent(t, y.Events, EventTyping)
	if ev.User != "Alice" {
		t.Fatalf("unexpected typing event: %+v", ev)
	}
	mustNoEvent(t, x.Events)

	router.StopTyping("peer-support", "x", "")
	mustEvent(t, y.Events, EventStopTyping)
	mustNoEvent(t, x.Events)
}

func TestDisplayNameResolution(t *testing.T) {
	_, _, presence, router := newTestCore()
	_, y := joinTwo(t, presence)

	// Explicit override wins.
	router.SendMessage("peer-support", "x", "Ally", "one")
	if ev := mustEvent(t, y.Events, EventMessage); ev.User != "Ally" {
		t.Fatalf("override should win, got %q", ev.User)
	}

	// Falls back to the sender's last known name.
	router.SendMessage("peer-support", "x", "", "two")
	if ev := mustEvent(t, y.Events, EventMessage); ev.User != "Alice" {
		t.Fatalf("expected registry name, got %q", ev.User)
	}

	// Unknown sender falls back to the anonymous default.
	router.SendMessage("peer-support", "ghost", "", "three")
	if ev := mustEvent(t, y.Events, EventMessage); ev.User != Anonymous {
		t.Fatalf("expected %q, got %q", Anonymous, ev.User)
	}
}

func TestSequentialMessagesObservedInOrder(t *testing.T) {
	_, _, presence, router := newTestCore()
	x, y := joinTwo(t, presence)

	router.SendMessage("peer-support", "x", "", "first")
	router.SendMessage("peer-support", "y", "", "second")

	for _, c := range []*Conn{x, y} {
		msg1 := mustEvent(t, c.Events, EventMessage)
		msg2 := mustEvent(t, c.Events, EventMessage)
		if msg1.Text != "first" || msg2.Text != "second" {
			t.Fatalf("messages out of order: %q then %q", msg1.Text, msg2.Text)
		}
		if msg2.At.Before(msg1.At) {
			t.Fatalf("timestamps must be non-decreasing: %v then %v", msg1.At, msg2.At)
		}
	}
}

func TestMessageToUnknownRoomIsNoOp(t *testing.T) {
	_, directory, presence, router := newTestCore()
	x, _ := joinTwo(t, presence)

	router.SendMessage("ghost", "x", "", "anyone here?")

	mustNoEvent(t, x.Events)
	if directory.Count("ghost") != 0 {
		t.Fatalf("sending must not create rooms")
	}
}
