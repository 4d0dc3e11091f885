package chat

import (
	"errors"
	"testing"
	"time"
)

// testConn is an in-memory Conn capturing emitted events.
type testConn struct {
	id     string
	events chan *Event
}

func newTestConn(id string) *testConn {
	return &testConn{
		id:     id,
		events: make(chan *Event, 64),
	}
}

func (c *testConn) ID() string { return c.id }

func (c *testConn) Send(ev *Event) bool {
	select {
	case c.events <- ev:
		return true
	default:
		return false
	}
}

// drain returns every event buffered so far without blocking.
func (c *testConn) drain() []*Event {
	var evs []*Event
	for {
		select {
		case ev := <-c.events:
			evs = append(evs, ev)
		default:
			return evs
		}
	}
}

func findEvent(evs []*Event, kind EventKind) *Event {
	for _, ev := range evs {
		if ev.Kind == kind {
			return ev
		}
	}
	return nil
}

func findError(evs []*Event, errType string) *Event {
	for _, ev := range evs {
		if ev.Kind == EventChatError && ev.Error != nil && ev.Error.Type == errType {
			return ev
		}
	}
	return nil
}

func mustEvent(t testing.TB, ch <-chan *Event, kind EventKind) *Event {
	t.Helper()

	deadline := time.After(2 * time.Second)
	for {
		select {
		case ev := <-ch:
			if ev != nil && ev.Kind == kind {
				return ev
			}
		case <-deadline:
			t.Fatalf("expected event kind %v not received", kind)
			return nil
		}
	}
}

// flakyRooms wraps a RoomSet with injectable transport failures.
type flakyRooms struct {
	*RoomSet
	failJoin  bool
	failLeave bool
}

var errTransportDown = errors.New("transport down")

func (f *flakyRooms) Join(c Conn, room string) error {
	if f.failJoin {
		return errTransportDown
	}
	return f.RoomSet.Join(c, room)
}

func (f *flakyRooms) Leave(c Conn, room string) error {
	if f.failLeave {
		return errTransportDown
	}
	return f.RoomSet.Leave(c, room)
}
