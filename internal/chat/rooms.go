package chat

// Conn is the coordinator's view of one live client connection.
type Conn interface {
	// ID returns the transport's stable identifier for this connection.
	ID() string
	// Send delivers an event directly to this connection, best-effort.
	// It reports false when the event was dropped.
	Send(*Event) bool
}

// Rooms is the room-multicast capability required from the transport layer:
// group connections under a channel name and fan events out to the group.
// Join and Leave return typed results so callers can sequence membership
// changes and surface transport failures as chat errors.
type Rooms interface {
	Join(c Conn, room string) error
	Leave(c Conn, room string) error
	Broadcast(room string, ev *Event)
	// Drop removes a closed connection from every room it is still in.
	Drop(c Conn)
}

// RoomSet is the in-process Rooms implementation: a plain mapping from room
// name to the connections currently in it.
type RoomSet struct {
	rooms map[string]map[string]Conn
}

// NewRoomSet builds an empty room set.
func NewRoomSet() *RoomSet {
	return &RoomSet{rooms: make(map[string]map[string]Conn)}
}

// Join adds the connection to the room, creating the room if absent.
func (r *RoomSet) Join(c Conn, room string) error {
	conns, ok := r.rooms[room]
	if !ok {
		conns = make(map[string]Conn)
		r.rooms[room] = conns
	}
	conns[c.ID()] = c
	return nil
}

// Leave removes the connection from the room. Leaving a room the connection
// is not in is not an error.
func (r *RoomSet) Leave(c Conn, room string) error {
	if conns, ok := r.rooms[room]; ok {
		delete(conns, c.ID())
	}
	return nil
}

// Broadcast sends the event to every connection in the room. Slow consumers
// drop the event rather than blocking the loop.
func (r *RoomSet) Broadcast(room string, ev *Event) {
	for _, c := range r.rooms[room] {
		c.Send(ev)
	}
}

// Drop removes the connection from all rooms.
func (r *RoomSet) Drop(c Conn) {
	for _, conns := range r.rooms {
		delete(conns, c.ID())
	}
}
