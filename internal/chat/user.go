package chat

import (
	"sort"

	"github.com/samber/lo"
)

// User is a connected chat participant. ConnID tracks the transport
// connection currently bound to the user and changes on reconnect.
type User struct {
	ID       string
	Name     string
	ConnID   string
	Channels map[string]struct{}
}

// NewUser constructs a user with an empty membership set.
func NewUser(id, name, connID string) *User {
	return &User{
		ID:       id,
		Name:     name,
		ConnID:   connID,
		Channels: make(map[string]struct{}),
	}
}

// ChannelNames returns the user's joined channels in sorted order.
func (u *User) ChannelNames() []string {
	names := lo.Keys(u.Channels)
	sort.Strings(names)
	return names
}

// UserDirectory owns all user records, keyed by user id with a reverse
// index from connection id for disconnect handling.
type UserDirectory struct {
	byID   map[string]*User
	byConn map[string]string
}

// NewUserDirectory builds an empty directory.
func NewUserDirectory() *UserDirectory {
	return &UserDirectory{
		byID:   make(map[string]*User),
		byConn: make(map[string]string),
	}
}

// Upsert inserts or overwrites a user record. A returning id re-attaching on
// a new connection re-points the reverse index.
func (d *UserDirectory) Upsert(u *User) {
	if prev, ok := d.byID[u.ID]; ok && prev.ConnID != u.ConnID {
		delete(d.byConn, prev.ConnID)
	}
	d.byID[u.ID] = u
	d.byConn[u.ConnID] = u.ID
}

// Remove deletes a user record. No-op if absent.
func (d *UserDirectory) Remove(id string) {
	u, ok := d.byID[id]
	if !ok {
		return
	}
	if d.byConn[u.ConnID] == id {
		delete(d.byConn, u.ConnID)
	}
	delete(d.byID, id)
}

// ByID looks up a user by id, nil if absent.
func (d *UserDirectory) ByID(id string) *User {
	return d.byID[id]
}

// ByConn looks up the user bound to a connection id, nil if absent.
// The transport reports connection ids, not user ids, on close.
func (d *UserDirectory) ByConn(connID string) *User {
	id, ok := d.byConn[connID]
	if !ok {
		return nil
	}
	return d.byID[id]
}

// AddMembership records that the user joined the channel.
func (d *UserDirectory) AddMembership(id, channel string) {
	if u, ok := d.byID[id]; ok {
		u.Channels[channel] = struct{}{}
	}
}

// RemoveMembership records that the user left the channel.
func (d *UserDirectory) RemoveMembership(id, channel string) {
	if u, ok := d.byID[id]; ok {
		delete(u.Channels, channel)
	}
}
