package chat

// Channel is a named room with an optional shared password and a member set
// of user ids. The password is fixed at creation; an empty password means the
// channel is open to anyone.
type Channel struct {
	Name     string
	Password string
	Members  map[string]struct{}
}

// CheckPassword reports whether the supplied password grants entry.
// Open channels accept anything, including the empty string.
func (c *Channel) CheckPassword(supplied string) bool {
	return c.Password == "" || c.Password == supplied
}

// ChannelRegistry owns all channel records keyed by name. Channels are
// created on first reference and never deleted, even once empty.
type ChannelRegistry struct {
	channels map[string]*Channel
}

// NewChannelRegistry builds an empty registry.
func NewChannelRegistry() *ChannelRegistry {
	return &ChannelRegistry{channels: make(map[string]*Channel)}
}

// Create registers a channel under req.Name if not already present and
// returns the record. An existing channel wins over the new descriptor.
func (r *ChannelRegistry) Create(name, password string) *Channel {
	if ch, ok := r.channels[name]; ok {
		return ch
	}
	ch := &Channel{
		Name:     name,
		Password: password,
		Members:  make(map[string]struct{}),
	}
	r.channels[name] = ch
	return ch
}

// Get looks up a channel by name, nil if absent.
func (r *ChannelRegistry) Get(name string) *Channel {
	return r.channels[name]
}

// AddMember inserts a user id into the channel's member set.
func (r *ChannelRegistry) AddMember(name, userID string) {
	if ch, ok := r.channels[name]; ok {
		ch.Members[userID] = struct{}{}
	}
}

// RemoveMember deletes a user id from the channel's member set.
func (r *ChannelRegistry) RemoveMember(name, userID string) {
	if ch, ok := r.channels[name]; ok {
		delete(ch.Members, userID)
	}
}
