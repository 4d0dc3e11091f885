package chat

import (
	"context"
	"fmt"
	"math/rand/v2"
	"sort"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/samber/lo"
)

// Coordinator drives the membership state machine: it validates inbound
// commands against directory/registry state, mutates them, and emits events
// to the originating connection and to channel rooms. All state mutation
// happens on the Run goroutine, so the owned structures need no locking.
type Coordinator struct {
	// Commands is the inbound event queue. Transport sessions write to it;
	// only Run reads from it.
	Commands chan *Command

	users    *UserDirectory
	channels *ChannelRegistry
	messages *MessageStore
	rooms    Rooms
	log      *zerolog.Logger
}

// NewCoordinator wires a coordinator over the given room transport.
// historyLimit bounds each channel's message log (see DefaultHistoryLimit).
func NewCoordinator(rooms Rooms, historyLimit int, logger *zerolog.Logger) *Coordinator {
	return &Coordinator{
		Commands: make(chan *Command, 64),
		users:    NewUserDirectory(),
		channels: NewChannelRegistry(),
		messages: NewMessageStore(historyLimit),
		rooms:    rooms,
		log:      logger,
	}
}

// Run processes commands until the context is cancelled. Each handler runs
// to completion before the next command is dequeued.
func (c *Coordinator) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case cmd := <-c.Commands:
			if cmd == nil || cmd.Conn == nil {
				continue
			}
			c.dispatch(cmd)
		}
	}
}

func (c *Coordinator) dispatch(cmd *Command) {
	switch cmd.Kind {
	case CommandCreateUser:
		c.handleCreateUser(cmd.Conn)
	case CommandKnownUser:
		c.handleKnownUser(cmd.Conn, cmd.User)
	case CommandCreateChannel:
		c.handleCreateChannel(cmd.Conn, cmd.Channel)
	case CommandJoinChannel:
		c.handleJoinChannel(cmd.Conn, cmd.User, cmd.Channel)
	case CommandLeaveChannel:
		c.handleLeaveChannel(cmd.Conn, cmd.User, cmd.ChannelName)
	case CommandNewMessage:
		c.handleNewMessage(cmd.Conn, cmd.Message)
	case CommandChannelUsers:
		c.handleChannelUsers(cmd.Conn, cmd.ChannelName)
	case CommandUpdateUser:
		c.handleUpdateUser(cmd.Conn, cmd.User, cmd.NewName)
	case CommandGetMessages:
		c.handleGetMessages(cmd.Conn, cmd.ChannelName)
	case CommandDisconnect:
		c.handleDisconnect(cmd.Conn)
	default:
		c.log.Warn().Int("kind", int(cmd.Kind)).Msg("unhandled command kind")
	}
}

func (c *Coordinator) handleCreateUser(conn Conn) {
	user := NewUser(
		uuid.NewString(),
		fmt.Sprintf("Anonymous %d", rand.IntN(9000)+1000),
		conn.ID(),
	)
	c.users.Upsert(user)
	c.log.Debug().Str("user_id", user.ID).Str("name", user.Name).Msg("user created")
	conn.Send(&Event{
		Kind: EventUserCreated,
		User: &UserInfo{ID: user.ID, Name: user.Name},
	})
}

func (c *Coordinator) handleKnownUser(conn Conn, ref *UserRef) {
	if ref == nil || ref.ID == "" {
		conn.Send(chatError(ErrTypeKnownUser, "User not set!"))
		return
	}
	user := NewUser(ref.ID, ref.Name, conn.ID())
	c.users.Upsert(user)
	c.log.Debug().Str("user_id", user.ID).Msg("known user re-attached")
	conn.Send(&Event{
		Kind: EventKnownUserReady,
		User: &UserInfo{ID: user.ID, Name: user.Name},
	})
}

func (c *Coordinator) handleCreateChannel(conn Conn, req *ChannelReq) {
	if req == nil || req.Name == "" {
		conn.Send(chatError(ErrTypeCreateChannel, "Channel not set!"))
		return
	}
	if c.channels.Get(req.Name) != nil {
		conn.Send(chatError(ErrTypeChannelExists,
			fmt.Sprintf("Channel %s already exists!", req.Name)))
		return
	}
	user := c.users.ByConn(conn.ID())
	if user == nil {
		conn.Send(chatError(ErrTypeCreateChannel, "Could not find user for this connection!"))
		return
	}
	if err := c.leaveAll(conn, user); err != nil {
		return
	}
	c.joinChannel(conn, user, req)
}

func (c *Coordinator) handleJoinChannel(conn Conn, ref *UserRef, req *ChannelReq) {
	if ref == nil || req == nil || req.Name == "" {
		conn.Send(chatError(ErrTypeJoinChannel, "User or channel not set!"))
		return
	}
	user := c.users.ByID(ref.ID)
	if user == nil {
		conn.Send(chatError(ErrTypeJoinChannel, "Unknown user!"))
		return
	}
	if ch := c.channels.Get(req.Name); ch != nil && !ch.CheckPassword(req.Password) {
		conn.Send(chatError(ErrTypeJoinChannel,
			fmt.Sprintf("Could not join channel %s! Wrong password!", ch.Name)))
		return
	}
	if err := c.leaveAll(conn, user); err != nil {
		return
	}
	c.joinChannel(conn, user, req)
}

// joinChannel performs the join proper: room subscription first, then
// registration, member bookkeeping, and the three outbound notifications.
func (c *Coordinator) joinChannel(conn Conn, user *User, req *ChannelReq) {
	if err := c.rooms.Join(conn, req.Name); err != nil {
		conn.Send(chatError(ErrTypeJoinChannel,
			fmt.Sprintf("Could not join channel %s! Error: %v", req.Name, err)))
		return
	}
	// The room join may suspend; re-resolve the user in case a disconnect
	// raced the confirmation.
	if user = c.users.ByID(user.ID); user == nil {
		return
	}
	ch := c.channels.Create(req.Name, req.Password)
	c.channels.AddMember(ch.Name, user.ID)
	c.users.AddMembership(user.ID, ch.Name)

	c.systemMessage(ch.Name, user.Name+" joined")
	conn.Send(&Event{
		Kind:    EventJoinedChannel,
		Channel: &ChannelInfo{Name: ch.Name, Password: ch.Password},
	})
	c.rooms.Broadcast(ch.Name, &Event{
		Kind:        EventChannelUsersList,
		ChannelName: ch.Name,
		Users:       c.memberNames(ch.Name),
	})
	c.log.Info().Str("user_id", user.ID).Str("channel", ch.Name).Msg("joined channel")
}

func (c *Coordinator) handleLeaveChannel(conn Conn, ref *UserRef, channel string) {
	if ref == nil || channel == "" {
		conn.Send(chatError(ErrTypeLeaveChannel, "User or channel not set!"))
		return
	}
	user := c.users.ByID(ref.ID)
	if user == nil {
		conn.Send(chatError(ErrTypeLeaveChannel, "Unknown user!"))
		return
	}
	if err := c.leaveChannel(conn, user, channel); err != nil {
		return
	}
	conn.Send(&Event{Kind: EventChannelLeft, ChannelName: channel})
	c.announceDeparture(channel, user.Name)
}

// leaveChannel confirms the room leave with the transport, then removes the
// membership in both directions.
func (c *Coordinator) leaveChannel(conn Conn, user *User, channel string) error {
	if err := c.rooms.Leave(conn, channel); err != nil {
		conn.Send(chatError(ErrTypeLeaveChannel,
			fmt.Sprintf("Could not leave channel %s! Error: %v", channel, err)))
		return err
	}
	c.channels.RemoveMember(channel, user.ID)
	c.users.RemoveMembership(user.ID, channel)
	return nil
}

// announceDeparture tells a channel's remaining members who left and
// refreshes their member list. The leaver is already out of the room, so
// neither event reaches them.
func (c *Coordinator) announceDeparture(channel, name string) {
	c.systemMessage(channel, name+" left")
	c.rooms.Broadcast(channel, &Event{
		Kind:        EventChannelUsersList,
		ChannelName: channel,
		Users:       c.memberNames(channel),
	})
}

// leaveAll removes the user from every joined channel, one confirmed leave
// at a time. A transport failure stops the remaining leaves; the cleanup is
// then best-effort-incomplete rather than retried.
func (c *Coordinator) leaveAll(conn Conn, user *User) error {
	for _, channel := range user.ChannelNames() {
		if err := c.leaveChannel(conn, user, channel); err != nil {
			return err
		}
		c.announceDeparture(channel, user.Name)
	}
	return nil
}

func (c *Coordinator) handleNewMessage(conn Conn, req *MessageReq) {
	if req == nil || req.Channel == "" || req.Text == "" {
		conn.Send(chatError(ErrTypeNewMessage, "Channel or text not set!"))
		return
	}
	msg := c.messages.Append(req.Channel, req.Text, req.Author)
	c.rooms.Broadcast(req.Channel, &Event{
		Kind:        EventNewMessage,
		ChannelName: req.Channel,
		Rendered:    msg.Rendered(),
	})
}

func (c *Coordinator) handleChannelUsers(conn Conn, channel string) {
	if c.channels.Get(channel) == nil {
		conn.Send(chatError(ErrTypeUsersList,
			fmt.Sprintf("Could not get users list for %s! Channel doesn't exist!", channel)))
		return
	}
	conn.Send(&Event{
		Kind:        EventChannelUsersList,
		ChannelName: channel,
		Users:       c.memberNames(channel),
	})
}

func (c *Coordinator) handleUpdateUser(conn Conn, ref *UserRef, newName string) {
	if ref == nil || ref.ID == "" || newName == "" {
		conn.Send(chatError(ErrTypeUpdateUser, "User or name not set!"))
		return
	}
	user := c.users.ByID(ref.ID)
	if user == nil {
		conn.Send(chatError(ErrTypeUpdateUser, "Unknown user!"))
		return
	}
	oldName := user.Name
	user.Name = newName
	conn.Send(&Event{
		Kind:   EventUserUpdated,
		Update: &UserUpdate{ID: user.ID, OldName: oldName, NewName: newName},
	})
	for _, channel := range user.ChannelNames() {
		c.systemMessage(channel, oldName+" renamed to "+newName)
	}
	c.log.Debug().Str("user_id", user.ID).Str("name", newName).Msg("user renamed")
}

func (c *Coordinator) handleGetMessages(conn Conn, channel string) {
	conn.Send(&Event{
		Kind:        EventChannelMessages,
		ChannelName: channel,
		Messages:    c.messages.History(channel),
	})
}

// handleDisconnect runs full cleanup for a closing connection. Connections
// that never registered a user are a no-op. The user record is only removed
// once every channel leave succeeded.
func (c *Coordinator) handleDisconnect(conn Conn) {
	defer c.rooms.Drop(conn)

	user := c.users.ByConn(conn.ID())
	if user == nil {
		return
	}
	if err := c.leaveAll(conn, user); err != nil {
		c.log.Warn().Err(err).Str("user_id", user.ID).Msg("incomplete disconnect cleanup")
		return
	}
	c.users.Remove(user.ID)
	c.log.Info().Str("user_id", user.ID).Msg("user disconnected")
}

// systemMessage appends an authorless entry to the channel's history and
// broadcasts it as a server-originated message.
func (c *Coordinator) systemMessage(channel, text string) {
	msg := c.messages.Append(channel, text, "")
	c.rooms.Broadcast(channel, &Event{
		Kind:        EventNewChannelMessage,
		ChannelName: channel,
		Rendered:    msg.Rendered(),
	})
}

// memberNames resolves a channel's member ids to display names, sorted.
func (c *Coordinator) memberNames(channel string) []string {
	ch := c.channels.Get(channel)
	if ch == nil {
		return nil
	}
	names := lo.FilterMap(lo.Keys(ch.Members), func(id string, _ int) (string, bool) {
		u := c.users.ByID(id)
		if u == nil {
			return "", false
		}
		return u.Name, true
	})
	sort.Strings(names)
	return names
}
