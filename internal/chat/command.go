package chat

// CommandKind describes what the client wants to do.
type CommandKind int

const (
	// CommandCreateUser registers a fresh anonymous user on the connection.
	CommandCreateUser CommandKind = iota
	// CommandKnownUser re-attaches a returning user id to the connection.
	CommandKnownUser
	// CommandCreateChannel registers a new channel and joins the caller.
	CommandCreateChannel
	// CommandJoinChannel joins an existing or new channel.
	CommandJoinChannel
	// CommandLeaveChannel leaves a single channel.
	CommandLeaveChannel
	// CommandNewMessage posts a message to a channel.
	CommandNewMessage
	// CommandChannelUsers requests a channel's member name list.
	CommandChannelUsers
	// CommandUpdateUser renames a user.
	CommandUpdateUser
	// CommandGetMessages requests a channel's rendered history.
	CommandGetMessages
	// CommandDisconnect reports that the connection closed.
	CommandDisconnect
)

// UserRef identifies a user in a client request.
type UserRef struct {
	ID   string
	Name string
}

// ChannelReq describes a channel to create or join.
type ChannelReq struct {
	Name     string
	Password string
}

// MessageReq is a chat message submitted by a client. Author is the sender's
// display name as the client asserts it.
type MessageReq struct {
	Channel string
	Text    string
	Author  string
}

// Command is one inbound protocol event, bound to the connection it arrived
// on. Which payload fields are set depends on Kind; handlers validate and
// report malformed commands as chat errors rather than failing.
type Command struct {
	Kind    CommandKind
	Conn    Conn
	User    *UserRef
	Channel *ChannelReq
	Message *MessageReq

	// ChannelName is the bare channel argument of leave-channel,
	// get-channel-users-list and get-messages.
	ChannelName string

	// NewName is the requested display name for update-user.
	NewName string
}
