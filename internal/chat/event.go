package chat

// EventKind is a notification the coordinator emits to connections.
type EventKind int

const (
	// EventUserCreated confirms a fresh user registration to the caller.
	EventUserCreated EventKind = iota
	// EventKnownUserReady confirms a returning user re-attachment.
	EventKnownUserReady
	// EventJoinedChannel confirms a successful channel join to the caller.
	EventJoinedChannel
	// EventChannelLeft confirms a single-channel leave to the caller.
	EventChannelLeft
	// EventChannelUsersList carries a channel's member display names.
	EventChannelUsersList
	// EventNewChannelMessage is a rendered system message (join/leave/rename).
	EventNewChannelMessage
	// EventNewMessage is a rendered user message.
	EventNewMessage
	// EventUserUpdated confirms a rename to the caller.
	EventUserUpdated
	// EventChannelMessages carries a channel's full rendered history.
	EventChannelMessages
	// EventChatError reports a failed request to the caller.
	EventChatError
)

// UserInfo is the payload of user-created and known-user-ready.
type UserInfo struct {
	ID   string
	Name string
}

// ChannelInfo is the payload of joined-channel.
type ChannelInfo struct {
	Name     string
	Password string
}

// UserUpdate is the payload of user-updated.
type UserUpdate struct {
	ID      string
	OldName string
	NewName string
}

// Event is sent to connections to describe what happened. Which fields are
// set depends on Kind.
type Event struct {
	Kind        EventKind
	User        *UserInfo
	Channel     *ChannelInfo
	ChannelName string
	Users       []string
	Rendered    string
	Messages    []string
	Update      *UserUpdate
	Error       *ChatError
}
