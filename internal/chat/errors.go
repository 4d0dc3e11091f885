package chat

// Error type tags carried in chat-error events. Clients match on these.
const (
	ErrTypeCreateChannel = "create channel err"
	ErrTypeChannelExists = "channel exists"
	ErrTypeJoinChannel   = "join channel err"
	ErrTypeLeaveChannel  = "leave channel err"
	ErrTypeKnownUser     = "known user err"
	ErrTypeUsersList     = "get channel users list err"
	ErrTypeUpdateUser    = "update user err"
	ErrTypeNewMessage    = "new message err"
	ErrTypeGetMessages   = "get messages err"
	ErrTypeUnknownEvent  = "unknown event"
)

// ChatError is the structured error surfaced to the originating connection.
// Type is a machine-readable tag, Text a human-readable message.
type ChatError struct {
	Type string
	Text string
}

func (e *ChatError) Error() string {
	return e.Text
}

func chatError(errType, text string) *Event {
	return &Event{
		Kind:  EventChatError,
		Error: &ChatError{Type: errType, Text: text},
	}
}
