package proto

import "encoding/json"

// Inbound is the envelope for events coming from the client.
type Inbound struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

// Inbound event names.
const (
	InboundCreateUser   = "create-user"
	InboundKnownUser    = "known-user"
	InboundCreateChan   = "create-channel"
	InboundJoinChan     = "join-channel"
	InboundLeaveChan    = "leave-channel"
	InboundNewMessage   = "new-message"
	InboundChannelUsers = "get-channel-users-list"
	InboundUpdateUser   = "update-user"
	InboundGetMessages  = "get-messages"
)

// Outbound event names.
const (
	OutboundUserCreated    = "user-created"
	OutboundKnownUserReady = "known-user-ready"
	OutboundJoinedChannel  = "joined-channel"
	OutboundChannelLeft    = "channel-left"
	OutboundChannelUsers   = "channel-users-list"
	OutboundChannelMessage = "new-channel-message"
	OutboundNewMessage     = "new-message"
	OutboundUserUpdated    = "user-updated"
	OutboundMessages       = "channel-messages"
	OutboundChatError      = "chat-error"
)

// Outbound is the envelope for events sent to the client.
type Outbound struct {
	Event string `json:"event"`
	Data  any    `json:"data,omitempty"`
}

// UserData identifies a user; sent by known-user and update-user, returned
// by user-created and known-user-ready.
type UserData struct {
	ID   string `json:"id"`
	Name string `json:"name,omitempty"`
}

// ChannelData describes a channel to create or join, and is echoed back by
// joined-channel.
type ChannelData struct {
	Name     string `json:"name"`
	Password string `json:"password,omitempty"`
}

// JoinData pairs the joining user with the target channel.
type JoinData struct {
	User    *UserData    `json:"user"`
	Channel *ChannelData `json:"channel"`
}

// LeaveData names the channel a user wants out of.
type LeaveData struct {
	User    *UserData `json:"user"`
	Channel string    `json:"channel"`
}

// MessageData is a chat message from the client. Author is the sender's
// display name; system messages never originate from clients.
type MessageData struct {
	Channel string `json:"channel"`
	Text    string `json:"text"`
	Author  string `json:"author,omitempty"`
}

// ChannelNameData carries a bare channel argument
// (get-channel-users-list, get-messages, channel-left).
type ChannelNameData struct {
	Channel string `json:"channel"`
}

// UsersListData is the channel-users-list payload.
type UsersListData struct {
	Channel string   `json:"channel,omitempty"`
	Users   []string `json:"users"`
}

// RenderedData is the new-message / new-channel-message payload: a single
// display-ready string.
type RenderedData struct {
	Channel string `json:"channel,omitempty"`
	Text    string `json:"text"`
}

// MessagesData is the channel-messages payload: full rendered history,
// oldest first.
type MessagesData struct {
	Channel  string   `json:"channel,omitempty"`
	Messages []string `json:"messages"`
}

// UserUpdatedData confirms a rename.
type UserUpdatedData struct {
	ID  string `json:"id"`
	Old string `json:"old"`
	New string `json:"new"`
}

// ErrorData is the chat-error payload.
type ErrorData struct {
	Type string `json:"type"`
	Text string `json:"text"`
}
