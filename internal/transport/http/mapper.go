package http

import (
	"encoding/json"
	"fmt"

	"github.com/vovakirdan/channelchat/internal/chat"
	"github.com/vovakirdan/channelchat/internal/proto"
)

// inboundToCommand maps a wire envelope to a coordinator command. Unknown
// event names and undecodable payloads come back as a protocol error for the
// caller; semantic validation (missing users, wrong passwords) stays in the
// coordinator.
func inboundToCommand(conn chat.Conn, inbound proto.Inbound) (*chat.Command, *proto.ErrorData) {
	switch inbound.Event {
	case proto.InboundCreateUser:
		return &chat.Command{Kind: chat.CommandCreateUser, Conn: conn}, nil

	case proto.InboundKnownUser:
		var data proto.UserData
		if errData := decode(inbound, chat.ErrTypeKnownUser, &data); errData != nil {
			return nil, errData
		}
		cmd := &chat.Command{Kind: chat.CommandKnownUser, Conn: conn}
		if data.ID != "" {
			cmd.User = &chat.UserRef{ID: data.ID, Name: data.Name}
		}
		return cmd, nil

	case proto.InboundCreateChan:
		var data proto.ChannelData
		if errData := decode(inbound, chat.ErrTypeCreateChannel, &data); errData != nil {
			return nil, errData
		}
		cmd := &chat.Command{Kind: chat.CommandCreateChannel, Conn: conn}
		if data.Name != "" {
			cmd.Channel = &chat.ChannelReq{Name: data.Name, Password: data.Password}
		}
		return cmd, nil

	case proto.InboundJoinChan:
		var data proto.JoinData
		if errData := decode(inbound, chat.ErrTypeJoinChannel, &data); errData != nil {
			return nil, errData
		}
		cmd := &chat.Command{Kind: chat.CommandJoinChannel, Conn: conn}
		if data.User != nil {
			cmd.User = &chat.UserRef{ID: data.User.ID, Name: data.User.Name}
		}
		if data.Channel != nil {
			cmd.Channel = &chat.ChannelReq{Name: data.Channel.Name, Password: data.Channel.Password}
		}
		return cmd, nil

	case proto.InboundLeaveChan:
		var data proto.LeaveData
		if errData := decode(inbound, chat.ErrTypeLeaveChannel, &data); errData != nil {
			return nil, errData
		}
		cmd := &chat.Command{Kind: chat.CommandLeaveChannel, Conn: conn, ChannelName: data.Channel}
		if data.User != nil {
			cmd.User = &chat.UserRef{ID: data.User.ID, Name: data.User.Name}
		}
		return cmd, nil

	case proto.InboundNewMessage:
		var data proto.MessageData
		if errData := decode(inbound, chat.ErrTypeNewMessage, &data); errData != nil {
			return nil, errData
		}
		return &chat.Command{
			Kind: chat.CommandNewMessage,
			Conn: conn,
			Message: &chat.MessageReq{
				Channel: data.Channel,
				Text:    data.Text,
				Author:  data.Author,
			},
		}, nil

	case proto.InboundChannelUsers:
		var data proto.ChannelNameData
		if errData := decode(inbound, chat.ErrTypeUsersList, &data); errData != nil {
			return nil, errData
		}
		return &chat.Command{Kind: chat.CommandChannelUsers, Conn: conn, ChannelName: data.Channel}, nil

	case proto.InboundUpdateUser:
		var data proto.UserData
		if errData := decode(inbound, chat.ErrTypeUpdateUser, &data); errData != nil {
			return nil, errData
		}
		cmd := &chat.Command{Kind: chat.CommandUpdateUser, Conn: conn, NewName: data.Name}
		if data.ID != "" {
			cmd.User = &chat.UserRef{ID: data.ID}
		}
		return cmd, nil

	case proto.InboundGetMessages:
		var data proto.ChannelNameData
		if errData := decode(inbound, chat.ErrTypeGetMessages, &data); errData != nil {
			return nil, errData
		}
		return &chat.Command{Kind: chat.CommandGetMessages, Conn: conn, ChannelName: data.Channel}, nil

	default:
		return nil, &proto.ErrorData{
			Type: chat.ErrTypeUnknownEvent,
			Text: fmt.Sprintf("Unknown event %q!", inbound.Event),
		}
	}
}

func decode(inbound proto.Inbound, errType string, out any) *proto.ErrorData {
	if len(inbound.Data) == 0 {
		return nil
	}
	if err := json.Unmarshal(inbound.Data, out); err != nil {
		return &proto.ErrorData{
			Type: errType,
			Text: fmt.Sprintf("Could not decode %s payload!", inbound.Event),
		}
	}
	return nil
}

func outboundFromEvent(event *chat.Event) proto.Outbound {
	switch event.Kind {
	case chat.EventUserCreated:
		return proto.Outbound{
			Event: proto.OutboundUserCreated,
			Data:  proto.UserData{ID: event.User.ID, Name: event.User.Name},
		}
	case chat.EventKnownUserReady:
		return proto.Outbound{
			Event: proto.OutboundKnownUserReady,
			Data:  proto.UserData{ID: event.User.ID, Name: event.User.Name},
		}
	case chat.EventJoinedChannel:
		return proto.Outbound{
			Event: proto.OutboundJoinedChannel,
			Data:  proto.ChannelData{Name: event.Channel.Name, Password: event.Channel.Password},
		}
	case chat.EventChannelLeft:
		return proto.Outbound{
			Event: proto.OutboundChannelLeft,
			Data:  proto.ChannelNameData{Channel: event.ChannelName},
		}
	case chat.EventChannelUsersList:
		return proto.Outbound{
			Event: proto.OutboundChannelUsers,
			Data:  proto.UsersListData{Channel: event.ChannelName, Users: event.Users},
		}
	case chat.EventNewChannelMessage:
		return proto.Outbound{
			Event: proto.OutboundChannelMessage,
			Data:  proto.RenderedData{Channel: event.ChannelName, Text: event.Rendered},
		}
	case chat.EventNewMessage:
		return proto.Outbound{
			Event: proto.OutboundNewMessage,
			Data:  proto.RenderedData{Channel: event.ChannelName, Text: event.Rendered},
		}
	case chat.EventUserUpdated:
		return proto.Outbound{
			Event: proto.OutboundUserUpdated,
			Data: proto.UserUpdatedData{
				ID:  event.Update.ID,
				Old: event.Update.OldName,
				New: event.Update.NewName,
			},
		}
	case chat.EventChannelMessages:
		return proto.Outbound{
			Event: proto.OutboundMessages,
			Data:  proto.MessagesData{Channel: event.ChannelName, Messages: event.Messages},
		}
	case chat.EventChatError:
		if event.Error == nil {
			return proto.Outbound{
				Event: proto.OutboundChatError,
				Data:  proto.ErrorData{Type: "unknown", Text: "unknown error"},
			}
		}
		return proto.Outbound{
			Event: proto.OutboundChatError,
			Data:  proto.ErrorData{Type: event.Error.Type, Text: event.Error.Text},
		}
	default:
		return proto.Outbound{Event: proto.OutboundChatError, Data: proto.ErrorData{
			Type: "unknown",
			Text: "unmapped event",
		}}
	}
}
