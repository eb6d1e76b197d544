package http

import (
	"time"

	"github.com/samber/lo"

	"github.com/QuangTrung1996/small100-chat-server/internal/core"
	"github.com/QuangTrung1996/small100-chat-server/internal/proto"
)

func outboundFromEvent(event *core.Event) proto.Outbound {
	switch event.Kind {
	case core.EventConnected:
		return proto.Outbound{
			Type:   proto.TypeConnected,
			UserID: event.SessionID,
		}
	case core.EventRoomCreated:
		room := roomPayload(event.Room)
		return proto.Outbound{
			Type:     proto.TypeRoomCreated,
			RoomID:   event.Room.ID,
			RoomCode: event.Room.Code,
			Room:     room,
			Members:  memberPayloads(event.Members),
		}
	case core.EventRoomJoined:
		return proto.Outbound{
			Type:     proto.TypeRoomJoined,
			Room:     roomPayload(event.Room),
			Members:  memberPayloads(event.Members),
			Messages: messagePayloads(event.Messages),
		}
	case core.EventUserJoined:
		return proto.Outbound{
			Type:     proto.TypeUserJoined,
			User:     memberPayload(event.User),
			IsUpdate: event.IsUpdate,
		}
	case core.EventUserLeft:
		return proto.Outbound{
			Type:     proto.TypeUserLeft,
			UserID:   event.UserID,
			UserName: event.UserName,
		}
	case core.EventNewMessage:
		return proto.Outbound{
			Type:    proto.TypeNewMessage,
			Message: messagePayload(*event.Message),
		}
	case core.EventRoomInfo:
		return proto.Outbound{
			Type:    proto.TypeRoomInfo,
			Room:    roomPayload(event.Room),
			Members: memberPayloads(event.Members),
		}
	case core.EventProfileUpdated:
		return proto.Outbound{
			Type: proto.TypeProfileUpdated,
			User: memberPayload(event.User),
		}
	case core.EventError:
		if event.Error == nil {
			return proto.Outbound{
				Type:    proto.TypeError,
				Code:    core.ErrCodeInternal,
				Message: "unknown error",
			}
		}
		return proto.Outbound{
			Type:    proto.TypeError,
			Code:    event.Error.Code,
			Message: event.Error.Message,
		}
	case core.EventPong:
		return proto.Outbound{Type: proto.TypePong}
	default:
		return proto.Outbound{Type: proto.TypeError, Code: core.ErrCodeInternal, Message: "unmapped event"}
	}
}

func roomPayload(room *core.Room) *proto.RoomPayload {
	if room == nil {
		return nil
	}
	return &proto.RoomPayload{
		ID:        room.ID,
		Code:      room.Code,
		Name:      room.Name,
		HostID:    room.HostID,
		CreatedAt: room.CreatedAt.Format(time.RFC3339),
	}
}

func memberPayload(member *core.Member) *proto.MemberPayload {
	if member == nil {
		return nil
	}
	return &proto.MemberPayload{
		ID:       member.ID,
		Name:     member.Name,
		Language: member.Language,
		IsHost:   member.IsHost,
		JoinedAt: member.JoinedAt.Format(time.RFC3339),
	}
}

func memberPayloads(members []core.Member) []proto.MemberPayload {
	return lo.Map(members, func(m core.Member, _ int) proto.MemberPayload {
		return *memberPayload(&m)
	})
}

func messagePayload(msg core.Message) *proto.MessagePayload {
	return &proto.MessagePayload{
		ID:         msg.ID,
		RoomID:     msg.RoomID,
		SenderID:   msg.SenderID,
		SenderName: msg.SenderName,
		Text:       msg.Text,
		SourceLang: msg.SourceLang,
		Timestamp:  msg.Timestamp.Format(time.RFC3339),
	}
}

func messagePayloads(messages []core.Message) []proto.MessagePayload {
	return lo.Map(messages, func(m core.Message, _ int) proto.MessagePayload {
		return *messagePayload(m)
	})
}
