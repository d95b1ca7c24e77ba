package http

import (
	"encoding/json"
	"time"

	"github.com/mindcarehq/peerchat-server/internal/core"
	"github.com/mindcarehq/peerchat-server/internal/proto"
)

// dispatch applies one inbound frame to the core layer. It returns a
// protocol error for frames the client should hear about (unknown type,
// rate limit) and a hard error only for frames that do not decode; per
// the degradation policy everything else is absorbed silently.
func (h *WSHandler) dispatch(client *core.Conn, limiter *messageLimiter, inbound proto.Inbound) (*proto.Error, error) {
	data := inbound.Data
	if len(data) == 0 {
		// Missing payloads fall back to defaults, they never error.
		data = []byte("{}")
	}

	switch inbound.Type {
	case proto.InboundTypeJoin:
		var join proto.JoinData
		if err := json.Unmarshal(data, &join); err != nil {
			return nil, err
		}
		h.presence.Join(client, h.roomOrDefault(join.Room), join.Username)
		return nil, nil

	case proto.InboundTypeMessage:
		var msg proto.MessageData
		if err := json.Unmarshal(data, &msg); err != nil {
			return nil, err
		}
		if !limiter.allow(time.Now()) {
			return &proto.Error{Code: core.ErrCodeRateLimited, Msg: "message rate limit exceeded"}, nil
		}
		h.router.SendMessage(h.roomOrDefault(msg.Room), client.ID, msg.Username, msg.Message)
		return nil, nil

	case proto.InboundTypeTyping:
		var typing proto.TypingData
		if err := json.Unmarshal(data, &typing); err != nil {
			return nil, err
		}
		h.router.Typing(h.roomOrDefault(typing.Room), client.ID, typing.Username)
		return nil, nil

	case proto.InboundTypeStopTyping:
		var typing proto.TypingData
		if err := json.Unmarshal(data, &typing); err != nil {
			return nil, err
		}
		h.router.StopTyping(h.roomOrDefault(typing.Room), client.ID, typing.Username)
		return nil, nil

	default:
		return &proto.Error{Code: core.ErrCodeInvalidMessage, Msg: "unknown message type"}, nil
	}
}

func (h *WSHandler) roomOrDefault(room string) string {
	if room == "" {
		return h.defaultRoom
	}
	return room
}

// outboundFromEvent serializes a core event into its wire frame.
func outboundFromEvent(event *core.Event) proto.Outbound {
	switch event.Kind {
	case core.EventMessage:
		return proto.Outbound{
			Event: proto.EventMessage,
			Data: proto.ChatMessage{
				Username:  event.User,
				Message:   event.Text,
				Timestamp: event.At.Format(time.RFC3339),
			},
		}
	case core.EventUserJoined:
		return proto.Outbound{
			Event: proto.EventUserJoined,
			Data: proto.UserJoined{
				Username:  event.User,
				UserCount: event.Count,
			},
		}
	case core.EventUserLeft:
		return proto.Outbound{
			Event: proto.EventUserLeft,
			Data: proto.UserLeft{
				Username:  event.User,
				UserCount: event.Count,
			},
		}
	case core.EventUserCount:
		return proto.Outbound{
			Event: proto.EventUserCount,
			Data:  event.Count,
		}
	case core.EventTyping:
		return proto.Outbound{
			Event: proto.EventTyping,
			Data:  proto.TypingUser{Username: event.User},
		}
	case core.EventStopTyping:
		return proto.Outbound{
			Event: proto.EventStopTyping,
			Data:  proto.TypingUser{Username: event.User},
		}
	default:
		return proto.Outbound{Event: proto.EventError, Error: &proto.Error{
			Code: core.ErrCodeBadRequest,
			Msg:  "unknown event kind",
		}}
	}
}
