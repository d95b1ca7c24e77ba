package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"

	"github.com/mindcarehq/peerchat-server/internal/proto"
)

func main() {
	if err := run(); err != nil {
		log.Printf("ws_smoke: %v", err)
		os.Exit(1)
	}
}

func run() error {
	addr := flag.String("addr", "ws://localhost:8080/ws", "WebSocket address")
	user := flag.String("user", "tester", "display name to join with")
	room := flag.String("room", "peer-support", "room name")
	text := flag.String("text", "hello from smoke test", "message text to send")
	timeout := flag.Duration("timeout", 5*time.Second, "total timeout for the run")
	flag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	conn, _, err := websocket.Dial(ctx, *addr, nil)
	if err != nil {
		return fmt.Errorf("dial: %w", err)
	}
	defer conn.Close(websocket.StatusNormalClosure, "bye")

	send := func(frameType string, data any) error {
		payload, err := json.Marshal(data)
		if err != nil {
			return fmt.Errorf("marshal %s: %w", frameType, err)
		}
		if err := wsjson.Write(ctx, conn, proto.Inbound{Type: frameType, Data: payload}); err != nil {
			return fmt.Errorf("send %s: %w", frameType, err)
		}
		return nil
	}

	if err := send(proto.InboundTypeJoin, proto.JoinData{Room: *room, Username: *user}); err != nil {
		return err
	}
	if err := send(proto.InboundTypeTyping, proto.TypingData{Room: *room}); err != nil {
		return err
	}
	if err := send(proto.InboundTypeMessage, proto.MessageData{Room: *room, Message: *text}); err != nil {
		return err
	}
	if err := send(proto.InboundTypeStopTyping, proto.TypingData{Room: *room}); err != nil {
		return err
	}

	for {
		var outbound proto.Outbound
		if err := wsjson.Read(ctx, conn, &outbound); err != nil {
			return fmt.Errorf("read: %w", err)
		}

		if outbound.Error != nil {
			fmt.Printf("error: code=%s msg=%s\n", outbound.Error.Code, outbound.Error.Msg)
			continue
		}

		raw, err := json.Marshal(outbound.Data)
		if err != nil {
			return fmt.Errorf("marshal outbound data: %w", err)
		}

		switch outbound.Event {
		case proto.EventUserCount:
			var count int
			if err := json.Unmarshal(raw, &count); err != nil {
				return fmt.Errorf("unmarshal user_count: %w", err)
			}
			fmt.Printf("user_count: %d\n", count)
		case proto.EventMessage:
			var msg proto.ChatMessage
			if err := json.Unmarshal(raw, &msg); err != nil {
				return fmt.Errorf("unmarshal message: %w", err)
			}
			fmt.Printf("message: user=%s text=%q ts=%s\n", msg.Username, msg.Message, msg.Timestamp)
			// Our own echo is the delivery confirmation; stop here.
			return nil
		case proto.EventUserJoined:
			var joined proto.UserJoined
			if err := json.Unmarshal(raw, &joined); err != nil {
				return fmt.Errorf("unmarshal user_joined: %w", err)
			}
			fmt.Printf("user_joined: user=%s count=%d\n", joined.Username, joined.UserCount)
		case proto.EventUserLeft:
			var left proto.UserLeft
			if err := json.Unmarshal(raw, &left); err != nil {
				return fmt.Errorf("unmarshal user_left: %w", err)
			}
			fmt.Printf("user_left: user=%s count=%d\n", left.Username, left.UserCount)
		case proto.EventTyping, proto.EventStopTyping:
			var typing proto.TypingUser
			if err := json.Unmarshal(raw, &typing); err != nil {
				return fmt.Errorf("unmarshal typing: %w", err)
			}
			fmt.Printf("%s: user=%s\n", outbound.Event, typing.Username)
		default:
			fmt.Printf("event=%s data=%s\n", outbound.Event, string(raw))
		}
	}
}
