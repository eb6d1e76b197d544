// Command ws_smoke exercises the chat protocol end to end against a running
// server: connect, create a room, send a message, print received events.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"

	"github.com/QuangTrung1996/small100-chat-server/internal/proto"
)

func main() {
	if err := run(); err != nil {
		log.Printf("ws_smoke: %v", err)
		os.Exit(1)
	}
}

func run() error {
	addr := flag.String("addr", "ws://localhost:8000/ws", "WebSocket address")
	name := flag.String("name", "tester", "display name")
	room := flag.String("room", "Smoke Room", "room name to create")
	lang := flag.String("lang", "en", "display language code")
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

	send := func(msgType string, payload any) error {
		in, err := proto.NewInbound(msgType, payload)
		if err != nil {
			return fmt.Errorf("marshal %s: %w", msgType, err)
		}
		if err := wsjson.Write(ctx, conn, in); err != nil {
			return fmt.Errorf("send %s: %w", msgType, err)
		}
		return nil
	}

	if err := send(proto.TypeCreateRoom, proto.CreateRoomPayload{
		RoomName: *room,
		HostName: *name,
		Language: *lang,
	}); err != nil {
		return err
	}
	if err := send(proto.TypeSendMessage, proto.SendMessagePayload{Text: *text}); err != nil {
		return err
	}
	if err := send(proto.TypePing, nil); err != nil {
		return err
	}

	for {
		var outbound proto.Outbound
		if err := wsjson.Read(ctx, conn, &outbound); err != nil {
			return fmt.Errorf("read: %w", err)
		}

		fmt.Printf("received: type=%s", outbound.Type)
		if outbound.RoomCode != "" {
			fmt.Printf(" roomCode=%s", outbound.RoomCode)
		}
		if outbound.Code != "" {
			fmt.Printf(" errorCode=%s message=%v", outbound.Code, outbound.Message)
		}
		fmt.Println()

		if outbound.Type == proto.TypePong {
			return nil
		}
	}
}
