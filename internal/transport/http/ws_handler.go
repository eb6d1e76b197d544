package http

import (
	"context"
	"encoding/json"
	"errors"
	stdhttp "net/http"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/rs/zerolog"

	"github.com/QuangTrung1996/small100-chat-server/internal/core"
	"github.com/QuangTrung1996/small100-chat-server/internal/proto"
)

// senderBuffer is the per-connection outbound event buffer. Events beyond
// it are dropped rather than blocking the manager.
const senderBuffer = 32

// WSHandler upgrades HTTP connections and bridges them to manager sessions.
type WSHandler struct {
	manager         *core.Manager
	maxMessageBytes int64
	log             *zerolog.Logger
}

// NewWSHandler builds a new WebSocket handler.
func NewWSHandler(manager *core.Manager, maxMessageBytes int64, logger *zerolog.Logger) stdhttp.Handler {
	return &WSHandler{manager: manager, maxMessageBytes: maxMessageBytes, log: logger}
}

func (h *WSHandler) ServeHTTP(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		InsecureSkipVerify: true,
	})
	if err != nil {
		h.log.Error().Err(err).Msg("ws accept error")
		return
	}
	defer conn.Close(websocket.StatusInternalError, "internal error")

	if h.maxMessageBytes > 0 {
		conn.SetReadLimit(h.maxMessageBytes)
	}

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	sender := newWSSender()
	sessionID := h.manager.Connect(sender)
	defer h.manager.Disconnect(sessionID)

	errCh := make(chan error, 2)
	go func() {
		errCh <- h.readLoop(ctx, conn, sessionID, sender)
	}()
	go func() {
		errCh <- h.writeLoop(ctx, conn, sender)
	}()

	err = <-errCh
	cancel() // stop the other goroutine
	<-errCh

	status := websocket.StatusNormalClosure
	reason := "closing"
	if err != nil && !errors.Is(err, context.Canceled) {
		if s := websocket.CloseStatus(err); s != 0 {
			status = s
		}
		if status != websocket.StatusNormalClosure && status != websocket.StatusGoingAway {
			h.log.Warn().Err(err).Str("session_id", sessionID).Msg("ws connection closed with error")
		}
	}

	conn.Close(status, reason)
}

func (h *WSHandler) readLoop(ctx context.Context, conn *websocket.Conn, sessionID string, sender *wsSender) error {
	for {
		_, data, err := conn.Read(ctx)
		if err != nil {
			return err
		}

		var inbound proto.Inbound
		if err := json.Unmarshal(data, &inbound); err != nil {
			h.log.Debug().Err(err).Str("session_id", sessionID).Msg("unparseable inbound payload")
			_ = sender.Send(&core.Event{
				Kind:  core.EventError,
				Error: &core.CoreError{Code: core.ErrCodeInvalidJSON, Message: "Invalid JSON format"},
			})
			continue
		}

		h.manager.Dispatch(sessionID, inbound)
	}
}

func (h *WSHandler) writeLoop(ctx context.Context, conn *websocket.Conn, sender *wsSender) error {
	for {
		select {
		case ev := <-sender.events:
			if err := wsjson.Write(ctx, conn, outboundFromEvent(ev)); err != nil {
				return err
			}
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// wsSender delivers manager events to one connection's write loop.
type wsSender struct {
	events chan *core.Event
}

func newWSSender() *wsSender {
	return &wsSender{events: make(chan *core.Event, senderBuffer)}
}

// Send enqueues an event without blocking. A full buffer drops the event.
func (s *wsSender) Send(ev *core.Event) error {
	select {
	case s.events <- ev:
		return nil
	default:
		return errors.New("event buffer full")
	}
}
