package http

import (
	stdhttp "net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/QuangTrung1996/small100-chat-server/internal/config"
	"github.com/QuangTrung1996/small100-chat-server/internal/core"
	"github.com/QuangTrung1996/small100-chat-server/internal/log"
)

// captureSender collects manager events for assertions.
type captureSender struct {
	events chan *core.Event
}

func newCaptureSender() *captureSender {
	return &captureSender{events: make(chan *core.Event, 64)}
}

func (s *captureSender) Send(ev *core.Event) error {
	select {
	case s.events <- ev:
	default:
	}
	return nil
}

func (s *captureSender) next(t *testing.T, kind core.EventKind) *core.Event {
	t.Helper()
	deadline := time.After(2 * time.Second)
	for {
		select {
		case ev := <-s.events:
			if ev.Kind == kind {
				return ev
			}
		case <-deadline:
			t.Fatalf("expected event kind %v not received", kind)
		}
	}
}

func newTestServer(t *testing.T) (*core.Manager, *httptest.Server) {
	t.Helper()

	logger := log.Nop()
	manager := core.NewManager(logger)

	cfg := config.Default()
	server := NewServer(manager, &cfg, logger)

	ts := httptest.NewServer(server.Handler)
	t.Cleanup(ts.Close)
	return manager, ts
}

func doGet(t *testing.T, ts *httptest.Server, path string) *stdhttp.Response {
	t.Helper()
	resp, err := stdhttp.Get(ts.URL + path)
	if err != nil {
		t.Fatalf("GET %s: %v", path, err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}
