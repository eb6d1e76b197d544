package core

import (
	"testing"
	"time"

	"github.com/rs/zerolog"
)

// testSender records events delivered to one session.
type testSender struct {
	events chan *Event
}

func newTestSender() *testSender {
	return &testSender{events: make(chan *Event, 256)}
}

func (s *testSender) Send(ev *Event) error {
	select {
	case s.events <- ev:
	default:
		// Drop like a slow consumer would.
	}
	return nil
}

func newTestManager() *Manager {
	logger := zerolog.New(nil)
	return NewManager(&logger)
}

// connect registers a session and consumes its CONNECTED event.
func connect(t *testing.T, m *Manager) (string, *testSender) {
	t.Helper()

	sender := newTestSender()
	id := m.Connect(sender)
	ev := mustEvent(t, sender, EventConnected)
	if ev.SessionID != id {
		t.Fatalf("connected event carries %q, want %q", ev.SessionID, id)
	}
	return id, sender
}

func mustEvent(t *testing.T, s *testSender, kind EventKind) *Event {
	t.Helper()

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		select {
		case ev := <-s.events:
			if ev == nil {
				continue
			}
			if ev.Kind == kind {
				return ev
			}
		default:
			time.Sleep(5 * time.Millisecond)
		}
	}
	t.Fatalf("expected event kind %v not received", kind)
	return nil
}

func mustNoEvent(t *testing.T, s *testSender, kind EventKind) {
	t.Helper()

	for {
		select {
		case ev := <-s.events:
			if ev != nil && ev.Kind == kind {
				t.Fatalf("unexpected event kind %v: %+v", kind, ev)
			}
		default:
			return
		}
	}
}

func drain(s *testSender) {
	for {
		select {
		case <-s.events:
		default:
			return
		}
	}
}
