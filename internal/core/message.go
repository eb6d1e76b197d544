package core

import "time"

// History bounds for per-room message storage.
const (
	// HistoryCapacity is the maximum number of messages kept per room;
	// the oldest message is evicted first.
	HistoryCapacity = 100
	// HistoryBackfill is the number of recent messages delivered to a
	// newly joined member.
	HistoryBackfill = 50
)

// Message is an immutable chat message.
type Message struct {
	ID         string
	RoomID     string
	SenderID   string
	SenderName string
	Text       string
	SourceLang string
	Timestamp  time.Time
}

// history is a bounded FIFO of messages for one room.
type history struct {
	messages []Message
}

func newHistory() *history {
	return &history{messages: make([]Message, 0, HistoryCapacity)}
}

// Append adds a message, evicting the oldest beyond capacity.
func (h *history) Append(msg Message) {
	h.messages = append(h.messages, msg)
	if len(h.messages) > HistoryCapacity {
		h.messages = h.messages[len(h.messages)-HistoryCapacity:]
	}
}

// Recent returns up to n most recent messages in chronological order.
// The returned slice is a copy.
func (h *history) Recent(n int) []Message {
	start := 0
	if len(h.messages) > n {
		start = len(h.messages) - n
	}
	out := make([]Message, len(h.messages)-start)
	copy(out, h.messages[start:])
	return out
}

// Len returns the number of stored messages.
func (h *history) Len() int {
	return len(h.messages)
}
