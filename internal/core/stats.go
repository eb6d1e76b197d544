package core

import "time"

// Stats is a point-in-time snapshot for informational endpoints.
type Stats struct {
	Connections   int
	Rooms         int
	TotalMessages int
}

// Snapshot returns current counters.
func (m *Manager) Snapshot() Stats {
	m.mu.Lock()
	defer m.mu.Unlock()

	return Stats{
		Connections:   m.store.connectionCount(),
		Rooms:         m.store.roomCount(),
		TotalMessages: m.store.messageCount(),
	}
}

// RoomPublic is the externally visible description of a live room. It never
// carries member identities or message history.
type RoomPublic struct {
	Name         string
	Code         string
	MemberCount  int
	MessageCount int
	CreatedAt    time.Time
}

// LookupRoom resolves a code to public room info, case-insensitively.
func (m *Manager) LookupRoom(code string) (RoomPublic, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	room, ok := m.store.roomByCode(code)
	if !ok {
		return RoomPublic{}, false
	}

	msgCount := 0
	if h, ok := m.store.roomHistory(room.ID); ok {
		msgCount = h.Len()
	}

	return RoomPublic{
		Name:         room.Name,
		Code:         room.Code,
		MemberCount:  len(m.store.memberIDs(room.ID)),
		MessageCount: msgCount,
		CreatedAt:    room.CreatedAt,
	}, true
}
