package core

import (
	"strings"

	"github.com/samber/lo"
)

// entityStore owns every connection, user, room, membership and history
// record. Room insertion and removal touch all room-keyed mappings in one
// call so no partially-applied cross-reference can be observed.
//
// The store is not safe for concurrent use; the Manager's mutex is the
// single mutual-exclusion domain around it.
type entityStore struct {
	senders   map[string]Sender   // session id -> live connection
	users     map[string]*User    // session id -> user
	rooms     map[string]*Room    // room id -> room
	codes     map[string]string   // room code (uppercase) -> room id
	members   map[string][]string // room id -> ordered member ids
	histories map[string]*history // room id -> bounded message history
}

func newEntityStore() *entityStore {
	return &entityStore{
		senders:   make(map[string]Sender),
		users:     make(map[string]*User),
		rooms:     make(map[string]*Room),
		codes:     make(map[string]string),
		members:   make(map[string][]string),
		histories: make(map[string]*history),
	}
}

// addSession registers a connection and its user under one session id.
func (s *entityStore) addSession(id string, sender Sender, user *User) {
	s.senders[id] = sender
	s.users[id] = user
}

// removeSession drops the connection and user records.
func (s *entityStore) removeSession(id string) {
	delete(s.senders, id)
	delete(s.users, id)
}

func (s *entityStore) sender(id string) (Sender, bool) {
	sender, ok := s.senders[id]
	return sender, ok
}

func (s *entityStore) user(id string) (*User, bool) {
	u, ok := s.users[id]
	return u, ok
}

// insertRoom registers the room, its code mapping, its singleton membership
// and an empty history as one logical step.
func (s *entityStore) insertRoom(room *Room, hostID string) {
	s.rooms[room.ID] = room
	s.codes[room.Code] = room.ID
	s.members[room.ID] = []string{hostID}
	s.histories[room.ID] = newHistory()
}

// removeRoom drops the room and every room-keyed mapping as one logical step.
func (s *entityStore) removeRoom(roomID string) {
	if room, ok := s.rooms[roomID]; ok {
		delete(s.codes, room.Code)
	}
	delete(s.rooms, roomID)
	delete(s.members, roomID)
	delete(s.histories, roomID)
}

func (s *entityStore) room(id string) (*Room, bool) {
	room, ok := s.rooms[id]
	return room, ok
}

// roomByCode resolves a code to a live room in one step, case-insensitively.
func (s *entityStore) roomByCode(code string) (*Room, bool) {
	roomID, ok := s.codes[strings.ToUpper(code)]
	if !ok {
		return nil, false
	}
	room, ok := s.rooms[roomID]
	return room, ok
}

func (s *entityStore) codeInUse(code string) bool {
	_, ok := s.codes[code]
	return ok
}

// addMember appends the user to the room's membership if not already present.
func (s *entityStore) addMember(roomID, userID string) {
	if lo.Contains(s.members[roomID], userID) {
		return
	}
	s.members[roomID] = append(s.members[roomID], userID)
}

// removeMember drops the user from the room's membership and reports the
// remaining member count.
func (s *entityStore) removeMember(roomID, userID string) int {
	ids, ok := s.members[roomID]
	if !ok {
		return 0
	}
	s.members[roomID] = lo.Without(ids, userID)
	return len(s.members[roomID])
}

func (s *entityStore) memberIDs(roomID string) []string {
	return s.members[roomID]
}

func (s *entityStore) roomHistory(roomID string) (*history, bool) {
	h, ok := s.histories[roomID]
	return h, ok
}

func (s *entityStore) connectionCount() int {
	return len(s.senders)
}

func (s *entityStore) roomCount() int {
	return len(s.rooms)
}

func (s *entityStore) messageCount() int {
	return lo.SumBy(lo.Values(s.histories), func(h *history) int { return h.Len() })
}
