package core

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/samber/lo"

	"github.com/QuangTrung1996/small100-chat-server/internal/languages"
	"github.com/QuangTrung1996/small100-chat-server/internal/proto"
)

// Manager is the connection/room session manager. It owns the entity store
// and serializes every state mutation behind one mutex; outbound sends are
// best effort and never roll back the mutation that produced them.
type Manager struct {
	mu    sync.Mutex
	store *entityStore
	log   *zerolog.Logger
}

// NewManager constructs a manager with an empty store.
func NewManager(logger *zerolog.Logger) *Manager {
	return &Manager{
		store: newEntityStore(),
		log:   logger,
	}
}

// Connect registers a new session for the given connection, creates its
// default user and returns the session id. The connection receives a
// CONNECTED event.
func (m *Manager) Connect(sender Sender) string {
	m.mu.Lock()
	defer m.mu.Unlock()

	id := newID()
	m.store.addSession(id, sender, NewUser(id))

	m.log.Info().Str("session_id", id).Msg("user connected")

	m.sendTo(id, &Event{Kind: EventConnected, SessionID: id})
	return id
}

// Disconnect tears down a session: the user leaves their room (if any) and
// the user and connection records are removed. Unknown sessions are a no-op.
func (m *Manager) Disconnect(sessionID string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	user, ok := m.store.user(sessionID)
	if !ok {
		return
	}
	if user.RoomID != "" {
		m.leaveRoom(user)
	}
	m.store.removeSession(sessionID)

	m.log.Info().Str("session_id", sessionID).Msg("user disconnected")
}

// CreateRoom creates a room hosted by the session's user, leaving any
// current room first. The creator receives ROOM_CREATED.
func (m *Manager) CreateRoom(sessionID, roomName, hostName, language string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	user, ok := m.store.user(sessionID)
	if !ok {
		m.log.Warn().Str("session_id", sessionID).Msg("create room for unknown session")
		return
	}
	if user.RoomID != "" {
		m.leaveRoom(user)
	}

	if roomName == "" {
		roomName = "New Room"
	}
	if hostName == "" {
		hostName = "Host"
	}
	if language == "" {
		language = DefaultLanguage
	}
	user.Name = hostName
	user.Language = language

	room := NewRoom(newID(), m.freshRoomCode(), roomName, user.ID)
	m.store.insertRoom(room, user.ID)
	user.RoomID = room.ID
	user.JoinedAt = time.Now()

	m.log.Info().
		Str("room_code", room.Code).
		Str("room_name", room.Name).
		Str("host", user.Name).
		Msg("room created")

	m.sendTo(sessionID, &Event{
		Kind:    EventRoomCreated,
		Room:    room,
		Members: []Member{user.AsMember(true)},
	})
}

// JoinRoom resolves the code and adds the session's user to the room,
// leaving any different current room first. The joiner receives ROOM_JOINED
// with members and recent history; other members receive USER_JOINED.
func (m *Manager) JoinRoom(sessionID, roomCode, userName, language string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	user, ok := m.store.user(sessionID)
	if !ok {
		m.log.Warn().Str("session_id", sessionID).Msg("join room for unknown session")
		return
	}

	room, ok := m.store.roomByCode(roomCode)
	if !ok {
		m.sendError(sessionID, ErrCodeInvalidRoomCode, "Room not found")
		return
	}

	if user.RoomID != "" && user.RoomID != room.ID {
		m.leaveRoom(user)
	}

	if userName == "" {
		userName = "Guest"
	}
	if language == "" {
		language = DefaultLanguage
	}
	user.Name = userName
	user.Language = language
	if user.RoomID != room.ID {
		user.RoomID = room.ID
		user.JoinedAt = time.Now()
	}
	m.store.addMember(room.ID, user.ID)

	m.log.Info().
		Str("room_code", room.Code).
		Str("user", user.Name).
		Msg("user joined room")

	var recent []Message
	if h, ok := m.store.roomHistory(room.ID); ok {
		recent = h.Recent(HistoryBackfill)
	}

	m.sendTo(sessionID, &Event{
		Kind:     EventRoomJoined,
		Room:     room,
		Members:  m.roomMembers(room),
		Messages: recent,
	})

	joined := user.AsMember(user.ID == room.HostID)
	m.broadcast(room.ID, &Event{Kind: EventUserJoined, User: &joined}, sessionID)
}

// LeaveRoom removes the session's user from their current room. No-op when
// not in a room.
func (m *Manager) LeaveRoom(sessionID string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	user, ok := m.store.user(sessionID)
	if !ok {
		return
	}
	m.leaveRoom(user)
}

// leaveRoom removes the user from their room, notifies remaining members
// and destroys the room when it becomes empty. Idempotent; the caller must
// hold the mutex.
func (m *Manager) leaveRoom(user *User) {
	roomID := user.RoomID
	if roomID == "" {
		return
	}

	remaining := m.store.removeMember(roomID, user.ID)
	room, roomExists := m.store.room(roomID)

	// Remaining members hear about the departure before any destruction.
	if roomExists {
		m.broadcast(roomID, &Event{
			Kind:     EventUserLeft,
			UserID:   user.ID,
			UserName: user.Name,
		}, "")
		m.log.Info().Str("room_code", room.Code).Str("user", user.Name).Msg("user left room")
	}

	user.RoomID = ""
	user.JoinedAt = time.Time{}

	if roomExists && remaining == 0 {
		m.store.removeRoom(roomID)
		m.log.Info().Str("room_code", room.Code).Msg("empty room destroyed")
	}
}

// SendMessage appends a message to the sender's room history and broadcasts
// it to every member including the sender. Empty-after-trim text is ignored.
func (m *Manager) SendMessage(sessionID, text string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	user, ok := m.store.user(sessionID)
	if !ok {
		return
	}
	if user.RoomID == "" {
		m.sendError(sessionID, ErrCodeNotInRoom, "You must join a room first")
		return
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return
	}

	lang := user.Language
	if lang == languages.Auto {
		lang = languages.Detect(text)
	}

	msg := Message{
		ID:         newID(),
		RoomID:     user.RoomID,
		SenderID:   user.ID,
		SenderName: user.Name,
		Text:       text,
		SourceLang: lang,
		Timestamp:  time.Now(),
	}

	if h, ok := m.store.roomHistory(user.RoomID); ok {
		h.Append(msg)
	}

	m.broadcast(user.RoomID, &Event{Kind: EventNewMessage, Message: &msg}, "")
}

// UpdateProfile overwrites the supplied profile fields and confirms to the
// requester. A name change while in a room is announced to other members;
// a language-only change is not.
func (m *Manager) UpdateProfile(sessionID string, name, language *string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	user, ok := m.store.user(sessionID)
	if !ok {
		return
	}

	oldName := user.Name
	if name != nil && *name != "" {
		user.Name = *name
	}
	if language != nil && *language != "" {
		user.Language = *language
	}

	isHost := false
	if room, ok := m.store.room(user.RoomID); ok {
		isHost = user.ID == room.HostID
	}
	updated := user.AsMember(isHost)

	m.sendTo(sessionID, &Event{Kind: EventProfileUpdated, User: &updated})

	if user.RoomID != "" && user.Name != oldName {
		m.broadcast(user.RoomID, &Event{
			Kind:     EventUserJoined,
			User:     &updated,
			IsUpdate: true,
		}, sessionID)
	}
}

// RoomInfo sends the requester their room's current state.
func (m *Manager) RoomInfo(sessionID string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	user, ok := m.store.user(sessionID)
	if !ok || user.RoomID == "" {
		m.sendError(sessionID, ErrCodeNotInRoom, "You are not in a room")
		return
	}

	room, ok := m.store.room(user.RoomID)
	if !ok {
		// Guard against a membership reference the store no longer backs.
		m.sendError(sessionID, ErrCodeRoomNotFound, "Room not found")
		return
	}

	m.sendTo(sessionID, &Event{
		Kind:    EventRoomInfo,
		Room:    room,
		Members: m.roomMembers(room),
	})
}

// Dispatch routes one decoded inbound request to the matching operation.
// Every failure is converted to an ERROR event for the requester; the
// session stays usable.
func (m *Manager) Dispatch(sessionID string, in proto.Inbound) {
	defer func() {
		if r := recover(); r != nil {
			m.log.Error().Str("session_id", sessionID).Interface("panic", r).Msg("dispatch panic")
			m.mu.Lock()
			m.sendError(sessionID, ErrCodeInternal, fmt.Sprint(r))
			m.mu.Unlock()
		}
	}()

	switch in.Type {
	case proto.TypeCreateRoom:
		var p proto.CreateRoomPayload
		if !m.decode(sessionID, in, &p) {
			return
		}
		m.CreateRoom(sessionID, p.RoomName, p.HostName, p.Language)
	case proto.TypeJoinRoom:
		var p proto.JoinRoomPayload
		if !m.decode(sessionID, in, &p) {
			return
		}
		m.JoinRoom(sessionID, p.RoomCode, p.UserName, p.Language)
	case proto.TypeLeaveRoom:
		m.LeaveRoom(sessionID)
	case proto.TypeSendMessage:
		var p proto.SendMessagePayload
		if !m.decode(sessionID, in, &p) {
			return
		}
		m.SendMessage(sessionID, p.Text)
	case proto.TypeUpdateProfile:
		var p proto.UpdateProfilePayload
		if !m.decode(sessionID, in, &p) {
			return
		}
		m.UpdateProfile(sessionID, p.Name, p.Language)
	case proto.TypeGetRoomInfo:
		m.RoomInfo(sessionID)
	case proto.TypePing:
		m.mu.Lock()
		m.sendTo(sessionID, &Event{Kind: EventPong})
		m.mu.Unlock()
	default:
		m.mu.Lock()
		m.sendError(sessionID, ErrCodeInvalidMessageType, fmt.Sprintf("Unknown message type: %s", in.Type))
		m.mu.Unlock()
	}
}

func (m *Manager) decode(sessionID string, in proto.Inbound, v any) bool {
	if err := in.Decode(v); err != nil {
		m.log.Debug().Err(err).Str("type", in.Type).Msg("malformed payload")
		m.mu.Lock()
		m.sendError(sessionID, ErrCodeInvalidJSON, "Invalid request payload")
		m.mu.Unlock()
		return false
	}
	return true
}

// freshRoomCode generates a code unused by any live room. The caller must
// hold the mutex.
func (m *Manager) freshRoomCode() string {
	for {
		code := newRoomCode()
		if !m.store.codeInUse(code) {
			return code
		}
	}
}

// roomMembers projects the room's ordered membership with derived host
// flags. The caller must hold the mutex.
func (m *Manager) roomMembers(room *Room) []Member {
	return lo.FilterMap(m.store.memberIDs(room.ID), func(id string, _ int) (Member, bool) {
		user, ok := m.store.user(id)
		if !ok {
			return Member{}, false
		}
		return user.AsMember(id == room.HostID), true
	})
}

// sendTo delivers an event to one session, best effort. The caller must
// hold the mutex.
func (m *Manager) sendTo(sessionID string, ev *Event) {
	sender, ok := m.store.sender(sessionID)
	if !ok {
		return
	}
	if err := sender.Send(ev); err != nil {
		m.log.Warn().Err(err).Str("session_id", sessionID).Msg("dropping event for session")
	}
}

// broadcast delivers an event to every member of a room, optionally
// excluding one session. A failed send to one member never affects the
// others. The caller must hold the mutex.
func (m *Manager) broadcast(roomID string, ev *Event, excludeID string) {
	for _, memberID := range m.store.memberIDs(roomID) {
		if memberID == excludeID {
			continue
		}
		m.sendTo(memberID, ev)
	}
}

func (m *Manager) sendError(sessionID, code, msg string) {
	m.sendTo(sessionID, &Event{Kind: EventError, Error: coreError(code, msg)})
}
