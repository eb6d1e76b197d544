package core

// EventKind is a notification the core emits to connected clients.
type EventKind int

const (
	// EventConnected confirms a new session and carries its id.
	EventConnected EventKind = iota
	// EventRoomCreated answers a successful room creation.
	EventRoomCreated
	// EventRoomJoined answers a successful join with members and history.
	EventRoomJoined
	// EventUserJoined notifies room members about a new member, and doubles
	// as a member-info refresh when IsUpdate is set.
	EventUserJoined
	// EventUserLeft notifies room members that a member left.
	EventUserLeft
	// EventNewMessage delivers a chat message to room members.
	EventNewMessage
	// EventRoomInfo answers a room info request.
	EventRoomInfo
	// EventProfileUpdated confirms a profile change to the requester.
	EventProfileUpdated
	// EventError delivers a structured domain error.
	EventError
	// EventPong answers a liveness probe.
	EventPong
)

// Event describes what happened in the system. Fields are populated per kind.
type Event struct {
	Kind      EventKind
	SessionID string
	Room      *Room
	Members   []Member
	Messages  []Message
	User      *Member
	UserID    string
	UserName  string
	IsUpdate  bool
	Message   *Message
	Error     *CoreError
}

// Sender delivers events to a single connection. Implementations must not
// block; a failed or dropped send never affects manager state.
type Sender interface {
	Send(ev *Event) error
}
