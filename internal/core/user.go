package core

import "time"

// Defaults applied to a freshly connected user.
const (
	DefaultUserName = "Anonymous"
	DefaultLanguage = "en"
)

// User is a chat participant, one per live connection.
// RoomID is the only mutable cross-reference: it is either empty or names a
// room whose membership contains this user.
type User struct {
	ID       string
	Name     string
	Language string
	RoomID   string
	JoinedAt time.Time // when the user entered their current room
}

// NewUser constructs a user with default profile values.
func NewUser(id string) *User {
	return &User{
		ID:       id,
		Name:     DefaultUserName,
		Language: DefaultLanguage,
	}
}

// Member is a user projected for membership listings. IsHost is derived from
// the room's host id at projection time, never stored.
type Member struct {
	ID       string
	Name     string
	Language string
	IsHost   bool
	JoinedAt time.Time
}

// AsMember projects the user into a membership entry.
func (u *User) AsMember(isHost bool) Member {
	joined := u.JoinedAt
	if joined.IsZero() {
		joined = time.Now()
	}
	return Member{
		ID:       u.ID,
		Name:     u.Name,
		Language: u.Language,
		IsHost:   isHost,
		JoinedAt: joined,
	}
}
