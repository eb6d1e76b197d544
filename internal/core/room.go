package core

import "time"

// Room is a live chat room. The code is unique among live rooms and becomes
// reusable once the room is destroyed.
type Room struct {
	ID        string
	Code      string
	Name      string
	HostID    string
	CreatedAt time.Time
}

// NewRoom constructs a room hosted by the given user.
func NewRoom(id, code, name, hostID string) *Room {
	return &Room{
		ID:        id,
		Code:      code,
		Name:      name,
		HostID:    hostID,
		CreatedAt: time.Now(),
	}
}
