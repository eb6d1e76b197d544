package core

import (
	"crypto/rand"
	"strconv"
	"time"

	"github.com/google/uuid"
)

// RoomCodeLength is the length of human-shareable room codes.
const RoomCodeLength = 6

const roomCodeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// newID returns a globally unique identifier for sessions, rooms and messages.
func newID() string {
	return uuid.NewString()
}

// newRoomCode returns a short uppercase alphanumeric code.
// Uniqueness among live rooms is enforced by the caller.
func newRoomCode() string {
	buf := make([]byte, RoomCodeLength)
	if _, err := rand.Read(buf); err != nil {
		// Fallback to timestamp digits if crypto/rand is unavailable.
		ts := strconv.FormatInt(time.Now().UnixNano(), 10)
		return ts[len(ts)-RoomCodeLength:]
	}
	for i, b := range buf {
		buf[i] = roomCodeAlphabet[int(b)%len(roomCodeAlphabet)]
	}
	return string(buf)
}
