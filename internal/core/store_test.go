package core

import "testing"

func TestRemoveMemberUnknownRoomLeavesStoreUntouched(t *testing.T) {
	s := newEntityStore()

	if got := s.removeMember("ghost-room", "someone"); got != 0 {
		t.Fatalf("remaining = %d, want 0", got)
	}
	if _, ok := s.members["ghost-room"]; ok {
		t.Fatal("membership entry created for unknown room")
	}
}

func TestRemoveRoomDropsEveryRoomKeyedMapping(t *testing.T) {
	s := newEntityStore()
	room := NewRoom(newID(), newRoomCode(), "Trip", "host-1")
	s.insertRoom(room, "host-1")

	s.removeRoom(room.ID)

	if _, ok := s.rooms[room.ID]; ok {
		t.Fatal("room survived removal")
	}
	if s.codeInUse(room.Code) {
		t.Fatalf("code %q still mapped", room.Code)
	}
	if _, ok := s.members[room.ID]; ok {
		t.Fatal("membership survived removal")
	}
	if _, ok := s.histories[room.ID]; ok {
		t.Fatal("history survived removal")
	}
}
