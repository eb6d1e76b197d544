package core

import (
	"strconv"
	"testing"
)

func TestHistoryEvictsOldestFirst(t *testing.T) {
	h := newHistory()
	for i := range HistoryCapacity + 30 {
		h.Append(Message{ID: strconv.Itoa(i)})
	}

	if h.Len() != HistoryCapacity {
		t.Fatalf("len = %d, want %d", h.Len(), HistoryCapacity)
	}

	all := h.Recent(HistoryCapacity)
	if all[0].ID != "30" {
		t.Fatalf("oldest surviving message = %s, want 30", all[0].ID)
	}
	if all[len(all)-1].ID != strconv.Itoa(HistoryCapacity+29) {
		t.Fatalf("newest message = %s", all[len(all)-1].ID)
	}
}

func TestHistoryRecentReturnsTail(t *testing.T) {
	h := newHistory()
	for i := range 10 {
		h.Append(Message{ID: strconv.Itoa(i)})
	}

	recent := h.Recent(3)
	if len(recent) != 3 {
		t.Fatalf("len = %d, want 3", len(recent))
	}
	if recent[0].ID != "7" || recent[2].ID != "9" {
		t.Fatalf("unexpected tail: %v", recent)
	}

	// Asking for more than stored returns everything.
	if got := h.Recent(50); len(got) != 10 {
		t.Fatalf("len = %d, want 10", len(got))
	}
}

func TestHistoryRecentCopies(t *testing.T) {
	h := newHistory()
	h.Append(Message{ID: "a", Text: "original"})

	recent := h.Recent(1)
	recent[0].Text = "mutated"

	if h.Recent(1)[0].Text != "original" {
		t.Fatal("Recent exposed internal storage")
	}
}
