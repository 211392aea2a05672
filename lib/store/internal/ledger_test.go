package internal

import (
	"sort"
	"testing"
	"time"
)

var base = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

// TestNewLedger tests the creation of a new Ledger
func TestNewLedger(t *testing.T) {
	l := NewLedger()

	if l == nil {
		t.Fatal("NewLedger() returned nil")
	}

	if l.Len() != 0 {
		t.Errorf("New ledger should be empty, but has length %d", l.Len())
	}

	if len(l.byKey) != 0 {
		t.Errorf("New ledger's map should be empty, but has %d entries", len(l.byKey))
	}
}

// TestSchedule tests adding entries to the ledger
func TestSchedule(t *testing.T) {
	l := NewLedger()

	l.Schedule("a", base.Add(100*time.Second))
	l.Schedule("b", base.Add(200*time.Second))
	l.Schedule("c", base.Add(50*time.Second))

	if l.Len() != 3 {
		t.Errorf("Ledger should have 3 entries, but has %d", l.Len())
	}

	for _, key := range []string{"a", "b", "c"} {
		if !l.Contains(key) {
			t.Errorf("Ledger should contain key %s", key)
		}
	}

	// min heap, so the earliest deadline should be first
	entry, exists := l.Peek()
	if !exists {
		t.Fatal("Peek() should return an entry")
	}

	if entry.Key != "c" || !entry.At.Equal(base.Add(50*time.Second)) {
		t.Errorf("Expected earliest entry to be (c, base+50s), got (%s, %v)", entry.Key, entry.At)
	}
}

// TestScheduleReplaces tests that re-scheduling a key updates its deadline
// without creating a second entry
func TestScheduleReplaces(t *testing.T) {
	l := NewLedger()

	l.Schedule("a", base.Add(100*time.Second))
	l.Schedule("b", base.Add(200*time.Second))
	l.Schedule("a", base.Add(300*time.Second))

	if l.Len() != 2 {
		t.Errorf("Ledger should still have 2 entries, but has %d", l.Len())
	}

	deadline, exists := l.Deadline("a")
	if !exists {
		t.Fatal("Entry for key a should exist")
	}
	if !deadline.Equal(base.Add(300 * time.Second)) {
		t.Errorf("Expected deadline base+300s, got %v", deadline)
	}

	// b is now the heap head
	entry, _ := l.Peek()
	if entry.Key != "b" {
		t.Errorf("Expected head to be b after update, got %s", entry.Key)
	}
}

// TestCancel tests key-based removal
func TestCancel(t *testing.T) {
	l := NewLedger()

	l.Schedule("a", base.Add(100*time.Second))
	l.Schedule("b", base.Add(50*time.Second))

	deadline, ok := l.Cancel("b")
	if !ok {
		t.Fatal("Cancel of existing key should report true")
	}
	if !deadline.Equal(base.Add(50 * time.Second)) {
		t.Errorf("Cancel should return the deadline, got %v", deadline)
	}

	if l.Contains("b") {
		t.Error("Cancelled key should no longer be in the ledger")
	}

	if _, ok := l.Cancel("b"); ok {
		t.Error("Cancel of missing key should report false")
	}

	entry, _ := l.Peek()
	if entry.Key != "a" {
		t.Errorf("Remaining head should be a, got %s", entry.Key)
	}
}

// TestPopEarliestOrder tests that entries drain in ascending deadline order
func TestPopEarliestOrder(t *testing.T) {
	l := NewLedger()

	deadlines := []int{7, 3, 11, 1, 5, 9}
	for i, d := range deadlines {
		l.Schedule(string(rune('a'+i)), base.Add(time.Duration(d)*time.Second))
	}

	sorted := append([]int(nil), deadlines...)
	sort.Ints(sorted)

	for _, want := range sorted {
		entry, ok := l.PopEarliest()
		if !ok {
			t.Fatal("PopEarliest() should return an entry")
		}
		if !entry.At.Equal(base.Add(time.Duration(want) * time.Second)) {
			t.Errorf("Expected deadline base+%ds, got %v", want, entry.At)
		}
	}

	if _, ok := l.PopEarliest(); ok {
		t.Error("PopEarliest() on empty ledger should report false")
	}
}
