// Package internal
//
// This file provides the per-database expiration ledger.
//
// The implementation combines a binary min-heap with a hash map to provide
// both efficient deadline-ordered operations and key-based access:
//
//   - O(log n) for Schedule and Pop
//   - O(1) for key-based lookups and existence checks
//   - O(log n) for key-based cancellation
//
// The heap keeps entries sorted ascending by absolute expiration instant, so
// the lazy expiry sweep is a prefix scan: Peek until the head's instant lies
// in the future. The map gives persist, del and overwrite paths direct
// removal by key, which keeps the invariant that a key appears at most once
// and that no entry outlives its key.
//
// The ledger is not thread-safe; the surrounding store is single-caller.
package internal

import (
	"container/heap"
	"time"
)

// Entry is a scheduled expiration: the key and its absolute deadline.
type Entry struct {
	Key   string
	At    time.Time
	index int // Index in the heap, maintained by the heap package
}

// Ledger is the deadline-ordered expiration queue of one database.
type Ledger struct {
	entries []*Entry
	byKey   map[string]*Entry
}

// NewLedger creates an empty expiration ledger.
func NewLedger() *Ledger {
	return &Ledger{
		entries: make([]*Entry, 0),
		byKey:   make(map[string]*Entry),
	}
}

// Len returns the number of scheduled entries (part of heap.Interface).
func (l *Ledger) Len() int { return len(l.entries) }

// Less orders entries by deadline, earliest first (part of heap.Interface).
func (l *Ledger) Less(i, j int) bool {
	return l.entries[i].At.Before(l.entries[j].At)
}

// Swap exchanges entries at positions i and j (part of heap.Interface).
func (l *Ledger) Swap(i, j int) {
	l.entries[i], l.entries[j] = l.entries[j], l.entries[i]
	l.entries[i].index = i
	l.entries[j].index = j
}

// Push adds an entry to the heap (part of heap.Interface).
func (l *Ledger) Push(x interface{}) {
	n := len(l.entries)
	entry := x.(*Entry)
	entry.index = n
	l.entries = append(l.entries, entry)
	l.byKey[entry.Key] = entry
}

// Pop removes and returns the earliest entry (part of heap.Interface).
func (l *Ledger) Pop() interface{} {
	old := l.entries
	n := len(old)
	entry := old[n-1]
	old[n-1] = nil   // Avoid memory leak
	entry.index = -1 // For safety
	l.entries = old[:n-1]
	delete(l.byKey, entry.Key)
	return entry
}

// Schedule installs or replaces the expiration deadline for a key.
func (l *Ledger) Schedule(key string, at time.Time) {
	if entry, exists := l.byKey[key]; exists {
		entry.At = at
		heap.Fix(l, entry.index)
		return
	}

	heap.Push(l, &Entry{
		Key: key,
		At:  at,
	})
}

// Cancel removes the entry for a key, returning its deadline if one existed.
func (l *Ledger) Cancel(key string) (time.Time, bool) {
	entry, exists := l.byKey[key]
	if !exists {
		return time.Time{}, false
	}

	heap.Remove(l, entry.index)
	return entry.At, true
}

// Peek returns the earliest entry without removing it.
func (l *Ledger) Peek() (*Entry, bool) {
	if len(l.entries) == 0 {
		return nil, false
	}
	return l.entries[0], true
}

// PopEarliest removes and returns the earliest entry.
func (l *Ledger) PopEarliest() (*Entry, bool) {
	if len(l.entries) == 0 {
		return nil, false
	}
	return heap.Pop(l).(*Entry), true
}

// Contains checks if a key has a scheduled expiration.
func (l *Ledger) Contains(key string) bool {
	_, exists := l.byKey[key]
	return exists
}

// Deadline returns the scheduled deadline for a key without removing it.
func (l *Ledger) Deadline(key string) (time.Time, bool) {
	entry, exists := l.byKey[key]
	if !exists {
		return time.Time{}, false
	}
	return entry.At, true
}
