package window

import "sync"

// Snapshot is the last-known mapping from window id to resolved
// identity. It exists solely so Activate can resolve a window's owning
// process and real title without re-enumerating on every call.
//
// The contents always reflect exactly the most recent enumeration:
// Replace swaps the whole mapping under one lock, so readers see either
// the old or the new snapshot in full, never a mix. Entries absent from
// the new pass are discarded even if they are still on screen.
type Snapshot struct {
	mu      sync.RWMutex
	entries map[string]Entry
}

// NewSnapshot returns an empty snapshot.
func NewSnapshot() *Snapshot {
	return &Snapshot{entries: make(map[string]Entry)}
}

// Replace atomically swaps the snapshot contents for the given entries.
func (s *Snapshot) Replace(entries []Entry) {
	next := make(map[string]Entry, len(entries))
	for _, e := range entries {
		next[e.ID] = e
	}

	s.mu.Lock()
	s.entries = next
	s.mu.Unlock()
}

// Find returns the entry for id, if present.
func (s *Snapshot) Find(id string) (Entry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.entries[id]
	return e, ok
}

// Clear discards all entries.
func (s *Snapshot) Clear() {
	s.mu.Lock()
	s.entries = make(map[string]Entry)
	s.mu.Unlock()
}

// Len returns the number of cached entries.
func (s *Snapshot) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}
