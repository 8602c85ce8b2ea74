package eqwho

import "sync"

// Store is an insertion-ordered collection of roster snapshots with
// duplicate suppression. Identity is full raw-text plus timestamp
// equality, so two genuinely distinct in-game snapshots that render
// identical text are kept once. Insertion order (oldest first) is the only
// ordering guarantee; callers wanting reverse-chronological display do
// their own ordering.
type Store struct {
	mu    sync.RWMutex
	snaps []Snapshot
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{}
}

// AddIfNew appends the snapshot unless an equal one (same raw text and
// timestamp) is already held. Reports whether the snapshot was added.
func (s *Store) AddIfNew(snap Snapshot) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.snaps {
		if existing.Same(snap) {
			return false
		}
	}
	s.snaps = append(s.snaps, snap)
	return true
}

// ReplaceAll atomically swaps the store's contents, used by historical
// loads. The input slice is copied.
func (s *Store) ReplaceAll(snaps []Snapshot) {
	replacement := make([]Snapshot, len(snaps))
	copy(replacement, snaps)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.snaps = replacement
}

// Clear removes all snapshots.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snaps = nil
}

// All returns the snapshots in insertion order, oldest first.
func (s *Store) All() []Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Snapshot, len(s.snaps))
	copy(out, s.snaps)
	return out
}

// Len returns the number of stored snapshots.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.snaps)
}
