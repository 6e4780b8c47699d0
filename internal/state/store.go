package state

import (
	"fmt"
	"sync"
	"time"

	"github.com/five82/rollcall/internal/record"
)

// Snapshot is the collection the users screen renders from.
type Snapshot struct {
	Users       []record.Record
	Loaded      bool // at least one fetch has finished
	LastUpdated time.Time
	LastError   error
}

// Failed reports whether the latest fetch failed.
func (s Snapshot) Failed() bool {
	return s.LastError != nil
}

// Store holds the fetched collection for the lifetime of a mounted screen.
type Store struct {
	mu       sync.RWMutex
	snapshot Snapshot
	gen      uint64
}

// Update records the outcome of a fetch. When err is non-nil the previous
// collection is kept and the error recorded.
func (s *Store) Update(users []record.Record, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.apply(users, err)
}

// UpdateIfCurrent is Update for a fetch started at generation gen. It does
// nothing and returns false once Reset has started a newer generation.
func (s *Store) UpdateIfCurrent(gen uint64, users []record.Record, err error) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.gen {
		return false
	}
	s.apply(users, err)
	return true
}

func (s *Store) apply(users []record.Record, err error) {
	s.snapshot.Loaded = true
	s.snapshot.LastUpdated = time.Now()
	if err != nil {
		s.snapshot.LastError = err
		return
	}
	s.snapshot.Users = cloneUsers(users)
	s.snapshot.LastError = nil
}

// Reset clears the store, as when the screen mounts or unmounts, and returns
// the new generation.
func (s *Store) Reset() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshot = Snapshot{}
	s.gen++
	return s.gen
}

// Snapshot returns a copy of the current snapshot.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := s.snapshot
	snap.Users = cloneUsers(s.snapshot.Users)
	if s.snapshot.LastError != nil {
		snap.LastError = fmt.Errorf("%w", s.snapshot.LastError)
	}
	return snap
}

func cloneUsers(users []record.Record) []record.Record {
	if len(users) == 0 {
		return nil
	}
	dup := make([]record.Record, len(users))
	copy(dup, users)
	return dup
}
