package config

import "sync"

// Store owns the current settings and hands out immutable snapshots. The
// settings UI (an external collaborator) calls Update; the pipeline only
// ever reads a Snapshot at the start of a run.
type Store struct {
	mu  sync.RWMutex
	cur Settings
}

func NewStore(s Settings) *Store {
	return &Store{cur: s}
}

// Snapshot returns a copy of the current settings.
func (st *Store) Snapshot() Settings {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return st.cur
}

// Update replaces the current settings wholesale.
func (st *Store) Update(s Settings) {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.cur = s
}
