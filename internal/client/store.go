package client

import (
	"sync"

	"github.com/wordduel/wordduel/internal/engine"
)

// Store is the synchronization store: a single cell holding the latest
// authoritative snapshot. Replacement is wholesale; nothing is diffed or
// merged, so whatever the authority last sent is the entire truth. The
// version gate discards snapshots older than the one already held, which is
// the only client-side defense against out-of-order delivery.
type Store struct {
	mu      sync.RWMutex
	version int
	state   engine.State
	has     bool
}

func NewStore() *Store {
	return &Store{}
}

// Replace installs a new snapshot unless it is stale. Reports whether the
// snapshot was accepted.
func (st *Store) Replace(version int, s engine.State) bool {
	st.mu.Lock()
	defer st.mu.Unlock()
	if st.has && version < st.version {
		return false
	}
	st.version = version
	st.state = s.Clone()
	st.has = true
	return true
}

// Snapshot returns a copy of the held state; ok is false before the first
// GAME_STATE arrives.
func (st *Store) Snapshot() (state engine.State, version int, ok bool) {
	st.mu.RLock()
	defer st.mu.RUnlock()
	if !st.has {
		return engine.State{}, 0, false
	}
	return st.state.Clone(), st.version, true
}
