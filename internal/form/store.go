package form

import (
	"sync"
	"time"

	"github.com/Conceptual-Machines/prompt-orchestrator-ui/internal/logger"
)

const (
	// DefaultIdleTimeout matches the lifetime of the session cookie
	DefaultIdleTimeout = 12 * time.Hour

	sweepInterval = time.Minute
)

type storeEntry struct {
	state    *State
	lastSeen time.Time
}

// Store keeps one State per browser session, in memory only. Sessions not
// seen for longer than the idle timeout are dropped on a later Get.
type Store struct {
	mu        sync.Mutex
	states    map[string]*storeEntry
	idle      time.Duration
	now       func() time.Time
	lastSweep time.Time
}

// StoreOption customizes a Store
type StoreOption func(*Store)

// WithIdleTimeout sets how long an untouched session is kept
func WithIdleTimeout(d time.Duration) StoreOption {
	return func(st *Store) { st.idle = d }
}

// WithClock replaces time.Now
func WithClock(now func() time.Time) StoreOption {
	return func(st *Store) { st.now = now }
}

func NewStore(opts ...StoreOption) *Store {
	st := &Store{
		states: make(map[string]*storeEntry),
		idle:   DefaultIdleTimeout,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(st)
	}
	st.lastSweep = st.now()
	return st
}

// Get returns the state for a session, creating it with defaults on first use.
// Every call marks the session as active.
func (st *Store) Get(sessionID string) *State {
	st.mu.Lock()
	defer st.mu.Unlock()

	now := st.now()
	if now.Sub(st.lastSweep) >= sweepInterval {
		st.sweep(now)
	}

	e, ok := st.states[sessionID]
	if !ok {
		e = &storeEntry{state: NewState()}
		st.states[sessionID] = e
	}
	e.lastSeen = now
	return e.state
}

// sweep drops idle sessions; callers hold st.mu
func (st *Store) sweep(now time.Time) {
	removed := 0
	for id, e := range st.states {
		if now.Sub(e.lastSeen) > st.idle {
			delete(st.states, id)
			removed++
		}
	}
	st.lastSweep = now

	if removed > 0 {
		logger.Debug("Evicted idle form sessions", logger.Fields{
			"evicted":   removed,
			"remaining": len(st.states),
		})
	}
}

// Len returns the number of tracked sessions
func (st *Store) Len() int {
	st.mu.Lock()
	defer st.mu.Unlock()
	return len(st.states)
}
