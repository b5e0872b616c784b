package form

import (
	"sync"

	"github.com/Conceptual-Machines/prompt-orchestrator-ui/internal/catalog"
	"github.com/Conceptual-Machines/prompt-orchestrator-ui/internal/models"
)

// Phase is the submission state of a form
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseLoading
	PhaseFailed
	PhaseSucceeded
)

func (p Phase) String() string {
	switch p {
	case PhaseLoading:
		return "loading"
	case PhaseFailed:
		return "failed"
	case PhaseSucceeded:
		return "succeeded"
	default:
		return "idle"
	}
}

// State is the form-state container for one browser session.
// At most one of loading, err and response is set at any time.
type State struct {
	mu         sync.Mutex
	selections Selections
	loading    bool
	err        error
	response   *models.GenerationResponse
	seq        uint64
}

// Snapshot is an immutable copy of State used for rendering
type Snapshot struct {
	Selections Selections
	Phase      Phase
	Err        error
	Response   *models.GenerationResponse
	Seq        uint64
}

// NewState returns a state holding the catalog defaults
func NewState() *State {
	return &State{selections: DefaultSelections()}
}

// Reset returns every field to the catalog defaults. The sequence keeps
// counting so results of requests issued before the reset are discarded.
func (s *State) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.selections = DefaultSelections()
	s.loading = false
	s.err = nil
	s.response = nil
	s.seq++
}

// Apply replaces the selections without touching the submission phase
func (s *State) Apply(sel Selections) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selections = sel
}

// SetLanguage changes only the language. Unknown codes are ignored.
func (s *State) SetLanguage(code string) bool {
	if _, ok := catalog.FindLanguage(code); !ok {
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.selections.Language = code
	return true
}

// BeginSubmit records sel as the submitted selections, clears any previous
// result, marks the form as loading and returns the new request's sequence number.
func (s *State) BeginSubmit(sel Selections) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.selections = sel
	s.loading = true
	s.err = nil
	s.response = nil
	s.seq++
	return s.seq
}

// Complete stores resp if seq is still the latest request. It reports whether
// the response was applied.
func (s *State) Complete(seq uint64, resp *models.GenerationResponse) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if seq != s.seq {
		return false
	}
	s.loading = false
	s.err = nil
	s.response = resp
	return true
}

// Fail stores err if seq is still the latest request. It reports whether the
// error was applied.
func (s *State) Fail(seq uint64, err error) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if seq != s.seq {
		return false
	}
	s.loading = false
	s.response = nil
	s.err = err
	return true
}

// Snapshot copies the current state
func (s *State) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := Snapshot{
		Selections: s.selections,
		Err:        s.err,
		Response:   s.response,
		Seq:        s.seq,
	}
	switch {
	case s.loading:
		snap.Phase = PhaseLoading
	case s.err != nil:
		snap.Phase = PhaseFailed
	case s.response != nil:
		snap.Phase = PhaseSucceeded
	default:
		snap.Phase = PhaseIdle
	}
	return snap
}
