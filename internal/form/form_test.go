package form

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/Conceptual-Machines/prompt-orchestrator-ui/internal/catalog"
	"github.com/Conceptual-Machines/prompt-orchestrator-ui/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validInput() FormInput {
	return FormInput{
		Brand:       "fullstack-challenge/data/brands/sushi_delight_mx.md",
		Channel:     "whatsapp",
		LabelReason: "new-user|welcome",
		Count:       "2",
		Language:    "en",
	}
}

func TestParseCountClamps(t *testing.T) {
	tests := map[string]int{
		"1":    1,
		"3":    3,
		"5":    5,
		"6":    5,
		"100":  5,
		"0":    1,
		"-4":   1,
		"":     1,
		"abc":  1,
		" 4 ":  4,
		"2.5":  1,
		"9999": 5,
	}
	for raw, want := range tests {
		assert.Equal(t, want, ParseCount(raw), "ParseCount(%q)", raw)
	}
}

func TestNormalizeValidInput(t *testing.T) {
	in := validInput()
	in.Prompt = "  mention the lunch combo  "

	sel, err := in.Normalize()
	require.NoError(t, err)
	assert.Equal(t, "Sushi Delight MX", sel.Brand.Label)
	assert.Equal(t, catalog.LabelReason{Label: "new-user", Reason: "welcome"}, sel.LabelReason)
	assert.Equal(t, "mention the lunch combo", sel.Prompt)
	assert.Equal(t, 2, sel.Count)
}

func TestNormalizeRejectsValuesOutsideCatalog(t *testing.T) {
	mutations := map[string]func(*FormInput){
		"brand":        func(in *FormInput) { in.Brand = "../../etc/passwd" },
		"channel":      func(in *FormInput) { in.Channel = "sms" },
		"label_reason": func(in *FormInput) { in.LabelReason = "new-user-welcome" },
		"language":     func(in *FormInput) { in.Language = "fr" },
	}

	for name, mutate := range mutations {
		t.Run(name, func(t *testing.T) {
			in := validInput()
			mutate(&in)
			_, err := in.Normalize()
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidSelection))
		})
	}
}

func TestDraftKeepsPromptAndCountAsTyped(t *testing.T) {
	in := validInput()
	in.Prompt = "  keep my spacing  "
	in.Count = "9"

	sel, err := in.Draft()
	require.NoError(t, err)
	assert.Equal(t, "  keep my spacing  ", sel.Prompt)
	assert.Equal(t, 9, sel.Count)
	assert.Equal(t, MaxCount, sel.Request().Count, "the count is still clamped on the wire")

	in.Count = "lots"
	sel, err = in.Draft()
	require.NoError(t, err)
	assert.Equal(t, MinCount, sel.Count)

	in.Channel = "fax"
	_, err = in.Draft()
	assert.True(t, errors.Is(err, ErrInvalidSelection))
}

func TestRequestOmitsEmptyPrompt(t *testing.T) {
	sel, err := validInput().Normalize()
	require.NoError(t, err)

	body, err := json.Marshal(sel.Request())
	require.NoError(t, err)
	assert.NotContains(t, string(body), "prompt")

	in := validInput()
	in.Prompt = "   "
	sel, err = in.Normalize()
	require.NoError(t, err)
	body, err = json.Marshal(sel.Request())
	require.NoError(t, err)
	assert.NotContains(t, string(body), "prompt", "whitespace-only prompt is treated as empty")
}

func TestRequestClampsCount(t *testing.T) {
	sel := DefaultSelections()
	sel.Count = 12
	assert.Equal(t, MaxCount, sel.Request().Count)
	sel.Count = 0
	assert.Equal(t, MinCount, sel.Request().Count)
}

func TestNewStateStartsIdleWithDefaults(t *testing.T) {
	snap := NewState().Snapshot()
	assert.Equal(t, PhaseIdle, snap.Phase)
	assert.Equal(t, DefaultSelections(), snap.Selections)
	assert.Nil(t, snap.Err)
	assert.Nil(t, snap.Response)
}

func TestBeginSubmitClearsPreviousResult(t *testing.T) {
	s := NewState()

	seq := s.BeginSubmit(DefaultSelections())
	require.True(t, s.Fail(seq, errors.New("boom")))
	assert.Equal(t, PhaseFailed, s.Snapshot().Phase)

	seq = s.BeginSubmit(DefaultSelections())
	snap := s.Snapshot()
	assert.Equal(t, PhaseLoading, snap.Phase)
	assert.Nil(t, snap.Err)
	assert.Nil(t, snap.Response)

	require.True(t, s.Complete(seq, &models.GenerationResponse{}))
	seq = s.BeginSubmit(DefaultSelections())
	snap = s.Snapshot()
	assert.Equal(t, PhaseLoading, snap.Phase)
	assert.Nil(t, snap.Response)

	require.True(t, s.Fail(seq, errors.New("again")))
	snap = s.Snapshot()
	assert.Equal(t, PhaseFailed, snap.Phase)
	assert.Nil(t, snap.Response, "an error replaces any response")
}

func TestStaleResponsesAreDiscarded(t *testing.T) {
	s := NewState()

	first := s.BeginSubmit(DefaultSelections())
	second := s.BeginSubmit(DefaultSelections())
	require.Greater(t, second, first)

	newer := &models.GenerationResponse{Messages: []models.GeneratedMessage{{Text: "newer", Valid: true}}}
	older := &models.GenerationResponse{Messages: []models.GeneratedMessage{{Text: "older", Valid: true}}}

	assert.True(t, s.Complete(second, newer))
	assert.False(t, s.Complete(first, older))
	assert.False(t, s.Fail(first, errors.New("late failure")))

	snap := s.Snapshot()
	assert.Equal(t, PhaseSucceeded, snap.Phase)
	assert.Equal(t, "newer", snap.Response.Messages[0].Text)
}

func TestResetDiscardsInFlightResult(t *testing.T) {
	s := NewState()
	sel := DefaultSelections()
	sel.Count = 4

	seq := s.BeginSubmit(sel)
	s.Reset()
	assert.False(t, s.Complete(seq, &models.GenerationResponse{}))

	snap := s.Snapshot()
	assert.Equal(t, PhaseIdle, snap.Phase)
	assert.Equal(t, DefaultCount, snap.Selections.Count)
}

func TestSetLanguageKeepsOtherFields(t *testing.T) {
	s := NewState()
	sel, err := validInput().Normalize()
	require.NoError(t, err)
	sel.Prompt = "keep me"
	s.Apply(sel)

	require.True(t, s.SetLanguage("es"))
	assert.False(t, s.SetLanguage("fr"))

	got := s.Snapshot().Selections
	assert.Equal(t, "es", got.Language)
	got.Language = sel.Language
	assert.Equal(t, sel, got)
}

func TestStoreReturnsSameStatePerSession(t *testing.T) {
	st := NewStore()

	var wg sync.WaitGroup
	states := make([]*State, 16)
	for i := range states {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			states[i] = st.Get("session-a")
		}(i)
	}
	wg.Wait()

	for _, s := range states {
		assert.Same(t, states[0], s)
	}
	assert.NotSame(t, states[0], st.Get("session-b"))
	assert.Equal(t, 2, st.Len())
}

func TestStoreEvictsIdleSessions(t *testing.T) {
	now := time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC)
	st := NewStore(WithIdleTimeout(time.Hour), WithClock(func() time.Time { return now }))

	for i := 0; i < 1000; i++ {
		st.Get(fmt.Sprintf("anonymous-%d", i))
	}
	require.Equal(t, 1000, st.Len())

	now = now.Add(30 * time.Minute)
	active := st.Get("anonymous-0")
	assert.Equal(t, 1000, st.Len(), "nothing is idle long enough yet")

	now = now.Add(45 * time.Minute)
	st.Get("newcomer")
	assert.Equal(t, 2, st.Len())
	assert.Same(t, active, st.Get("anonymous-0"))
}
