package lifecycle

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	// Freeze time for deterministic tests.
	timeNow = func() time.Time {
		return time.Date(2026, 3, 2, 9, 30, 0, 0, time.UTC)
	}
}

// --- Registry ---

func TestStates_RegistryIsComplete(t *testing.T) {
	for _, s := range Order {
		def, ok := States[s]
		require.True(t, ok, "state %s missing from registry", s)
		assert.Equal(t, s, def.ID)
	}
	assert.Len(t, States, len(Order))
}

func TestValidateState(t *testing.T) {
	assert.NoError(t, ValidateState(StateEvaluating))
	assert.Error(t, ValidateState(State("archived")))
}

func TestIndex(t *testing.T) {
	assert.Equal(t, 0, Index(StateFraming))
	assert.Equal(t, 2, Index(StateDecided))
	assert.Equal(t, -1, Index(State("bogus")))
}

// --- CanTransitionTo ---

func TestCanTransitionTo_SameStateIsNoOp(t *testing.T) {
	for _, s := range Order {
		m := New(s)
		got := m.CanTransitionTo(s)
		assert.True(t, got.Success)
		assert.Equal(t, s, got.NewState)
	}
}

func TestCanTransitionTo_IllegalMovesFail(t *testing.T) {
	full := WithProgress(Progress{CriteriaRated: 10, Candidates: 10})

	for _, from := range Order {
		for _, to := range Order {
			if from == to || States[from].Allows(to) {
				continue
			}
			got := New(from, full).CanTransitionTo(to)
			assert.False(t, got.Success, "%s -> %s should be illegal", from, to)
			assert.Contains(t, got.Error, "Allowed:")
			assert.Nil(t, got.MissingRequirements)
		}
	}
}

func TestCanTransitionTo_ErrorNamesAllowedSet(t *testing.T) {
	got := New(StateFraming).CanTransitionTo(StateDecided)

	assert.False(t, got.Success)
	assert.Equal(t, "Cannot transition from framing to decided. Allowed: evaluating", got.Error)
}

func TestCanTransitionTo_UnknownTarget(t *testing.T) {
	got := New(StateFraming).CanTransitionTo(State("shipped"))

	assert.False(t, got.Success)
	assert.Contains(t, got.Error, "Unknown state")
}

func TestTransitionTo_EvaluatingNeedsRatedCriterion(t *testing.T) {
	m := New(StateFraming, WithProgress(Progress{CriteriaRated: 0}))

	got := m.TransitionTo(StateEvaluating, TriggerUser)

	assert.False(t, got.Success)
	require.NotNil(t, got.MissingRequirements)
	assert.Equal(t, 1, got.MissingRequirements.CriteriaRated)
	assert.Equal(t, StateFraming, m.State())
	assert.Empty(t, m.History())
}

func TestCanTransitionTo_DecidedNeedsTwoCandidates(t *testing.T) {
	for candidates := 0; candidates < 2; candidates++ {
		m := New(StateEvaluating, WithProgress(Progress{CriteriaRated: 1, Candidates: candidates}))

		got := m.CanTransitionTo(StateDecided)

		assert.False(t, got.Success)
		require.NotNil(t, got.MissingRequirements)
		assert.Equal(t, 2-candidates, got.MissingRequirements.CandidatesNeeded)
		assert.Zero(t, got.MissingRequirements.CriteriaRated)
	}
}

func TestCanTransitionTo_FramingHasNoRequirement(t *testing.T) {
	m := New(StateEvaluating)
	assert.True(t, m.CanTransitionTo(StateFraming).Success)
}

// --- TransitionTo ---

func TestTransitionTo_DecidedUnlocksWithSecondTool(t *testing.T) {
	m := New(StateEvaluating, WithProgress(Progress{CriteriaRated: 2, Candidates: 1}))

	got := m.TransitionTo(StateDecided, TriggerUser)
	assert.False(t, got.Success)
	require.NotNil(t, got.MissingRequirements)
	assert.Equal(t, 1, got.MissingRequirements.CandidatesNeeded)

	m.SetProgress(Progress{CriteriaRated: 2, Candidates: 2})
	got = m.TransitionTo(StateDecided, TriggerUser)
	assert.True(t, got.Success)
	assert.Equal(t, StateDecided, got.NewState)
	assert.Equal(t, StateDecided, m.State())
}

func TestTransitionTo_RecordsHistory(t *testing.T) {
	m := New(StateFraming, WithProgress(Progress{CriteriaRated: 1, Candidates: 2}))

	require.True(t, m.TransitionTo(StateEvaluating, TriggerUser).Success)
	require.True(t, m.TransitionTo(StateDecided, TriggerAssistant).Success)

	history := m.History()
	require.Len(t, history, 2)
	assert.Equal(t, Transition{
		From:      StateFraming,
		To:        StateEvaluating,
		Trigger:   TriggerUser,
		Timestamp: "2026-03-02T09:30:00Z",
	}, history[0])
	assert.Equal(t, TriggerAssistant, history[1].Trigger)
}

func TestTransitionTo_HistoryCountsOnlyStateChanges(t *testing.T) {
	m := New(StateFraming, WithProgress(Progress{CriteriaRated: 1, Candidates: 2}))

	steps := []struct {
		target  State
		changes bool
	}{
		{StateFraming, false},
		{StateEvaluating, true},
		{StateEvaluating, false},
		{StateDecided, true},
		{StateFraming, false}, // illegal
		{StateEvaluating, true},
		{StateFraming, true},
	}

	want := 0
	for _, s := range steps {
		m.TransitionTo(s.target, TriggerUser)
		if s.changes {
			want++
		}
		assert.Len(t, m.History(), want, "after %s", s.target)
	}
}

func TestTransitionTo_ObserverCalledOnChangeOnly(t *testing.T) {
	var seen []Transition
	m := New(StateFraming,
		WithProgress(Progress{CriteriaRated: 1}),
		WithObserver(func(tr Transition) { seen = append(seen, tr) }),
	)

	m.TransitionTo(StateFraming, TriggerUser)
	m.TransitionTo(StateDecided, TriggerUser)
	m.TransitionTo(StateEvaluating, TriggerSystem)

	require.Len(t, seen, 1)
	assert.Equal(t, StateEvaluating, seen[0].To)
	assert.Equal(t, TriggerSystem, seen[0].Trigger)
}

func TestTransitionTo_CyclesIndefinitely(t *testing.T) {
	m := New(StateEvaluating, WithProgress(Progress{CriteriaRated: 1, Candidates: 2}))

	for i := 0; i < 5; i++ {
		require.True(t, m.TransitionTo(StateDecided, TriggerUser).Success)
		require.True(t, m.TransitionTo(StateEvaluating, TriggerUser).Success)
	}
	assert.Len(t, m.History(), 10)
}

func TestWithHistoryLimit(t *testing.T) {
	m := New(StateEvaluating, WithProgress(Progress{CriteriaRated: 1, Candidates: 2}), WithHistoryLimit(3))

	for i := 0; i < 4; i++ {
		m.TransitionTo(StateDecided, TriggerUser)
		m.TransitionTo(StateEvaluating, TriggerUser)
	}

	history := m.History()
	require.Len(t, history, 3)
	assert.Equal(t, StateEvaluating, history[2].To)
}

// --- GoToNext / GoToPrevious ---

func TestGoToNext_WalksForward(t *testing.T) {
	m := New(StateFraming, WithProgress(Progress{CriteriaRated: 1, Candidates: 2}))

	assert.True(t, m.GoToNext(TriggerUser).Success)
	assert.Equal(t, StateEvaluating, m.State())
	assert.True(t, m.GoToNext(TriggerUser).Success)
	assert.Equal(t, StateDecided, m.State())

	got := m.GoToNext(TriggerUser)
	assert.False(t, got.Success)
	assert.Equal(t, "Already at final state", got.Error)
}

func TestGoToPrevious_WalksBack(t *testing.T) {
	m := New(StateDecided)

	assert.True(t, m.GoToPrevious(TriggerUser).Success)
	assert.Equal(t, StateEvaluating, m.State())
	assert.True(t, m.GoToPrevious(TriggerUser).Success)
	assert.Equal(t, StateFraming, m.State())

	got := m.GoToPrevious(TriggerUser)
	assert.False(t, got.Success)
	assert.Equal(t, "Already at first state", got.Error)
}

func TestGoToNext_RespectsRequirements(t *testing.T) {
	m := New(StateFraming)

	got := m.GoToNext(TriggerUser)

	assert.False(t, got.Success)
	require.NotNil(t, got.MissingRequirements)
	assert.Equal(t, 1, got.MissingRequirements.CriteriaRated)
}

func TestCanAdvance(t *testing.T) {
	m := New(StateFraming)
	assert.False(t, m.CanAdvance())

	m.SetProgress(Progress{CriteriaRated: 1})
	assert.True(t, m.CanAdvance())

	m.TransitionTo(StateEvaluating, TriggerUser)
	assert.False(t, m.CanAdvance(), "decided needs two tools")

	m.SetProgress(Progress{CriteriaRated: 1, Candidates: 2})
	m.TransitionTo(StateDecided, TriggerUser)
	assert.False(t, m.CanAdvance(), "decided is the last state")
}

// --- New / Restore ---

func TestNew_UnknownInitialFallsBackToFraming(t *testing.T) {
	assert.Equal(t, StateFraming, New(State("")).State())
}

func TestRestore_DoesNotNotifyObserver(t *testing.T) {
	called := false
	m := New(StateFraming, WithObserver(func(Transition) { called = true }))

	past := []Transition{{From: StateFraming, To: StateEvaluating, Trigger: TriggerUser, Timestamp: "2026-01-01T00:00:00Z"}}
	m.Restore(StateEvaluating, past)

	assert.False(t, called)
	assert.Equal(t, StateEvaluating, m.State())
	assert.Equal(t, past, m.History())

	// The machine owns its copy.
	past[0].Trigger = TriggerSystem
	assert.Equal(t, TriggerUser, m.History()[0].Trigger)
}
