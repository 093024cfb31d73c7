package spaces

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/HendryAvila/ppmfit/internal/lifecycle"
	"github.com/HendryAvila/ppmfit/internal/scoring"
)

func init() {
	timeNow = func() time.Time {
		return time.Date(2026, 3, 2, 9, 30, 0, 0, time.UTC)
	}
}

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "nested", "spaces.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func sampleSpace() *Space {
	cost := scoring.NewCriterion("cost", "Cost")
	cost.SetWeight(5)
	return &Space{
		Name:     "PPM selection",
		Criteria: []scoring.Criterion{cost, scoring.NewCriterion("ux", "Ease of use")},
		Tools: []scoring.Tool{
			{ID: "jira", Name: "Jira", Ratings: map[string]int{"cost": 2, "ux": 3}},
			{ID: "asana", Name: "Asana", Ratings: map[string]int{"cost": 4}},
		},
	}
}

func TestOpen_ReopenKeepsData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "spaces.db")
	ctx := context.Background()

	s, err := Open(path)
	require.NoError(t, err)
	sp := sampleSpace()
	require.NoError(t, s.Create(ctx, sp))
	require.NoError(t, s.Close())

	s, err = Open(path)
	require.NoError(t, err)
	defer s.Close()

	got, err := s.Get(ctx, sp.ID)
	require.NoError(t, err)
	assert.Equal(t, "PPM selection", got.Name)
}

// --- Create / Get ---

func TestCreate_RoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	sp := sampleSpace()

	require.NoError(t, s.Create(ctx, sp))
	assert.NotEmpty(t, sp.ID)
	assert.Equal(t, lifecycle.StateFraming, sp.State)
	assert.Equal(t, "2026-03-02T09:30:00Z", sp.CreatedAt)

	got, err := s.Get(ctx, sp.ID)
	require.NoError(t, err)

	assert.Equal(t, sp.Criteria, got.Criteria)
	assert.Equal(t, sp.Tools, got.Tools)
	assert.Equal(t, lifecycle.StateFraming, got.State)
	assert.Empty(t, got.History)
	assert.Equal(t, lifecycle.Progress{CriteriaRated: 1, Candidates: 2}, got.Progress())
}

func TestCreate_RejectsBadInput(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	tests := []struct {
		name string
		sp   *Space
	}{
		{"nil", nil},
		{"no name", &Space{}},
		{"bad state", &Space{Name: "x", State: "archived"}},
		{"bad weight", &Space{Name: "x", Criteria: []scoring.Criterion{{ID: "c", Name: "C", UserRating: 9}}}},
		{"bad rating", &Space{Name: "x", Tools: []scoring.Tool{{ID: "t", Name: "T", Ratings: map[string]int{"c": 0}}}}},
		{"unknown criterion", &Space{Name: "x", Tools: []scoring.Tool{{ID: "t", Name: "T", Ratings: map[string]int{"c": 4}}}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := s.Create(ctx, tt.sp)
			assert.True(t, errors.Is(err, ErrInvalidInput), "got %v", err)
		})
	}
}

func TestCreate_LaterStateNeedsRequirements(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	bare := &Space{Name: "x", State: lifecycle.StateDecided, Criteria: []scoring.Criterion{scoring.NewCriterion("c", "C")}}
	err := s.Create(ctx, bare)
	assert.True(t, errors.Is(err, ErrInvalidInput), "got %v", err)
	assert.Contains(t, err.Error(), "Requirements not met")

	list, err := s.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestCreate_LaterStateRecordsSystemTransitions(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	sp := sampleSpace()
	sp.State = lifecycle.StateDecided

	require.NoError(t, s.Create(ctx, sp))

	got, err := s.Get(ctx, sp.ID)
	require.NoError(t, err)
	assert.Equal(t, lifecycle.StateDecided, got.State)
	require.Len(t, got.History, 2)
	for _, tr := range got.History {
		assert.Equal(t, lifecycle.TriggerSystem, tr.Trigger)
	}
	assert.Equal(t, lifecycle.StateDecided, got.History[1].To)
}

func TestCreate_HistoryMustEndInState(t *testing.T) {
	s := newTestStore(t)
	sp := sampleSpace()
	sp.State = lifecycle.StateEvaluating
	sp.History = []lifecycle.Transition{{From: lifecycle.StateEvaluating, To: lifecycle.StateFraming, Trigger: lifecycle.TriggerUser}}

	err := s.Create(context.Background(), sp)

	assert.True(t, errors.Is(err, ErrInvalidInput), "got %v", err)
}

func TestCreate_DuplicateID(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Create(ctx, &Space{ID: "dup", Name: "one"}))
	err := s.Create(ctx, &Space{ID: "dup", Name: "two"})

	assert.True(t, errors.Is(err, ErrConflict))
}

func TestGet_NotFound(t *testing.T) {
	s := newTestStore(t)

	_, err := s.Get(context.Background(), "missing")

	assert.True(t, errors.Is(err, ErrNotFound))
}

// --- List / Delete ---

func TestList(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	empty, err := s.List(ctx)
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)

	sp := sampleSpace()
	require.NoError(t, s.Create(ctx, sp))

	got, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, Summary{
		ID:        sp.ID,
		Name:      "PPM selection",
		State:     lifecycle.StateFraming,
		Criteria:  2,
		Tools:     2,
		UpdatedAt: "2026-03-02T09:30:00Z",
	}, got[0])
}

func TestDelete_Cascades(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	sp := sampleSpace()
	require.NoError(t, s.Create(ctx, sp))

	require.NoError(t, s.Delete(ctx, sp.ID))

	_, err := s.Get(ctx, sp.ID)
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.True(t, errors.Is(s.Delete(ctx, sp.ID), ErrNotFound))

	var ratings int
	require.NoError(t, s.db.QueryRow("SELECT COUNT(*) FROM ratings").Scan(&ratings))
	assert.Zero(t, ratings)
}

// --- Criteria ---

func TestAddCriterion_AppendsAtDefaultWeight(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	sp := sampleSpace()
	require.NoError(t, s.Create(ctx, sp))

	require.NoError(t, s.AddCriterion(ctx, sp.ID, scoring.Criterion{ID: "support", Name: "Support"}))

	got, err := s.Get(ctx, sp.ID)
	require.NoError(t, err)
	require.Len(t, got.Criteria, 3)
	last := got.Criteria[2]
	assert.Equal(t, "support", last.ID)
	assert.Equal(t, scoring.DefaultWeight, last.UserRating)
	assert.False(t, last.Touched)
}

func TestAddCriterion_Errors(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	sp := sampleSpace()
	require.NoError(t, s.Create(ctx, sp))

	assert.True(t, errors.Is(s.AddCriterion(ctx, sp.ID, scoring.Criterion{ID: "cost", Name: "Cost"}), ErrConflict))
	assert.True(t, errors.Is(s.AddCriterion(ctx, "nope", scoring.Criterion{ID: "x", Name: "X"}), ErrNotFound))
	assert.True(t, errors.Is(s.AddCriterion(ctx, sp.ID, scoring.Criterion{ID: "x"}), ErrInvalidInput))
}

func TestSetWeight_MarksTouched(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	sp := sampleSpace()
	require.NoError(t, s.Create(ctx, sp))

	// Re-assigning the default still counts as rated.
	require.NoError(t, s.SetWeight(ctx, sp.ID, "ux", scoring.DefaultWeight))

	got, err := s.Get(ctx, sp.ID)
	require.NoError(t, err)
	c, ok := got.Criterion("ux")
	require.True(t, ok)
	assert.True(t, c.Touched)
	assert.Equal(t, 2, got.Progress().CriteriaRated)
}

func TestSetWeight_Errors(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	sp := sampleSpace()
	require.NoError(t, s.Create(ctx, sp))

	assert.True(t, errors.Is(s.SetWeight(ctx, sp.ID, "cost", 6), ErrInvalidInput))
	assert.True(t, errors.Is(s.SetWeight(ctx, sp.ID, "missing", 4), ErrNotFound))
	assert.True(t, errors.Is(s.SetWeight(ctx, "nope", "cost", 4), ErrNotFound))
}

// --- Tools / ratings ---

func TestAddTool_RemoveTool(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	sp := sampleSpace()
	require.NoError(t, s.Create(ctx, sp))

	require.NoError(t, s.AddTool(ctx, sp.ID, scoring.Tool{ID: "monday", Name: "Monday", Ratings: map[string]int{"ux": 5}}))
	assert.True(t, errors.Is(s.AddTool(ctx, sp.ID, scoring.Tool{ID: "jira", Name: "Jira"}), ErrConflict))
	assert.True(t, errors.Is(s.AddTool(ctx, sp.ID, scoring.Tool{ID: "x", Name: "X", Ratings: map[string]int{"nope": 2}}), ErrInvalidInput))

	got, err := s.Get(ctx, sp.ID)
	require.NoError(t, err)
	require.Len(t, got.Tools, 3)
	assert.Equal(t, "monday", got.Tools[2].ID)
	assert.Equal(t, map[string]int{"ux": 5}, got.Tools[2].Ratings)

	require.NoError(t, s.RemoveTool(ctx, sp.ID, "jira"))
	assert.True(t, errors.Is(s.RemoveTool(ctx, sp.ID, "jira"), ErrNotFound))

	got, err = s.Get(ctx, sp.ID)
	require.NoError(t, err)
	_, ok := got.Tool("jira")
	assert.False(t, ok)
	assert.Equal(t, 2, got.Progress().Candidates)
}

func TestSetRating_Upserts(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	sp := sampleSpace()
	require.NoError(t, s.Create(ctx, sp))

	require.NoError(t, s.SetRating(ctx, sp.ID, "asana", "ux", 2))
	require.NoError(t, s.SetRating(ctx, sp.ID, "asana", "ux", 5))

	got, err := s.Get(ctx, sp.ID)
	require.NoError(t, err)
	tool, _ := got.Tool("asana")
	assert.Equal(t, map[string]int{"cost": 4, "ux": 5}, tool.Ratings)
}

func TestSetRating_Errors(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	sp := sampleSpace()
	require.NoError(t, s.Create(ctx, sp))

	assert.True(t, errors.Is(s.SetRating(ctx, sp.ID, "jira", "cost", 0), ErrInvalidInput))
	assert.True(t, errors.Is(s.SetRating(ctx, sp.ID, "nope", "cost", 3), ErrNotFound))
	assert.True(t, errors.Is(s.SetRating(ctx, sp.ID, "jira", "nope", 3), ErrNotFound))
	assert.True(t, errors.Is(s.SetRating(ctx, "nope", "jira", "cost", 3), ErrNotFound))
}

// --- SaveState ---

func TestSaveState_PersistsStateAndHistory(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	sp := sampleSpace()
	require.NoError(t, s.Create(ctx, sp))

	m := sp.Machine()
	res := m.TransitionTo(lifecycle.StateEvaluating, lifecycle.TriggerUser)
	require.True(t, res.Success)
	h := m.History()
	require.NoError(t, s.SaveState(ctx, sp.ID, m.State(), &h[len(h)-1]))

	got, err := s.Get(ctx, sp.ID)
	require.NoError(t, err)
	assert.Equal(t, lifecycle.StateEvaluating, got.State)
	assert.Equal(t, h, got.History)

	restored := got.Machine()
	assert.Equal(t, lifecycle.StateEvaluating, restored.State())
	assert.Equal(t, h, restored.History())
	assert.True(t, restored.CanAdvance())
}

func TestSaveState_Errors(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	assert.True(t, errors.Is(s.SaveState(ctx, "nope", lifecycle.StateDecided, nil), ErrNotFound))
	assert.True(t, errors.Is(s.SaveState(ctx, "nope", "bogus", nil), ErrInvalidInput))
}
