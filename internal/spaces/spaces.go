// Package spaces persists decision spaces: the criteria, candidate tools,
// ratings and lifecycle state of one tool-selection decision.
//
// Scoring and lifecycle stay pure. This package only stores their inputs
// and rebuilds a lifecycle.Machine from what was saved.
package spaces

import (
	"context"

	"github.com/cockroachdb/errors"

	"github.com/HendryAvila/ppmfit/internal/lifecycle"
	"github.com/HendryAvila/ppmfit/internal/scoring"
)

//go:generate mockgen -destination=mocks/repository.go -package=mocks github.com/HendryAvila/ppmfit/internal/spaces Repository

// Space is one decision being worked on.
type Space struct {
	ID          string                 `json:"id"`
	Name        string                 `json:"name"`
	Description string                 `json:"description,omitempty"`
	State       lifecycle.State        `json:"state"`
	Criteria    []scoring.Criterion    `json:"criteria"`
	Tools       []scoring.Tool         `json:"tools"`
	History     []lifecycle.Transition `json:"history"`
	CreatedAt   string                 `json:"created_at"`
	UpdatedAt   string                 `json:"updated_at"`
}

// Summary is the list view of a space.
type Summary struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	State     lifecycle.State `json:"state"`
	Criteria  int             `json:"criteria"`
	Tools     int             `json:"tools"`
	UpdatedAt string          `json:"updated_at"`
}

// Repository is the storage contract used by the MCP tools.
type Repository interface {
	Create(ctx context.Context, s *Space) error
	Get(ctx context.Context, id string) (*Space, error)
	List(ctx context.Context) ([]Summary, error)
	Delete(ctx context.Context, id string) error

	AddCriterion(ctx context.Context, spaceID string, c scoring.Criterion) error
	SetWeight(ctx context.Context, spaceID, criterionID string, weight int) error

	AddTool(ctx context.Context, spaceID string, t scoring.Tool) error
	RemoveTool(ctx context.Context, spaceID, toolID string) error
	SetRating(ctx context.Context, spaceID, toolID, criterionID string, score int) error

	// SaveState stores the current state and, when t is non-nil, appends
	// the transition that produced it.
	SaveState(ctx context.Context, spaceID string, state lifecycle.State, t *lifecycle.Transition) error
}

// Progress returns the requirement counters for the space: criteria with
// an explicit weight, and candidate tools.
func (s *Space) Progress() lifecycle.Progress {
	return lifecycle.Progress{
		CriteriaRated: scoring.CountTouched(s.Criteria),
		Candidates:    len(s.Tools),
	}
}

// Machine rebuilds the lifecycle machine for the space from its saved
// state and history.
func (s *Space) Machine(opts ...lifecycle.Option) *lifecycle.Machine {
	opts = append(opts, lifecycle.WithProgress(s.Progress()))
	m := lifecycle.New(s.State, opts...)
	m.Restore(s.State, s.History)
	return m
}

// settleState walks a new space from framing to its requested state
// through the lifecycle machine so entry requirements apply. Without
// supplied history the walk's transitions become the history; supplied
// history must end in the requested state.
func (s *Space) settleState() error {
	if s.State == "" {
		s.State = lifecycle.StateFraming
	}
	if err := lifecycle.ValidateState(s.State); err != nil {
		return errors.Mark(err, ErrInvalidInput)
	}

	m := lifecycle.New(lifecycle.StateFraming, lifecycle.WithProgress(s.Progress()))
	for m.State() != s.State {
		if res := m.GoToNext(lifecycle.TriggerSystem); !res.Success {
			return errors.Wrapf(ErrInvalidInput, "cannot start in %s: %s", s.State, res.Error)
		}
	}

	if len(s.History) == 0 {
		s.History = m.History()
		return nil
	}
	if last := s.History[len(s.History)-1]; last.To != s.State {
		return errors.Wrapf(ErrInvalidInput, "history ends in %s, not %s", last.To, s.State)
	}
	return nil
}

// Criterion looks up a criterion by ID.
func (s *Space) Criterion(id string) (scoring.Criterion, bool) {
	for _, c := range s.Criteria {
		if c.ID == id {
			return c, true
		}
	}
	return scoring.Criterion{}, false
}

// Tool looks up a tool by ID.
func (s *Space) Tool(id string) (scoring.Tool, bool) {
	for _, t := range s.Tools {
		if t.ID == id {
			return t, true
		}
	}
	return scoring.Tool{}, false
}
