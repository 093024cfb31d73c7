package tools

import (
	"context"
	"log/slog"

	"github.com/HendryAvila/ppmfit/internal/lifecycle"
	"github.com/HendryAvila/ppmfit/internal/spaces"
)

// TransitionObserver is notified after a decision-state change has been
// persisted. It's an optional dependency: tools work fine with a nil observer.
type TransitionObserver interface {
	OnTransition(spaceID string, t lifecycle.Transition)
}

// LogBridge reports persisted transitions to a structured logger.
type LogBridge struct {
	logger *slog.Logger
}

// NewLogBridge creates a bridge that logs every persisted transition.
// Returns nil if logger is nil.
func NewLogBridge(logger *slog.Logger) *LogBridge {
	if logger == nil {
		return nil
	}
	return &LogBridge{logger: logger}
}

// OnTransition implements TransitionObserver.
func (b *LogBridge) OnTransition(spaceID string, t lifecycle.Transition) {
	b.logger.Info("decision state changed",
		"space", spaceID,
		"from", t.From,
		"to", t.To,
		"trigger", t.Trigger,
	)
}

// notifyObserver is a nil-safe helper called from the lifecycle tools.
func notifyObserver(obs TransitionObserver, spaceID string, t lifecycle.Transition) {
	if obs == nil {
		return
	}
	obs.OnTransition(spaceID, t)
}

// TransitionRecorder is a lifecycle.Observer that persists each state
// change as it happens. The machine itself never fails on persistence, so
// the first save error is kept and reported through Err.
type TransitionRecorder struct {
	ctx     context.Context
	repo    spaces.Repository
	spaceID string

	recorded []lifecycle.Transition
	err      error
}

// NewTransitionRecorder creates a recorder for one space and request.
func NewTransitionRecorder(ctx context.Context, repo spaces.Repository, spaceID string) *TransitionRecorder {
	return &TransitionRecorder{ctx: ctx, repo: repo, spaceID: spaceID}
}

// Observe saves the new state and the transition record.
func (r *TransitionRecorder) Observe(t lifecycle.Transition) {
	if r.err != nil {
		return
	}
	if err := r.repo.SaveState(r.ctx, r.spaceID, t.To, &t); err != nil {
		slog.Warn("recording transition", "space", r.spaceID, "to", t.To, "err", err)
		r.err = err
		return
	}
	r.recorded = append(r.recorded, t)
}

// Recorded returns the transitions saved so far.
func (r *TransitionRecorder) Recorded() []lifecycle.Transition {
	return append([]lifecycle.Transition(nil), r.recorded...)
}

// Err returns the first persistence failure, if any.
func (r *TransitionRecorder) Err() error { return r.err }
