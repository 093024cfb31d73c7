package lifecycle

import (
	"fmt"
	"strings"
	"time"
)

// Trigger names who or what asked for a transition.
type Trigger string

const (
	TriggerUser      Trigger = "user"
	TriggerAssistant Trigger = "assistant"
	TriggerSystem    Trigger = "system"
)

// Progress holds the counters that entry requirements are checked against.
// They are owned by the caller and pushed in with SetProgress.
type Progress struct {
	CriteriaRated int `json:"criteria_rated"`
	Candidates    int `json:"candidates"`
}

// Transition is an immutable record of one state change.
type Transition struct {
	From      State   `json:"from"`
	To        State   `json:"to"`
	Trigger   Trigger `json:"trigger"`
	Timestamp string  `json:"timestamp"`
}

// Missing says how far the counters are from a state's requirements.
type Missing struct {
	CriteriaRated    int `json:"criteria_rated,omitempty"`
	CandidatesNeeded int `json:"candidates_needed,omitempty"`
}

// TransitionResult is the outcome of a transition check or attempt.
// Failures are ordinary results, not errors.
type TransitionResult struct {
	Success             bool     `json:"success"`
	NewState            State    `json:"new_state,omitempty"`
	Error               string   `json:"error,omitempty"`
	MissingRequirements *Missing `json:"missing_requirements,omitempty"`
}

// Observer is told about every state change after it has been applied.
type Observer func(t Transition)

// Option configures a Machine.
type Option func(*Machine)

// WithProgress sets the initial counters.
func WithProgress(p Progress) Option {
	return func(m *Machine) { m.progress = p }
}

// WithObserver registers a callback run after each state change.
func WithObserver(obs Observer) Option {
	return func(m *Machine) { m.observer = obs }
}

// WithHistoryLimit keeps only the newest n transitions in memory.
// Zero or negative means unbounded.
func WithHistoryLimit(n int) Option {
	return func(m *Machine) { m.historyLimit = n }
}

// Machine guards and records moves between decision states. A Machine
// belongs to a single decision session and is not safe for concurrent use.
type Machine struct {
	state        State
	progress     Progress
	history      []Transition
	observer     Observer
	historyLimit int
}

// New creates a Machine in the given state. An unknown initial state
// falls back to framing.
func New(initial State, opts ...Option) *Machine {
	if ValidateState(initial) != nil {
		initial = StateFraming
	}
	m := &Machine{state: initial}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Restore rehydrates a machine from persisted state and history without
// notifying the observer.
func (m *Machine) Restore(state State, history []Transition) {
	if ValidateState(state) == nil {
		m.state = state
	}
	m.history = append([]Transition(nil), history...)
	m.trimHistory()
}

// State returns the current state.
func (m *Machine) State() State { return m.state }

// Definition returns the registry entry of the current state.
func (m *Machine) Definition() Definition { return States[m.state] }

// Progress returns the counters currently used for requirement checks.
func (m *Machine) Progress() Progress { return m.progress }

// SetProgress replaces the requirement counters.
func (m *Machine) SetProgress(p Progress) { m.progress = p }

// History returns a copy of the recorded transitions, oldest first.
func (m *Machine) History() []Transition {
	return append([]Transition(nil), m.history...)
}

// CanTransitionTo checks whether target can be entered now, without
// changing anything.
func (m *Machine) CanTransitionTo(target State) TransitionResult {
	if target == m.state {
		return TransitionResult{Success: true, NewState: m.state}
	}

	def, ok := States[target]
	if !ok {
		return TransitionResult{Error: fmt.Sprintf("Unknown state %q", target)}
	}

	current := States[m.state]
	if !current.Allows(target) {
		return TransitionResult{
			Error: fmt.Sprintf("Cannot transition from %s to %s. Allowed: %s",
				m.state, target, joinStates(current.AllowedTransitions)),
		}
	}

	missing := Missing{}
	if need := def.Requirements.CriteriaRated - m.progress.CriteriaRated; need > 0 {
		missing.CriteriaRated = need
	}
	if need := def.Requirements.Candidates - m.progress.Candidates; need > 0 {
		missing.CandidatesNeeded = need
	}
	if missing != (Missing{}) {
		return TransitionResult{
			Error:               fmt.Sprintf("Requirements not met for %s: %s", def.Label, describeMissing(missing)),
			MissingRequirements: &missing,
		}
	}

	return TransitionResult{Success: true, NewState: target}
}

// TransitionTo moves to target if CanTransitionTo allows it. A real state
// change is appended to the history and reported to the observer; asking
// for the current state succeeds without recording anything.
func (m *Machine) TransitionTo(target State, trigger Trigger) TransitionResult {
	result := m.CanTransitionTo(target)
	if !result.Success || target == m.state {
		return result
	}

	t := Transition{
		From:      m.state,
		To:        target,
		Trigger:   trigger,
		Timestamp: timeNow().UTC().Format(time.RFC3339),
	}
	m.history = append(m.history, t)
	m.trimHistory()
	m.state = target

	if m.observer != nil {
		m.observer(t)
	}
	return result
}

// GoToNext moves one step forward along Order.
func (m *Machine) GoToNext(trigger Trigger) TransitionResult {
	idx := Index(m.state)
	if idx >= len(Order)-1 {
		return TransitionResult{Error: "Already at final state"}
	}
	return m.TransitionTo(Order[idx+1], trigger)
}

// GoToPrevious moves one step back along Order.
func (m *Machine) GoToPrevious(trigger Trigger) TransitionResult {
	idx := Index(m.state)
	if idx <= 0 {
		return TransitionResult{Error: "Already at first state"}
	}
	return m.TransitionTo(Order[idx-1], trigger)
}

// CanAdvance reports whether GoToNext would succeed right now.
func (m *Machine) CanAdvance() bool {
	idx := Index(m.state)
	if idx < 0 || idx >= len(Order)-1 {
		return false
	}
	return m.CanTransitionTo(Order[idx+1]).Success
}

func (m *Machine) trimHistory() {
	if m.historyLimit > 0 && len(m.history) > m.historyLimit {
		m.history = append([]Transition(nil), m.history[len(m.history)-m.historyLimit:]...)
	}
}

func joinStates(states []State) string {
	names := make([]string, len(states))
	for i, s := range states {
		names[i] = string(s)
	}
	return strings.Join(names, ", ")
}

func describeMissing(m Missing) string {
	var parts []string
	if m.CriteriaRated > 0 {
		parts = append(parts, fmt.Sprintf("rate %d more criteria", m.CriteriaRated))
	}
	if m.CandidatesNeeded > 0 {
		parts = append(parts, fmt.Sprintf("add %d more tools", m.CandidatesNeeded))
	}
	return strings.Join(parts, ", ")
}
