// Package lifecycle implements the decision workflow: framing the criteria,
// evaluating the tools, and recording the decision.
//
// The workflow is a small cyclic state machine. Which moves are legal is
// declared once in the States registry; whether a legal move may happen
// right now depends only on externally supplied counters (rated criteria,
// candidate tools), never on scores.
//
// This package follows the same split as the rest of the codebase:
// - states.go: the state enum and its registry
// - machine.go: the Machine that guards and records transitions
// - time.go: clock injection for tests
package lifecycle

import "fmt"

// State is one step of the decision workflow.
type State string

const (
	StateFraming    State = "framing"
	StateEvaluating State = "evaluating"
	StateDecided    State = "decided"
)

// Order is the linear progression used by GoToNext and GoToPrevious.
var Order = []State{StateFraming, StateEvaluating, StateDecided}

// Requirements are the minimum counters needed to enter a state.
type Requirements struct {
	CriteriaRated int `json:"criteria_rated,omitempty"`
	Candidates    int `json:"candidates,omitempty"`
}

// Definition describes a state and the moves allowed out of it.
type Definition struct {
	ID                 State        `json:"id"`
	Label              string       `json:"label"`
	Description        string       `json:"description"`
	AllowedTransitions []State      `json:"allowed_transitions"`
	Requirements       Requirements `json:"requirements"`
}

// Allows reports whether target is a legal move out of this state.
func (d Definition) Allows(target State) bool {
	for _, s := range d.AllowedTransitions {
		if s == target {
			return true
		}
	}
	return false
}

// States is the transition table. Transitions are directed:
// decided can go back to evaluating, but framing cannot jump to decided.
var States = map[State]Definition{
	StateFraming: {
		ID:                 StateFraming,
		Label:              "Framing",
		Description:        "Decide what matters: set the importance of each criterion.",
		AllowedTransitions: []State{StateEvaluating},
	},
	StateEvaluating: {
		ID:                 StateEvaluating,
		Label:              "Evaluating",
		Description:        "Compare tools against the weighted criteria and review tradeoffs.",
		AllowedTransitions: []State{StateFraming, StateDecided},
		Requirements:       Requirements{CriteriaRated: 1},
	},
	StateDecided: {
		ID:                 StateDecided,
		Label:              "Decided",
		Description:        "A tool has been chosen. Reopen evaluation at any time.",
		AllowedTransitions: []State{StateEvaluating},
		Requirements:       Requirements{Candidates: 2},
	},
}

// ValidateState returns an error if the state is not recognized.
func ValidateState(s State) error {
	if _, ok := States[s]; !ok {
		return fmt.Errorf("invalid decision state %q: must be one of: framing, evaluating, decided", s)
	}
	return nil
}

// Index returns the position of s in Order, or -1.
func Index(s State) int {
	for i, o := range Order {
		if o == s {
			return i
		}
	}
	return -1
}
