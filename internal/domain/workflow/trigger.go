package workflow

import "fmt"

// Trigger represents a reviewer action that can cause a state transition.
type Trigger string

const (
	TriggerAccept Trigger = "accept"
	TriggerRefuse Trigger = "refuse"
)

// String returns the string representation of the trigger.
func (t Trigger) String() string {
	return string(t)
}

var transitions = map[State]map[Trigger]State{
	StatePending: {
		TriggerAccept: StateAccepted,
		TriggerRefuse: StateRefused,
	},
}

// Apply fires the trigger from the given state, returning the resulting state.
func Apply(from State, trigger Trigger) (State, error) {
	if !from.IsValid() {
		return "", fmt.Errorf("%w: %s", ErrInvalidState, from)
	}
	to, ok := transitions[from][trigger]
	if !ok {
		return "", fmt.Errorf("%w: cannot fire %s from state %s", ErrInvalidTransition, trigger, from)
	}
	return to, nil
}

// CanTransition reports whether a bill may move from one state to another.
// A no-op transition (same state) is always permitted.
func CanTransition(from, to State) bool {
	if !from.IsValid() || !to.IsValid() {
		return false
	}
	if from == to {
		return true
	}
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}
