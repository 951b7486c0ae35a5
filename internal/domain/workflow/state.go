package workflow

// State represents a bill's position in the review lifecycle.
type State string

const (
	StatePending  State = "pending"
	StateAccepted State = "accepted"
	StateRefused  State = "refused"
)

var validStates = map[State]bool{
	StatePending:  true,
	StateAccepted: true,
	StateRefused:  true,
}

// Accepted and refused are terminal: a reviewed bill never returns to pending.
var terminalStates = map[State]bool{
	StateAccepted: true,
	StateRefused:  true,
}

// String returns the string representation of the state.
func (s State) String() string {
	return string(s)
}

// IsValid returns true if the state is a known lifecycle state.
func (s State) IsValid() bool {
	return validStates[s]
}

// IsTerminal returns true if no further transitions are allowed from the state.
func (s State) IsTerminal() bool {
	return terminalStates[s]
}
