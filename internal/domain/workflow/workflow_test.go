package workflow

import (
	"errors"
	"testing"
)

func TestState_IsTerminal(t *testing.T) {
	tests := []struct {
		state    State
		expected bool
	}{
		{StatePending, false},
		{StateAccepted, true},
		{StateRefused, true},
	}

	for _, tt := range tests {
		t.Run(string(tt.state), func(t *testing.T) {
			if got := tt.state.IsTerminal(); got != tt.expected {
				t.Errorf("State.IsTerminal() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestState_IsValid(t *testing.T) {
	tests := []struct {
		name     string
		state    State
		expected bool
	}{
		{"pending", StatePending, true},
		{"accepted", StateAccepted, true},
		{"refused", StateRefused, true},
		{"unknown value", State("archived"), false},
		{"empty state", State(""), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.state.IsValid(); got != tt.expected {
				t.Errorf("State.IsValid() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestApply(t *testing.T) {
	tests := []struct {
		name    string
		from    State
		trigger Trigger
		want    State
		wantErr error
	}{
		{"accept pending", StatePending, TriggerAccept, StateAccepted, nil},
		{"refuse pending", StatePending, TriggerRefuse, StateRefused, nil},
		{"accept accepted", StateAccepted, TriggerAccept, "", ErrInvalidTransition},
		{"refuse refused", StateRefused, TriggerRefuse, "", ErrInvalidTransition},
		{"accept refused", StateRefused, TriggerAccept, "", ErrInvalidTransition},
		{"invalid state", State("draft"), TriggerAccept, "", ErrInvalidState},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Apply(tt.from, tt.trigger)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Apply() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Apply() unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("Apply() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCanTransition(t *testing.T) {
	tests := []struct {
		name string
		from State
		to   State
		want bool
	}{
		{"pending to accepted", StatePending, StateAccepted, true},
		{"pending to refused", StatePending, StateRefused, true},
		{"pending to pending", StatePending, StatePending, true},
		{"accepted to pending", StateAccepted, StatePending, false},
		{"refused to accepted", StateRefused, StateAccepted, false},
		{"accepted to accepted", StateAccepted, StateAccepted, true},
		{"invalid target", StatePending, State("void"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CanTransition(tt.from, tt.to); got != tt.want {
				t.Errorf("CanTransition(%s, %s) = %v, want %v", tt.from, tt.to, got, tt.want)
			}
		})
	}
}
