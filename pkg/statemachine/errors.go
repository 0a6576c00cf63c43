package statemachine

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidTransition = errors.New("statemachine: transition needs from, to and event")
	ErrInvalidEvent      = errors.New("statemachine: event is nil")

	// ErrNoTransitionAvailable means the current state has no transition for the event.
	ErrNoTransitionAvailable = errors.New("statemachine: no transition available")
	// ErrTransitionRejected means transitions exist but every one was refused by a guard.
	ErrTransitionRejected = errors.New("statemachine: transition rejected by guards")
)

// TransitionError reports an event that could not move the machine. Err is
// ErrNoTransitionAvailable or ErrTransitionRejected.
type TransitionError struct {
	State string
	Event string
	Err   error
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("%v: event %q in state %q", e.Err, e.Event, e.State)
}

func (e *TransitionError) Unwrap() error { return e.Err }

func IsNoTransitionAvailableError(err error) bool {
	return errors.Is(err, ErrNoTransitionAvailable)
}

func IsTransitionRejectedError(err error) bool {
	return errors.Is(err, ErrTransitionRejected)
}
