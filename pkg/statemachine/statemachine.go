package statemachine

import "context"

type State interface {
	Name() string
}

type Event interface {
	Name() string
}

// Guard vetoes a transition by returning false for the data passed to Fire.
type Guard func(ctx context.Context, from State, event Event, data any) bool

// Hook observes a completed transition. Hooks run after the state has changed
// and outside the machine lock, so they may call Current.
type Hook func(ctx context.Context, from, to State, event Event)

// StateMachine is the interface the form controller drives.
type StateMachine interface {
	Current() State
	Fire(ctx context.Context, event Event, data any) error
}

// StringState is a State named by its value.
type StringState string

func (s StringState) Name() string { return string(s) }

// StringEvent is an Event named by its value.
type StringEvent string

func (e StringEvent) Name() string { return string(e) }
