package statemachine

import (
	"errors"
	"fmt"
)

// Option configures a machine during construction.
type Option func(*machine) error

// TransitionOption configures a single transition.
type TransitionOption func(*transition)

// New creates a machine starting in initial.
func New(initial State, opts ...Option) (StateMachine, error) {
	if initial == nil {
		return nil, errors.New("statemachine: initial state is nil")
	}
	m := &machine{
		current:     initial,
		transitions: make(map[string]map[string][]transition),
	}
	for _, opt := range opts {
		if err := opt(m); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// MustNew is like New but panics if any option fails to apply.
func MustNew(initial State, opts ...Option) StateMachine {
	m, err := New(initial, opts...)
	if err != nil {
		panic(fmt.Sprintf("statemachine: %v", err))
	}
	return m
}

// WithTransition lets event move the machine from one state to another.
// Several transitions may share from and event; the first whose guards pass
// is taken.
func WithTransition(from, to State, event Event, opts ...TransitionOption) Option {
	return func(m *machine) error {
		if from == nil || to == nil || event == nil {
			return ErrInvalidTransition
		}
		t := transition{to: to}
		for _, opt := range opts {
			opt(&t)
		}
		byEvent, ok := m.transitions[from.Name()]
		if !ok {
			byEvent = make(map[string][]transition)
			m.transitions[from.Name()] = byEvent
		}
		byEvent[event.Name()] = append(byEvent[event.Name()], t)
		return nil
	}
}

// WithHook registers a hook that observes every completed transition.
func WithHook(hook Hook) Option {
	return func(m *machine) error {
		if hook != nil {
			m.hooks = append(m.hooks, hook)
		}
		return nil
	}
}

// WithGuard adds a guard to a transition. All guards must pass.
func WithGuard(guard Guard) TransitionOption {
	return func(t *transition) {
		if guard != nil {
			t.guards = append(t.guards, guard)
		}
	}
}
