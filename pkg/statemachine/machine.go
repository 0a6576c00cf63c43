package statemachine

import (
	"context"
	"sync"
)

type transition struct {
	to     State
	guards []Guard
}

func (t transition) allows(ctx context.Context, from State, event Event, data any) bool {
	for _, g := range t.guards {
		if !g(ctx, from, event, data) {
			return false
		}
	}
	return true
}

// machine indexes transitions as [from][event].
type machine struct {
	mu          sync.RWMutex
	current     State
	transitions map[string]map[string][]transition
	hooks       []Hook
}

func (m *machine) Current() State {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current
}

// Fire moves the machine along the first transition for event whose guards
// accept data. Guards run under the lock and must not call back into the
// machine.
func (m *machine) Fire(ctx context.Context, event Event, data any) error {
	if event == nil {
		return ErrInvalidEvent
	}

	m.mu.Lock()
	from := m.current
	candidates := m.transitions[from.Name()][event.Name()]
	if len(candidates) == 0 {
		m.mu.Unlock()
		return &TransitionError{State: from.Name(), Event: event.Name(), Err: ErrNoTransitionAvailable}
	}
	var to State
	for _, t := range candidates {
		if t.allows(ctx, from, event, data) {
			to = t.to
			break
		}
	}
	if to == nil {
		m.mu.Unlock()
		return &TransitionError{State: from.Name(), Event: event.Name(), Err: ErrTransitionRejected}
	}
	m.current = to
	hooks := m.hooks
	m.mu.Unlock()

	for _, hook := range hooks {
		hook(ctx, from, to, event)
	}
	return nil
}
