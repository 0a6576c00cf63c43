package statemachine_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/formflow/pkg/statemachine"
)

const (
	idle       = statemachine.StringState("idle")
	submitting = statemachine.StringState("submitting")
	succeeded  = statemachine.StringState("succeeded")
	failed     = statemachine.StringState("failed")

	submit  = statemachine.StringEvent("submit")
	succeed = statemachine.StringEvent("succeed")
	fail    = statemachine.StringEvent("fail")
	reset   = statemachine.StringEvent("reset")
)

func allowed(_ context.Context, _ statemachine.State, _ statemachine.Event, data any) bool {
	ok, _ := data.(bool)
	return ok
}

func newLifecycle(opts ...statemachine.Option) statemachine.StateMachine {
	base := []statemachine.Option{
		statemachine.WithTransition(idle, submitting, submit, statemachine.WithGuard(allowed)),
		statemachine.WithTransition(submitting, succeeded, succeed),
		statemachine.WithTransition(submitting, failed, fail),
		statemachine.WithTransition(succeeded, idle, reset),
		statemachine.WithTransition(failed, idle, reset),
	}
	return statemachine.MustNew(idle, append(base, opts...)...)
}

func TestStateMachine_Lifecycle(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	sm := newLifecycle()

	assert.Equal(t, idle, sm.Current())
	require.NoError(t, sm.Fire(ctx, submit, true))
	assert.Equal(t, submitting, sm.Current())

	require.NoError(t, sm.Fire(ctx, fail, nil))
	assert.Equal(t, failed, sm.Current())

	require.NoError(t, sm.Fire(ctx, reset, nil))
	require.NoError(t, sm.Fire(ctx, submit, true))
	require.NoError(t, sm.Fire(ctx, succeed, nil))
	assert.Equal(t, succeeded, sm.Current())

	require.NoError(t, sm.Fire(ctx, reset, nil))
	assert.Equal(t, idle, sm.Current())
}

func TestStateMachine_Errors(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("guard rejection", func(t *testing.T) {
		t.Parallel()
		sm := newLifecycle()

		err := sm.Fire(ctx, submit, false)
		assert.True(t, statemachine.IsTransitionRejectedError(err))
		assert.False(t, statemachine.IsNoTransitionAvailableError(err))
		assert.Equal(t, idle, sm.Current())
	})

	t.Run("no transition from current state", func(t *testing.T) {
		t.Parallel()
		sm := newLifecycle()
		require.NoError(t, sm.Fire(ctx, submit, true))

		err := sm.Fire(ctx, submit, true)
		assert.True(t, statemachine.IsNoTransitionAvailableError(err))
		assert.ErrorIs(t, err, statemachine.ErrNoTransitionAvailable)
		var terr *statemachine.TransitionError
		require.ErrorAs(t, err, &terr)
		assert.Equal(t, "submitting", terr.State)
		assert.Equal(t, "submit", terr.Event)
		assert.Equal(t, submitting, sm.Current())
	})

	t.Run("nil event", func(t *testing.T) {
		t.Parallel()
		sm := newLifecycle()
		assert.ErrorIs(t, sm.Fire(ctx, nil, nil), statemachine.ErrInvalidEvent)
	})

	t.Run("nil transition parts", func(t *testing.T) {
		t.Parallel()
		_, err := statemachine.New(idle, statemachine.WithTransition(nil, submitting, submit))
		assert.ErrorIs(t, err, statemachine.ErrInvalidTransition)

		_, err = statemachine.New(nil)
		assert.Error(t, err)
	})

	t.Run("must new panics on invalid option", func(t *testing.T) {
		t.Parallel()
		assert.Panics(t, func() {
			statemachine.MustNew(idle, statemachine.WithTransition(idle, nil, submit))
		})
	})
}

func TestStateMachine_Branches(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	var seen []any
	record := func(_ context.Context, _ statemachine.State, _ statemachine.Event, data any) bool {
		seen = append(seen, data)
		return true
	}
	sm := statemachine.MustNew(submitting,
		statemachine.WithTransition(submitting, succeeded, succeed,
			statemachine.WithGuard(record),
			statemachine.WithGuard(nil),
			statemachine.WithGuard(allowed),
		),
		statemachine.WithTransition(submitting, failed, succeed, statemachine.WithGuard(record)),
	)

	require.NoError(t, sm.Fire(ctx, succeed, false))
	assert.Equal(t, failed, sm.Current(), "first branch whose guards all pass wins")
	assert.Equal(t, []any{false, false}, seen)
}

func TestStateMachine_Hooks(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	var (
		mu   sync.Mutex
		seen []string
		sm   statemachine.StateMachine
	)
	sm = newLifecycle(statemachine.WithHook(func(_ context.Context, from, to statemachine.State, event statemachine.Event) {
		// Hooks run outside the lock.
		current := sm.Current()
		mu.Lock()
		defer mu.Unlock()
		seen = append(seen, from.Name()+"-"+event.Name()+"->"+to.Name()+"@"+current.Name())
	}), statemachine.WithHook(nil))

	require.NoError(t, sm.Fire(ctx, submit, true))
	require.NoError(t, sm.Fire(ctx, fail, nil))
	_ = sm.Fire(ctx, submit, true)

	assert.Equal(t, []string{
		"idle-submit->submitting@submitting",
		"submitting-fail->failed@failed",
	}, seen)
}

func TestStateMachine_Concurrency(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	sm := newLifecycle()

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		wins int
	)
	for range 20 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := sm.Fire(ctx, submit, true); err == nil {
				mu.Lock()
				wins++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, wins, "only one submission may start")
	assert.Equal(t, submitting, sm.Current())
}
