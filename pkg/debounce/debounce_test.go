package debounce_test

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/formflow/pkg/debounce"
)

const (
	waitFor = time.Second
	tick    = 5 * time.Millisecond
)

func TestDebouncer_BurstFiresOnceWithLastValue(t *testing.T) {
	t.Parallel()

	clock := clockwork.NewFakeClock()
	d := debounce.New(500*time.Millisecond, debounce.WithClock(clock))
	defer d.Stop()

	var (
		mu    sync.Mutex
		value string
		seen  []string
	)
	check := func() {
		mu.Lock()
		defer mu.Unlock()
		seen = append(seen, value)
	}
	edit := func(v string) {
		mu.Lock()
		value = v
		mu.Unlock()
		require.NoError(t, d.Trigger("username", check))
	}

	edit("b")
	clock.Advance(100 * time.Millisecond)
	edit("bo")
	clock.Advance(100 * time.Millisecond)
	edit("bob")

	clock.Advance(499 * time.Millisecond)
	assert.Never(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(seen) > 0
	}, 50*time.Millisecond, tick)

	clock.Advance(time.Millisecond)
	assert.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(seen) == 1
	}, waitFor, tick)

	mu.Lock()
	assert.Equal(t, []string{"bob"}, seen)
	mu.Unlock()
	assert.False(t, d.Flush("username"), "nothing pending after firing")
}

func TestDebouncer_KeysAreIndependent(t *testing.T) {
	t.Parallel()

	clock := clockwork.NewFakeClock()
	d := debounce.New(500*time.Millisecond, debounce.WithClock(clock))
	defer d.Stop()

	var username, password atomic.Int32
	_ = d.Trigger("username", func() { username.Add(1) })
	_ = d.Trigger("password", func() { password.Add(1) })
	_ = d.Trigger("password", func() { password.Add(1) })

	clock.Advance(500 * time.Millisecond)
	assert.Eventually(t, func() bool {
		return username.Load() == 1 && password.Load() == 1
	}, waitFor, tick)
}

func TestDebouncer_Flush(t *testing.T) {
	t.Parallel()

	clock := clockwork.NewFakeClock()
	d := debounce.New(time.Second, debounce.WithClock(clock))
	defer d.Stop()

	var calls atomic.Int32
	require.NoError(t, d.Trigger("email", func() { calls.Add(1) }))

	assert.True(t, d.Flush("email"))
	assert.Equal(t, int32(1), calls.Load())
	assert.False(t, d.Flush("email"), "nothing left to flush")

	clock.Advance(2 * time.Second)
	assert.Never(t, func() bool { return calls.Load() > 1 }, 50*time.Millisecond, tick)
}

func TestDebouncer_Cancel(t *testing.T) {
	t.Parallel()

	clock := clockwork.NewFakeClock()
	d := debounce.New(time.Second, debounce.WithClock(clock))
	defer d.Stop()

	var calls atomic.Int32
	_ = d.Trigger("username", func() { calls.Add(1) })
	assert.True(t, d.Cancel("username"))
	assert.False(t, d.Cancel("username"))

	clock.Advance(2 * time.Second)
	assert.Never(t, func() bool { return calls.Load() > 0 }, 50*time.Millisecond, tick)
}

func TestDebouncer_SupersededTimerDoesNothing(t *testing.T) {
	t.Parallel()

	clock := clockwork.NewFakeClock()
	d := debounce.New(time.Second, debounce.WithClock(clock))
	defer d.Stop()

	var first, second atomic.Int32
	require.NoError(t, d.Trigger("username", func() { first.Add(1) }))
	clock.Advance(time.Second)
	assert.Eventually(t, func() bool { return first.Load() == 1 }, waitFor, tick)

	require.NoError(t, d.Trigger("username", func() { second.Add(1) }))
	require.NoError(t, d.Trigger("username", func() { second.Add(1) }))
	clock.Advance(time.Second)
	assert.Eventually(t, func() bool { return second.Load() == 1 }, waitFor, tick)
	assert.Never(t, func() bool { return first.Load() > 1 || second.Load() > 1 }, 50*time.Millisecond, tick)
}

func TestDebouncer_Stop(t *testing.T) {
	t.Parallel()

	clock := clockwork.NewFakeClock()
	d := debounce.New(time.Second, debounce.WithClock(clock))

	var calls atomic.Int32
	_ = d.Trigger("username", func() { calls.Add(1) })
	d.Stop()

	assert.ErrorIs(t, d.Trigger("username", func() { calls.Add(1) }), debounce.ErrStopped)

	clock.Advance(2 * time.Second)
	assert.Never(t, func() bool { return calls.Load() > 0 }, 50*time.Millisecond, tick)
}

func TestDebouncer_Defaults(t *testing.T) {
	t.Parallel()

	clock := clockwork.NewFakeClock()
	d := debounce.New(0, debounce.WithClock(clock))
	defer d.Stop()

	var calls atomic.Int32
	require.NoError(t, d.Trigger("username", func() { calls.Add(1) }))
	clock.Advance(debounce.DefaultDelay - time.Millisecond)
	assert.Never(t, func() bool { return calls.Load() > 0 }, 50*time.Millisecond, tick)
	clock.Advance(time.Millisecond)
	assert.Eventually(t, func() bool { return calls.Load() == 1 }, waitFor, tick)

	assert.ErrorIs(t, d.Trigger("username", nil), debounce.ErrNilFunc)
}

func TestDebouncer_RealClock(t *testing.T) {
	t.Parallel()

	d := debounce.New(10 * time.Millisecond)
	defer d.Stop()

	var calls atomic.Int32
	for range 5 {
		_ = d.Trigger("username", func() { calls.Add(1) })
	}

	assert.Eventually(t, func() bool { return calls.Load() == 1 }, waitFor, tick)
	assert.Never(t, func() bool { return calls.Load() > 1 }, 50*time.Millisecond, tick)
}
