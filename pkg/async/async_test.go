package async_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/formflow/pkg/async"
)

type checkResult struct {
	Valid   bool
	Message string
}

func TestAsync_ReturnsResult(t *testing.T) {
	t.Parallel()

	future := async.Async(context.Background(), "bob", func(_ context.Context, username string) (checkResult, error) {
		time.Sleep(10 * time.Millisecond)
		return checkResult{Valid: username != "admin"}, nil
	})

	res, err := future.Await()
	require.NoError(t, err)
	assert.True(t, res.Valid)
}

func TestAsync_ContextCancellation(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	future := async.Async(ctx, "bob", func(ctx context.Context, _ string) (checkResult, error) {
		select {
		case <-time.After(time.Second):
			return checkResult{Valid: true}, nil
		case <-ctx.Done():
			return checkResult{}, ctx.Err()
		}
	})

	res, err := future.Await()
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.False(t, res.Valid)
}

func TestAsync_PreCanceledContextSkipsWork(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	called := false
	future := async.Async(ctx, 1, func(context.Context, int) (int, error) {
		called = true
		return 1, nil
	})

	_, err := future.Await()
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, called)
}

func TestAsync_ErrorPropagation(t *testing.T) {
	t.Parallel()

	expected := errors.New("connection refused")
	future := async.Async(context.Background(), "bob", func(context.Context, string) (checkResult, error) {
		return checkResult{}, expected
	})

	_, err := future.Await()
	assert.ErrorIs(t, err, expected)
}

func TestAsync_PanicBecomesError(t *testing.T) {
	t.Parallel()

	future := async.Async(context.Background(), "bob", func(context.Context, string) (checkResult, error) {
		panic("boom")
	})

	_, err := future.Await()
	require.Error(t, err)
	assert.ErrorIs(t, err, async.ErrPanic)
	assert.Contains(t, err.Error(), "boom")
}

func TestAwait_BlocksUntilDone(t *testing.T) {
	t.Parallel()

	release := make(chan struct{})
	future := async.Async(context.Background(), 0, func(context.Context, int) (int, error) {
		<-release
		return 42, nil
	})

	got := make(chan int, 1)
	go func() {
		n, _ := future.Await()
		got <- n
	}()

	select {
	case <-got:
		t.Fatal("Await returned before the work finished")
	case <-time.After(20 * time.Millisecond):
	}
	close(release)

	select {
	case n := <-got:
		assert.Equal(t, 42, n)
	case <-time.After(time.Second):
		t.Fatal("future did not complete")
	}

	// Await is repeatable.
	n, err := future.Await()
	require.NoError(t, err)
	assert.Equal(t, 42, n)
}

func TestThen(t *testing.T) {
	t.Parallel()

	future := async.Async(context.Background(), "abc", func(_ context.Context, v string) (int, error) {
		return len(v), nil
	})

	var (
		got    int
		gotErr error
	)
	finished := async.Then(future, func(n int, err error) {
		got = n
		gotErr = err
	})

	select {
	case <-finished:
	case <-time.After(time.Second):
		t.Fatal("callback did not run")
	}
	assert.Equal(t, 3, got)
	assert.NoError(t, gotErr)
}
