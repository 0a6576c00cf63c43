package form_test

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/formflow/pkg/form"
	"github.com/dmitrymomot/formflow/pkg/formtest"
)

const (
	waitFor = time.Second
	tick    = 5 * time.Millisecond
	delay   = 500 * time.Millisecond
)

type checkReply struct {
	res form.Result
	err error
}

type pendingCheck struct {
	value string
	reply chan checkReply
}

func (p pendingCheck) resolve(valid bool, message string) {
	p.reply <- checkReply{res: form.Result{Valid: valid, Message: message}}
}

func (p pendingCheck) fail(err error) {
	p.reply <- checkReply{err: err}
}

// remote is a remote check whose calls are resolved by the test.
type remote struct {
	calls chan pendingCheck
	count atomic.Int32
}

func newRemote() *remote {
	return &remote{calls: make(chan pendingCheck, 16)}
}

func (r *remote) check(ctx context.Context, value string) (form.Result, error) {
	r.count.Add(1)
	p := pendingCheck{value: value, reply: make(chan checkReply, 1)}
	r.calls <- p
	select {
	case rep := <-p.reply:
		return rep.res, rep.err
	case <-ctx.Done():
		return form.Result{}, ctx.Err()
	}
}

func (r *remote) next(t *testing.T) pendingCheck {
	t.Helper()
	select {
	case p := <-r.calls:
		return p
	case <-time.After(waitFor):
		t.Fatal("no remote check issued")
		return pendingCheck{}
	}
}

// blockingSubmitter counts calls and holds each submission until released.
type blockingSubmitter struct {
	calls   atomic.Int32
	started chan struct{}
	release chan form.Outcome
	mu      sync.Mutex
	data    []form.Values
}

func newBlockingSubmitter() *blockingSubmitter {
	return &blockingSubmitter{
		started: make(chan struct{}, 8),
		release: make(chan form.Outcome, 8),
	}
}

func (s *blockingSubmitter) Submit(ctx context.Context, data form.Values) (form.Outcome, error) {
	s.calls.Add(1)
	s.mu.Lock()
	s.data = append(s.data, data)
	s.mu.Unlock()
	s.started <- struct{}{}
	select {
	case o := <-s.release:
		return o, nil
	case <-ctx.Done():
		return form.Outcome{}, ctx.Err()
	}
}

func staticSubmitter(o form.Outcome) form.Submitter {
	return form.SubmitterFunc(func(context.Context, form.Values) (form.Outcome, error) {
		return o, nil
	})
}

type fakeClock interface {
	clockwork.Clock
	Advance(d time.Duration)
}

func newController(t *testing.T, specs []form.FieldSpec, sub form.Submitter, opts ...form.Option) (*form.Controller, *formtest.Presenter, fakeClock) {
	t.Helper()
	clock := clockwork.NewFakeClock()
	presenter := formtest.NewPresenter()
	base := []form.Option{
		form.WithClock(clock),
		form.WithPresenter(presenter),
		form.WithConfig(form.Config{DebounceDelay: delay}),
	}
	c, err := form.New("test", specs, sub, append(base, opts...)...)
	require.NoError(t, err)
	t.Cleanup(c.Close)
	return c, presenter, clock
}

func status(c *form.Controller, id string) form.Status {
	return c.Snapshot().Fields[id].Status
}
