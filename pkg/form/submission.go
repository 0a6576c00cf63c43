package form

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrymomot/formflow/pkg/logger"
	"github.com/dmitrymomot/formflow/pkg/statemachine"
)

// SubmissionState is the state of the submission lifecycle.
type SubmissionState string

func (s SubmissionState) Name() string {
	return string(s)
}

const (
	StateIdle       SubmissionState = "idle"
	StateSubmitting SubmissionState = "submitting"
	StateSucceeded  SubmissionState = "succeeded"
	StateRejected   SubmissionState = "rejected"
	StateFailed     SubmissionState = "failed"
)

const (
	eventSubmit  = statemachine.StringEvent("submit")
	eventSucceed = statemachine.StringEvent("succeed")
	eventReject  = statemachine.StringEvent("reject")
	eventFail    = statemachine.StringEvent("fail")
	eventReset   = statemachine.StringEvent("reset")
)

// submittableGuard receives the aggregate validity computed before Fire, so
// the guard never needs the controller lock.
func submittableGuard(_ context.Context, _ statemachine.State, _ statemachine.Event, data any) bool {
	ok, _ := data.(bool)
	return ok
}

func newSubmissionMachine(hook statemachine.Hook) statemachine.StateMachine {
	return statemachine.MustNew(StateIdle,
		statemachine.WithTransition(StateIdle, StateSubmitting, eventSubmit,
			statemachine.WithGuard(submittableGuard),
		),
		statemachine.WithTransition(StateSubmitting, StateSucceeded, eventSucceed),
		statemachine.WithTransition(StateSubmitting, StateRejected, eventReject),
		statemachine.WithTransition(StateSubmitting, StateFailed, eventFail),
		statemachine.WithTransition(StateSucceeded, StateIdle, eventReset),
		statemachine.WithTransition(StateRejected, StateIdle, eventReset),
		statemachine.WithTransition(StateFailed, StateIdle, eventReset),
		statemachine.WithHook(hook),
	)
}

func outcomeEvent(o Outcome) statemachine.Event {
	switch o.state() {
	case StateSucceeded:
		return eventSucceed
	case StateRejected:
		return eventReject
	default:
		return eventFail
	}
}

// Submit sends the current values through the Submitter and presents the
// outcome. It returns ErrNotSubmittable when the form is not valid and
// ErrSubmissionInProgress while another submission is in flight. A form in a
// terminal state returns to idle first, so the user can retry manually.
func (c *Controller) Submit(ctx context.Context) (Outcome, error) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return Outcome{}, ErrClosed
	}
	submittable := c.submittableLocked()
	data := c.formDataLocked()
	c.mu.Unlock()

	if err := c.machine.Fire(ctx, eventReset, nil); err != nil && !statemachine.IsNoTransitionAvailableError(err) {
		return Outcome{}, err
	}

	if err := c.machine.Fire(ctx, eventSubmit, submittable); err != nil {
		switch {
		case statemachine.IsNoTransitionAvailableError(err):
			err = ErrSubmissionInProgress
		case statemachine.IsTransitionRejectedError(err):
			err = ErrNotSubmittable
		}
		c.observer.SubmitRefused(c.name, err)
		c.log.DebugContext(ctx, "submission refused", logger.Error(err))
		return Outcome{}, err
	}

	c.present(func(p Presenter) { p.ShowInlineError("", "") })
	c.render()

	started := c.clock.Now()
	outcome := c.send(ctx, data)
	took := c.clock.Since(started)

	if err := c.machine.Fire(ctx, outcomeEvent(outcome), nil); err != nil {
		// Only Submit moves the machine out of submitting.
		return outcome, fmt.Errorf("form: finish submission: %w", err)
	}

	c.mu.Lock()
	closed := c.closed
	if !closed {
		for id, msg := range outcome.FieldErrors {
			if f, ok := c.fields[id]; ok {
				f.serverError = msg
			}
		}
	}
	c.mu.Unlock()

	c.observer.Submitted(c.name, outcome.Kind, took)
	c.logOutcome(ctx, outcome, took)

	if closed {
		return outcome, nil
	}
	c.present(func(p Presenter) { c.flow.Dispatch(p, outcome) })
	c.render()

	return outcome, nil
}

func (c *Controller) send(ctx context.Context, data Values) Outcome {
	ctx, cancel := context.WithTimeout(ctx, c.cfg.SubmitTimeout)
	defer cancel()

	outcome, err := c.submitter.Submit(ctx, data)
	if err != nil {
		detail := err.Error()
		if errors.Is(err, context.DeadlineExceeded) {
			detail = "submission timed out"
		}
		return Outcome{Kind: OutcomeNetworkError, Detail: detail}
	}
	if outcome.Kind == "" {
		return Outcome{Kind: OutcomeNetworkError, Detail: "submitter returned an empty outcome"}
	}
	return outcome
}

func (c *Controller) logOutcome(ctx context.Context, o Outcome, took time.Duration) {
	attrs := []any{logger.Outcome(o.Kind), logger.Duration(took)}
	switch o.Kind {
	case OutcomeServerError, OutcomeNetworkError:
		c.log.WarnContext(ctx, "submission failed", append(attrs, "detail", o.Detail)...)
	default:
		c.log.InfoContext(ctx, "submission finished", attrs...)
	}
}

func (c *Controller) transitionHook(ctx context.Context, from, to statemachine.State, _ statemachine.Event) {
	c.log.DebugContext(ctx, "submission state changed", logger.Transition(from.Name(), to.Name()))
}
