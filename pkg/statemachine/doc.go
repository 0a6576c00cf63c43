// Package statemachine provides a small finite-state machine used to drive
// the submission lifecycle of a form.
//
// States and events are plain interfaces with string-backed helpers
// (StringState, StringEvent). Transitions may carry Guards, which veto a
// transition based on the data passed to Fire. Hooks observe transitions
// that have completed.
//
// # Usage
//
//	const (
//	    Idle       = statemachine.StringState("idle")
//	    Submitting = statemachine.StringState("submitting")
//	    Submit     = statemachine.StringEvent("submit")
//	)
//
//	machine := statemachine.MustNew(Idle,
//	    statemachine.WithTransition(Idle, Submitting, Submit,
//	        statemachine.WithGuard(func(_ context.Context, _ statemachine.State, _ statemachine.Event, data any) bool {
//	            ok, _ := data.(bool)
//	            return ok
//	        }),
//	    ),
//	    statemachine.WithHook(func(_ context.Context, from, to statemachine.State, _ statemachine.Event) {
//	        log.Printf("%s -> %s", from.Name(), to.Name())
//	    }),
//	)
//
//	err := machine.Fire(ctx, Submit, true)
//
// # Error Handling
//
// Fire distinguishes an undefined transition from one vetoed by guards:
//
//	if statemachine.IsNoTransitionAvailableError(err) { /* wrong state */ }
//	if statemachine.IsTransitionRejectedError(err)   { /* guard said no */ }
//
// # Concurrency
//
// Fire is serialized by a mutex. Guards run under the lock and must not call
// back into the machine. Hooks run after the lock is released.
package statemachine
