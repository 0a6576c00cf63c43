// Package debounce delays keyed actions until input quiesces.
//
// A Debouncer keeps at most one pending run per key. Calling Trigger again
// before the delay elapses cancels the pending run and schedules a new one,
// so only the last trigger of a burst fires. A timer that fires after its
// run was superseded finds a different run registered for the key and does
// nothing.
//
// Cancellation is logical: the debouncer never aborts work that already
// started. Callers that launch asynchronous work from the scheduled function
// guard the results themselves.
//
// # Usage
//
//	d := debounce.New(500 * time.Millisecond)
//	defer d.Stop()
//
//	// on every keystroke
//	_ = d.Trigger("username", func() { checkUsername() })
//
//	// on blur, run the pending check right away
//	d.Flush("username")
//
// Tests inject a fake clock with WithClock(clockwork.NewFakeClock()).
package debounce
