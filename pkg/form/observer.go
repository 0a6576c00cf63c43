package form

import "time"

// Remote check results reported to an Observer.
const (
	CheckValid   = "valid"
	CheckInvalid = "invalid"
	CheckError   = "error"
	CheckStale   = "stale"
)

// Observer receives controller events, typically to record metrics.
// Methods may be called from any goroutine.
type Observer interface {
	RemoteCheck(form, field, result string, took time.Duration)
	SubmitRefused(form string, reason error)
	Submitted(form string, kind OutcomeKind, took time.Duration)
}

type nopObserver struct{}

func (nopObserver) RemoteCheck(string, string, string, time.Duration) {}
func (nopObserver) SubmitRefused(string, error)                       {}
func (nopObserver) Submitted(string, OutcomeKind, time.Duration)      {}
