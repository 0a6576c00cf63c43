package debounce

import "errors"

var (
	// ErrStopped is returned when scheduling on a debouncer that has been stopped.
	ErrStopped = errors.New("debounce: debouncer stopped")

	// ErrNilFunc is returned when Trigger is called without a function.
	ErrNilFunc = errors.New("debounce: nil function")
)
