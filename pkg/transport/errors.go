package transport

import "errors"

var (
	ErrInvalidBaseURL     = errors.New("transport: invalid base url")
	ErrInvalidAction      = errors.New("transport: invalid action")
	ErrCheckFailed        = errors.New("transport: remote check failed")
	ErrUnexpectedResponse = errors.New("transport: unexpected response")
	ErrMissingResultKey   = errors.New("transport: response lacks result key")
)
