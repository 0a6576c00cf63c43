package form

import "context"

// OutcomeKind tags a submission outcome.
type OutcomeKind string

const (
	OutcomeSuccess            OutcomeKind = "success"
	OutcomeValidationRejected OutcomeKind = "validation_rejected"
	OutcomeAccountLocked      OutcomeKind = "account_locked"
	OutcomeEmailUnverified    OutcomeKind = "email_unverified"
	OutcomeServerError        OutcomeKind = "server_error"
	OutcomeNetworkError       OutcomeKind = "network_error"
)

// Outcome is the decoded result of one submission. Only the fields relevant
// to Kind are set.
type Outcome struct {
	Kind OutcomeKind
	// Error is the form-level error text of a rejected submission.
	Error string
	// Message is explanatory text from the server. For account-state
	// outcomes it is sanitised HTML.
	Message string
	// FieldErrors maps field IDs to server-side error messages.
	FieldErrors map[string]string
	// Detail describes a transport or server failure.
	Detail string
	// RedirectURL is set when the server answered with a redirect.
	RedirectURL string
	StatusCode  int
}

func (o Outcome) state() SubmissionState {
	switch o.Kind {
	case OutcomeSuccess:
		return StateSucceeded
	case OutcomeValidationRejected, OutcomeAccountLocked, OutcomeEmailUnverified:
		return StateRejected
	default:
		return StateFailed
	}
}

// Submitter sends form data and decodes the response into an Outcome.
// An error is treated as a network failure.
type Submitter interface {
	Submit(ctx context.Context, data Values) (Outcome, error)
}

// SubmitterFunc adapts a function to Submitter.
type SubmitterFunc func(ctx context.Context, data Values) (Outcome, error)

func (f SubmitterFunc) Submit(ctx context.Context, data Values) (Outcome, error) {
	return f(ctx, data)
}
