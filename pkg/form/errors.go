package form

import "errors"

var (
	ErrNotSubmittable       = errors.New("form: not submittable")
	ErrSubmissionInProgress = errors.New("form: submission already in progress")
	ErrClosed               = errors.New("form: controller closed")
	ErrUnknownField         = errors.New("form: unknown field")
	ErrDuplicateField       = errors.New("form: duplicate field id")
	ErrEmptyFieldID         = errors.New("form: empty field id")
	ErrNoSubmitter          = errors.New("form: submitter is required")
)
