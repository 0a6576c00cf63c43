package validator

import "errors"

// ErrValidationFailed matches every ValidationErrors value.
var ErrValidationFailed = errors.New("validation failed")
