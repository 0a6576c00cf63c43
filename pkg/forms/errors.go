package forms

import "errors"

var (
	ErrFailedToParseYAML = errors.New("forms: failed to parse definitions")
	ErrNoDefinitions     = errors.New("forms: no form definitions found")
	ErrUnknownForm       = errors.New("forms: unknown form")
	ErrInvalidDefinition = errors.New("forms: invalid form definition")
	ErrUnknownRule       = errors.New("forms: unknown rule")
	ErrInvalidRule       = errors.New("forms: invalid rule")
	ErrMissingParam      = errors.New("forms: missing path parameter")
	ErrNoClient          = errors.New("forms: transport client is required")
)
