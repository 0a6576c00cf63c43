package validator

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// RequiredString validates that a string is not empty after trimming whitespace.
func RequiredString(field, value string) Rule {
	return Rule{
		Check: func() bool {
			return strings.TrimSpace(value) != ""
		},
		Error: ValidationError{
			Field:          field,
			Message:        "field is required",
			TranslationKey: "validation.required",
			TranslationValues: map[string]any{
				"field": field,
			},
		},
	}
}

// MinRunes counts characters rather than bytes, so "Pässwörd!1" is ten long.
func MinRunes(field, value string, min int) Rule {
	return Rule{
		Check: func() bool {
			return utf8.RuneCountInString(value) >= min
		},
		Error: ValidationError{
			Field:          field,
			Message:        fmt.Sprintf("must be at least %d characters long", min),
			TranslationKey: "validation.min_length",
			TranslationValues: map[string]any{
				"field": field,
				"min":   min,
			},
		},
	}
}

// NotContains rejects values containing substr. An empty message falls back to a generic one.
func NotContains(field, value, substr, message string) Rule {
	if message == "" {
		message = fmt.Sprintf("must not contain %q", substr)
	}
	return Rule{
		Check: func() bool {
			return substr == "" || !strings.Contains(value, substr)
		},
		Error: ValidationError{
			Field:          field,
			Message:        message,
			TranslationKey: "validation.not_contains",
			TranslationValues: map[string]any{
				"field":  field,
				"substr": substr,
			},
		},
	}
}
