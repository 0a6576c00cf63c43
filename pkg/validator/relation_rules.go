package validator

import (
	"strings"

	"golang.org/x/text/cases"
)

// EqualTo validates that value matches the value of another field, as used by
// confirmation inputs.
func EqualTo(field, value, otherField, other string) Rule {
	return Rule{
		Check: func() bool {
			return value == other
		},
		Error: ValidationError{
			Field:          field,
			Message:        "passwords do not match",
			TranslationKey: "validation.equal_to",
			TranslationValues: map[string]any{
				"field": field,
				"other": otherField,
			},
		},
	}
}

// NotSimilarTo rejects values that equal or contain the other field's value,
// ignoring case. The rule does not apply while the other value is empty.
func NotSimilarTo(field, value, otherField, other string) Rule {
	return Rule{
		Check: func() bool {
			if other == "" {
				return true
			}
			// Caser values keep state and must not be shared.
			v := cases.Fold().String(value)
			o := cases.Fold().String(other)
			return v != o && !strings.Contains(v, o)
		},
		Error: ValidationError{
			Field:          field,
			Message:        "must not be similar to " + otherField,
			TranslationKey: "validation.not_similar",
			TranslationValues: map[string]any{
				"field": field,
				"other": otherField,
			},
		},
	}
}
