package validator

import (
	"regexp"
	"strings"
)

// DefaultSpecialChars is the set a password must draw at least one character from.
const DefaultSpecialChars = `!@#$%^&*()_+-=[]{};':"\|,.<>/?`

// DefaultPasswordMinLength is the minimum password length in characters.
const DefaultPasswordMinLength = 10

var (
	uppercaseRegex = regexp.MustCompile(`[A-Z]`)
	digitRegex     = regexp.MustCompile(`[0-9]`)
)

// PasswordPolicy describes the local password requirements shared by the signup,
// reset and settings forms.
type PasswordPolicy struct {
	MinLength    int
	SpecialChars string
}

func DefaultPasswordPolicy() PasswordPolicy {
	return PasswordPolicy{
		MinLength:    DefaultPasswordMinLength,
		SpecialChars: DefaultSpecialChars,
	}
}

// Rules returns the policy as individual rules, in checklist order.
func (p PasswordPolicy) Rules(field, value string) []Rule {
	minLength := p.MinLength
	if minLength <= 0 {
		minLength = DefaultPasswordMinLength
	}
	special := p.SpecialChars
	if special == "" {
		special = DefaultSpecialChars
	}
	return []Rule{
		MinRunes(field, value, minLength),
		PasswordUppercase(field, value),
		PasswordDigit(field, value),
		PasswordSpecialCharIn(field, value, special),
	}
}

func PasswordUppercase(field, value string) Rule {
	return Rule{
		Check: func() bool {
			return uppercaseRegex.MatchString(value)
		},
		Error: ValidationError{
			Field:          field,
			Message:        "password must contain at least one uppercase letter",
			TranslationKey: "validation.password_uppercase",
			TranslationValues: map[string]any{
				"field": field,
			},
		},
	}
}

func PasswordDigit(field, value string) Rule {
	return Rule{
		Check: func() bool {
			return digitRegex.MatchString(value)
		},
		Error: ValidationError{
			Field:          field,
			Message:        "password must contain at least one number",
			TranslationKey: "validation.password_digit",
			TranslationValues: map[string]any{
				"field": field,
			},
		},
	}
}

// PasswordSpecialCharIn requires at least one character from set.
func PasswordSpecialCharIn(field, value, set string) Rule {
	return Rule{
		Check: func() bool {
			return strings.ContainsAny(value, set)
		},
		Error: ValidationError{
			Field:          field,
			Message:        "password must contain at least one special character",
			TranslationKey: "validation.password_special",
			TranslationValues: map[string]any{
				"field": field,
				"set":   set,
			},
		},
	}
}
