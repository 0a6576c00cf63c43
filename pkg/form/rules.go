package form

import "github.com/dmitrymomot/formflow/pkg/validator"

func Required() Rule {
	return func(field, value string, _ Values) validator.Rule {
		return validator.RequiredString(field, value)
	}
}

func MinLength(n int) Rule {
	return func(field, value string, _ Values) validator.Rule {
		return validator.MinRunes(field, value, n)
	}
}

func Uppercase() Rule {
	return func(field, value string, _ Values) validator.Rule {
		return validator.PasswordUppercase(field, value)
	}
}

func Digit() Rule {
	return func(field, value string, _ Values) validator.Rule {
		return validator.PasswordDigit(field, value)
	}
}

// Special requires one character from set, or from the default set when empty.
func Special(set string) Rule {
	if set == "" {
		set = validator.DefaultSpecialChars
	}
	return func(field, value string, _ Values) validator.Rule {
		return validator.PasswordSpecialCharIn(field, value, set)
	}
}

// Password expands policy into its individual rules, in checklist order.
func Password(policy validator.PasswordPolicy) []Rule {
	return []Rule{
		MinLength(orDefault(policy.MinLength, validator.DefaultPasswordMinLength)),
		Uppercase(),
		Digit(),
		Special(policy.SpecialChars),
	}
}

// NotSimilarTo rejects values equal to or containing the value of other, ignoring case.
func NotSimilarTo(other string) Rule {
	return func(field, value string, values Values) validator.Rule {
		return validator.NotSimilarTo(field, value, other, values.Get(other))
	}
}

// EqualTo requires the value to match the value of other.
func EqualTo(other string) Rule {
	return func(field, value string, values Values) validator.Rule {
		return validator.EqualTo(field, value, other, values.Get(other))
	}
}

func NotContains(substr, message string) Rule {
	return func(field, value string, _ Values) validator.Rule {
		return validator.NotContains(field, value, substr, message)
	}
}

// WithMessage replaces the message reported by rule.
func WithMessage(rule Rule, message string) Rule {
	if message == "" {
		return rule
	}
	return func(field, value string, values Values) validator.Rule {
		r := rule(field, value, values)
		r.Error.Message = message
		return r
	}
}

func orDefault(v, d int) int {
	if v <= 0 {
		return d
	}
	return v
}
