// Package validator provides small, composable validation rules used by the
// form engine to evaluate field values locally, without any I/O.
//
// A Rule couples a boolean Check with translation-friendly error metadata.
// Rules are evaluated with Apply which aggregates failures into a
// ValidationErrors slice that satisfies the error interface. The translation
// key of each rule doubles as its stable name, which lets callers render a
// per-requirement checklist (for example the password indicators on the signup
// page) from the same rules that decide validity.
//
// # Rule families
//
//   - string_rules.go: RequiredString, MinRunes, NotContains
//   - password_rules.go: PasswordPolicy, PasswordUppercase, PasswordDigit,
//     PasswordSpecialCharIn
//   - relation_rules.go: EqualTo and NotSimilarTo for cross-field checks
//
// # Usage
//
//	policy := validator.DefaultPasswordPolicy()
//	rules := append(policy.Rules("password", password),
//	    validator.NotSimilarTo("password", password, "username", username),
//	)
//	if err := validator.Apply(rules...); err != nil {
//	    errs := validator.ExtractValidationErrors(err)
//	    // errs[0].Message, errs[0].TranslationKey
//	}
//
// All rules are pure and goroutine-safe. Checks that need the network (for
// example username availability) live in the form package as remote checks.
package validator
