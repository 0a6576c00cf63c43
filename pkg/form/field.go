package form

import (
	"context"

	"github.com/dmitrymomot/formflow/pkg/validator"
)

// Status is the validity of a field as shown to the user.
type Status string

const (
	StatusUnknown Status = "unknown"
	StatusValid   Status = "valid"
	StatusInvalid Status = "invalid"
)

// Mode says how a field is validated. It is derived from its FieldSpec.
type Mode string

const (
	ModeLocal  Mode = "local"
	ModeRemote Mode = "remote"
	ModeBoth   Mode = "both"
)

// DefaultRemoteErrorMessage is shown when a remote check could not complete.
const DefaultRemoteErrorMessage = "Could not verify this value. Please try again."

// Result is the outcome of validating a single value.
type Result struct {
	Valid   bool
	Message string
}

// Values maps field IDs to their raw values.
type Values map[string]string

// Get returns the value of id, or an empty string.
func (v Values) Get(id string) string {
	if v == nil {
		return ""
	}
	return v[id]
}

func (v Values) clone() Values {
	out := make(Values, len(v))
	for k, val := range v {
		out[k] = val
	}
	return out
}

// Rule builds a validator rule for one field. values holds the current value
// of every field in the form so rules can compare against siblings.
type Rule func(field, value string, values Values) validator.Rule

// RemoteCheck asks the server whether value is acceptable.
type RemoteCheck func(ctx context.Context, value string) (Result, error)

// FieldSpec declares one field of a form.
type FieldSpec struct {
	ID       string
	Required bool
	// Group names a set of optional fields that activate together: once any
	// member is non-empty, every member is validated.
	Group string
	Rules []Rule
	// Remote is run after the debounce delay whenever the value is non-empty.
	Remote RemoteCheck
	// RemoteFailureMessage is shown when the server rejects the value without a message.
	RemoteFailureMessage string
	// RemoteErrorMessage is shown when the check could not complete.
	RemoteErrorMessage string
	// RemoteSuccessMessage is optional feedback shown once the server accepts the value.
	RemoteSuccessMessage string
}

// Mode reports how the field is validated.
func (s FieldSpec) Mode() Mode {
	switch {
	case s.Remote != nil && len(s.Rules) > 0:
		return ModeBoth
	case s.Remote != nil:
		return ModeRemote
	default:
		return ModeLocal
	}
}

// Feedback is the inline message state of a field.
type Feedback struct {
	Visible bool
	Message string
}

// Check is the result of one local rule, used for requirement checklists.
type Check struct {
	Key     string
	Message string
	Passed  bool
}

// FieldView is a read-only view of a field.
type FieldView struct {
	ID         string
	Value      string
	Mode       Mode
	Status     Status
	Pending    bool
	Generation uint64
	Feedback   Feedback
	Checks     []Check
}

// Snapshot is a consistent, read-only copy of the form state.
type Snapshot struct {
	Form            string
	SubmitEnabled   bool
	MissingRequired []string
	State           SubmissionState
	Order           []string
	Fields          map[string]FieldView
}

// Field returns the view of id.
func (s Snapshot) Field(id string) (FieldView, bool) {
	f, ok := s.Fields[id]
	return f, ok
}

// ValidateLocal runs every local rule of spec against value. values supplies
// sibling field values for cross-field rules. The message is that of the first
// failing rule.
func ValidateLocal(spec FieldSpec, value string, values Values) Result {
	res, _ := evaluate(spec, value, values)
	return res
}

func evaluate(spec FieldSpec, value string, values Values) (Result, []Check) {
	if len(spec.Rules) == 0 {
		return Result{Valid: true}, nil
	}

	rules := make([]validator.Rule, 0, len(spec.Rules))
	for _, build := range spec.Rules {
		if build != nil {
			rules = append(rules, build(spec.ID, value, values))
		}
	}

	checks := make([]Check, 0, len(rules))
	for _, r := range rules {
		checks = append(checks, Check{Key: r.Key(), Message: r.Error.Message, Passed: r.Check()})
	}

	first, failed := validator.ExtractValidationErrors(validator.Apply(rules...)).First(spec.ID)
	if !failed {
		return Result{Valid: true}, checks
	}
	return Result{Valid: false, Message: first.Message}, checks
}
