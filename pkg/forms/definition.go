package forms

import (
	"fmt"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/dmitrymomot/formflow/pkg/form"
	"github.com/dmitrymomot/formflow/pkg/validator"
)

// Definition declares one form: where it posts, its fields, and how each
// submission outcome is presented.
type Definition struct {
	Name   string     `yaml:"-"`
	Title  string     `yaml:"title"`
	Action string     `yaml:"action"`
	Fields []FieldDef `yaml:"fields"`
	Flow   FlowDef    `yaml:"flow"`
}

// FieldDef declares one field.
type FieldDef struct {
	ID       string     `yaml:"id"`
	Label    string     `yaml:"label"`
	Required bool       `yaml:"required"`
	Secret   bool       `yaml:"secret"`
	Group    string     `yaml:"group"`
	Rules    []RuleDef  `yaml:"rules"`
	Remote   *RemoteDef `yaml:"remote"`
}

// RemoteDef configures a server-side availability or validity check.
// Endpoint defaults to the form action.
type RemoteDef struct {
	Endpoint string `yaml:"endpoint"`
	Marker   string `yaml:"marker"`
	Result   string `yaml:"result"`
	Message  string `yaml:"message"`
	Error    string `yaml:"error"`
	Success  string `yaml:"success"`
}

// RuleDef is one local rule. In YAML it is either a bare name
// ("uppercase") or a single-key map carrying an argument, optionally with a
// message override:
//
//	- {min_length: 8}
//	- {not_contains: "+", message: Invalid email format}
type RuleDef struct {
	Name    string
	Arg     string
	Message string
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (r *RuleDef) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		r.Name = node.Value
		return nil
	case yaml.MappingNode:
	default:
		return fmt.Errorf("%w: line %d: expected a name or a map", ErrInvalidRule, node.Line)
	}

	for i := 0; i+1 < len(node.Content); i += 2 {
		key, val := node.Content[i], node.Content[i+1]
		if key.Value == "message" {
			r.Message = val.Value
			continue
		}
		if r.Name != "" {
			return fmt.Errorf("%w: line %d: more than one rule in %q and %q", ErrInvalidRule, key.Line, r.Name, key.Value)
		}
		r.Name = key.Value
		switch val.Kind {
		case yaml.ScalarNode:
			if val.Tag != "!!null" {
				r.Arg = val.Value
			}
		case yaml.MappingNode:
			if len(val.Content) > 0 {
				return fmt.Errorf("%w: line %d: %s takes no options", ErrInvalidRule, val.Line, key.Value)
			}
		default:
			return fmt.Errorf("%w: line %d: %s argument must be a scalar", ErrInvalidRule, val.Line, key.Value)
		}
	}
	if r.Name == "" {
		return fmt.Errorf("%w: line %d: rule name missing", ErrInvalidRule, node.Line)
	}
	return nil
}

// FlowDef maps outcomes to notices. See form.Flow.
type FlowDef struct {
	HostModal       string    `yaml:"host_modal"`
	Success         NoticeDef `yaml:"success"`
	Rejected        NoticeDef `yaml:"rejected"`
	AccountLocked   NoticeDef `yaml:"account_locked"`
	EmailUnverified NoticeDef `yaml:"email_unverified"`
	Failure         NoticeDef `yaml:"failure"`
}

type NoticeDef struct {
	Modal    string `yaml:"modal"`
	Title    string `yaml:"title"`
	Body     string `yaml:"body"`
	Fallback string `yaml:"fallback"`
	Redirect string `yaml:"redirect"`
}

func (n NoticeDef) notice(params map[string]string) (form.Notice, error) {
	redirect, err := expandPath(n.Redirect, params)
	if err != nil {
		return form.Notice{}, err
	}
	return form.Notice{
		Modal:       n.Modal,
		Title:       n.Title,
		Body:        n.Body,
		Fallback:    n.Fallback,
		RedirectURL: redirect,
	}, nil
}

func (f FlowDef) flow(params map[string]string) (form.Flow, error) {
	out := form.Flow{HostModal: f.HostModal}
	for _, p := range []struct {
		def NoticeDef
		dst *form.Notice
	}{
		{f.Success, &out.Success},
		{f.Rejected, &out.Rejected},
		{f.AccountLocked, &out.AccountLocked},
		{f.EmailUnverified, &out.EmailUnverified},
		{f.Failure, &out.Failure},
	} {
		n, err := p.def.notice(params)
		if err != nil {
			return form.Flow{}, err
		}
		*p.dst = n
	}
	return out, nil
}

// Field returns the definition of the field id.
func (d Definition) Field(id string) (FieldDef, bool) {
	for _, f := range d.Fields {
		if f.ID == id {
			return f, true
		}
	}
	return FieldDef{}, false
}

// validate checks structure and rules without building anything.
func (d Definition) validate() error {
	if d.Action == "" {
		return fmt.Errorf("%w: %s: action is required", ErrInvalidDefinition, d.Name)
	}
	seen := make(map[string]bool, len(d.Fields))
	for _, f := range d.Fields {
		if f.ID == "" {
			return fmt.Errorf("%w: %s: field without id", ErrInvalidDefinition, d.Name)
		}
		if seen[f.ID] {
			return fmt.Errorf("%w: %s: duplicate field %s", ErrInvalidDefinition, d.Name, f.ID)
		}
		seen[f.ID] = true
	}
	for _, f := range d.Fields {
		if f.Remote != nil && f.Remote.Result == "" {
			return fmt.Errorf("%w: %s.%s: remote check needs a result key", ErrInvalidDefinition, d.Name, f.ID)
		}
		for _, r := range f.Rules {
			if r.Name == "not_similar_to" || r.Name == "equals" {
				if !seen[r.Arg] {
					return fmt.Errorf("%w: %s.%s: %s refers to unknown field %q", ErrInvalidRule, d.Name, f.ID, r.Name, r.Arg)
				}
			}
		}
		if _, err := f.rules(validator.DefaultPasswordPolicy()); err != nil {
			return fmt.Errorf("%s.%s: %w", d.Name, f.ID, err)
		}
	}
	return nil
}

func (f FieldDef) rules(policy validator.PasswordPolicy) ([]form.Rule, error) {
	var out []form.Rule
	for _, r := range f.Rules {
		built, err := r.build(policy)
		if err != nil {
			return nil, err
		}
		out = append(out, built...)
	}
	return out, nil
}

func (r RuleDef) build(policy validator.PasswordPolicy) ([]form.Rule, error) {
	var rule form.Rule
	switch r.Name {
	case "required":
		rule = form.Required()
	case "min_length":
		n, err := strconv.Atoi(r.Arg)
		if err != nil || n <= 0 {
			return nil, fmt.Errorf("%w: min_length needs a positive integer, got %q", ErrInvalidRule, r.Arg)
		}
		rule = form.MinLength(n)
	case "uppercase":
		rule = form.Uppercase()
	case "digit":
		rule = form.Digit()
	case "special":
		rule = form.Special(r.Arg)
	case "password":
		return form.Password(policy), nil
	case "not_similar_to":
		if r.Arg == "" {
			return nil, fmt.Errorf("%w: not_similar_to needs a field", ErrInvalidRule)
		}
		rule = form.NotSimilarTo(r.Arg)
	case "equals":
		if r.Arg == "" {
			return nil, fmt.Errorf("%w: equals needs a field", ErrInvalidRule)
		}
		rule = form.EqualTo(r.Arg)
	case "not_contains":
		if r.Arg == "" {
			return nil, fmt.Errorf("%w: not_contains needs a substring", ErrInvalidRule)
		}
		return []form.Rule{form.NotContains(r.Arg, r.Message)}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownRule, r.Name)
	}
	return []form.Rule{form.WithMessage(rule, r.Message)}, nil
}
