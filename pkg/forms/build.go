package forms

import (
	"fmt"
	"log/slog"
	"net/url"
	"regexp"

	"github.com/jonboulle/clockwork"

	"github.com/dmitrymomot/formflow/pkg/form"
	"github.com/dmitrymomot/formflow/pkg/transport"
)

// Deps carries everything a definition needs to become a live controller.
type Deps struct {
	// Client posts submissions and remote checks. Required.
	Client *transport.Client
	// Params fills {name} placeholders in actions, endpoints and redirects,
	// for example the reset token or the user ID.
	Params map[string]string
	// Hidden values are sent with every submission and remote check,
	// typically the CSRF token.
	Hidden    form.Values
	Config    form.Config
	Presenter form.Presenter
	Logger    *slog.Logger
	Observer  form.Observer
	Clock     clockwork.Clock
	// Options are applied last and override the fields above.
	Options []form.Option
}

// Build creates a controller for d.
func (d Definition) Build(deps Deps) (*form.Controller, error) {
	if deps.Client == nil {
		return nil, ErrNoClient
	}

	action, err := expandPath(d.Action, deps.Params)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", d.Name, err)
	}
	flow, err := d.Flow.flow(deps.Params)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", d.Name, err)
	}

	policy := deps.Config.PasswordPolicy()
	specs := make([]form.FieldSpec, 0, len(d.Fields))
	for _, f := range d.Fields {
		rules, err := f.rules(policy)
		if err != nil {
			return nil, fmt.Errorf("%s.%s: %w", d.Name, f.ID, err)
		}
		spec := form.FieldSpec{
			ID:       f.ID,
			Required: f.Required,
			Group:    f.Group,
			Rules:    rules,
		}
		if r := f.Remote; r != nil {
			endpoint := action
			if r.Endpoint != "" {
				if endpoint, err = expandPath(r.Endpoint, deps.Params); err != nil {
					return nil, fmt.Errorf("%s.%s: %w", d.Name, f.ID, err)
				}
			}
			spec.Remote = deps.Client.RemoteCheck(transport.CheckSpec{
				Endpoint: endpoint,
				Marker:   r.Marker,
				Field:    f.ID,
				Result:   r.Result,
				Extra:    deps.Hidden,
			})
			spec.RemoteFailureMessage = r.Message
			spec.RemoteErrorMessage = r.Error
			spec.RemoteSuccessMessage = r.Success
		}
		specs = append(specs, spec)
	}

	opts := []form.Option{
		form.WithConfig(deps.Config),
		form.WithFlow(flow),
		form.WithHidden(deps.Hidden),
		form.WithPresenter(deps.Presenter),
		form.WithLogger(deps.Logger),
		form.WithObserver(deps.Observer),
		form.WithClock(deps.Clock),
	}
	opts = append(opts, deps.Options...)

	return form.New(d.Name, specs, deps.Client.Submitter(action), opts...)
}

var placeholder = regexp.MustCompile(`\{([A-Za-z0-9_]+)\}`)

// expandPath replaces {name} segments with path-escaped params.
func expandPath(path string, params map[string]string) (string, error) {
	var missing string
	out := placeholder.ReplaceAllStringFunc(path, func(m string) string {
		name := m[1 : len(m)-1]
		v, ok := params[name]
		if !ok || v == "" {
			if missing == "" {
				missing = name
			}
			return m
		}
		return url.PathEscape(v)
	})
	if missing != "" {
		return "", fmt.Errorf("%w: %s", ErrMissingParam, missing)
	}
	return out, nil
}
