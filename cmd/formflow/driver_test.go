package main

import (
	"bytes"
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/formflow/pkg/form"
	"github.com/dmitrymomot/formflow/pkg/forms"
	"github.com/dmitrymomot/formflow/pkg/formtest"
	"github.com/dmitrymomot/formflow/pkg/transport"
)

// scriptedPrompter answers prompts from per-field queues and returns
// errAborted once a queue runs dry.
type scriptedPrompter struct {
	mu       sync.Mutex
	answers  map[string][]string
	confirms []bool
	asked    []string
}

func (p *scriptedPrompter) Ask(field forms.FieldDef, _ string) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.asked = append(p.asked, field.ID)
	queue := p.answers[field.ID]
	if len(queue) == 0 {
		return "", errAborted
	}
	p.answers[field.ID] = queue[1:]
	return queue[0], nil
}

func (p *scriptedPrompter) Confirm(string, bool) (bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.confirms) == 0 {
		return false, errAborted
	}
	ok := p.confirms[0]
	p.confirms = p.confirms[1:]
	return ok, nil
}

func newDriver(t *testing.T, name string, backend *formtest.Backend, params map[string]string, prompt prompter) (*driver, *bytes.Buffer) {
	t.Helper()

	def, err := forms.Default().Get(name)
	require.NoError(t, err)
	client, err := transport.New(transport.Config{BaseURL: backend.URL(), Timeout: time.Second},
		transport.WithHTTPClient(backend.Client()))
	require.NoError(t, err)

	var out bytes.Buffer
	labels := map[string]string{}
	for _, f := range def.Fields {
		labels[f.ID] = label(f)
	}
	ctrl, err := def.Build(forms.Deps{
		Client:    client,
		Params:    params,
		Presenter: newTerminalPresenter(&out, labels),
	})
	require.NoError(t, err)
	t.Cleanup(ctrl.Close)

	return &driver{def: def, ctrl: ctrl, prompt: prompt, out: &out, settle: 2 * time.Second}, &out
}

func TestDriver_SignupRetriesTakenUsername(t *testing.T) {
	t.Parallel()

	backend := formtest.NewBackend(t)
	backend.Handle("/signup/", func(r formtest.Request) formtest.Response {
		switch {
		case r.Form.Get("check_username") == "true":
			return formtest.Response{JSON: map[string]any{"available": r.Form.Get("username") != "taken"}}
		case r.Form.Get("check_email") == "true":
			return formtest.Response{JSON: map[string]any{"available": true}}
		default:
			return formtest.Response{JSON: map[string]any{"success": true}}
		}
	})

	prompt := &scriptedPrompter{answers: map[string][]string{
		"username":         {"taken", "bob"},
		"email":            {"bob@example.com"},
		"password":         {"Str0ng!Pass"},
		"confirm_password": {"Str0ng!Pass"},
		"first_name":       {"Bob"},
		"last_name":        {""},
	}}
	d, out := newDriver(t, "signup", backend, nil, prompt)

	outcome, err := d.run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, form.OutcomeSuccess, outcome.Kind)

	assert.Equal(t, []string{"username", "username", "email", "password", "confirm_password", "first_name", "last_name"}, prompt.asked)
	assert.Contains(t, out.String(), "Create your account")
	assert.Contains(t, out.String(), "  ✓ Username\n")
	assert.Contains(t, out.String(), "  ✓ First name\n")
	assert.NotContains(t, out.String(), "✓ Last name")
	assert.Contains(t, out.String(), "┌ Great! Welcome to SimSky Economy")
}

func TestDriver_ResetPasswordMismatchIsAskedAgain(t *testing.T) {
	t.Parallel()

	backend := formtest.NewBackend(t)
	backend.Respond("/passwordreset/abc/", formtest.Response{JSON: map[string]any{"success": true}})

	prompt := &scriptedPrompter{answers: map[string][]string{
		"new_password":     {"Str0ng!Pass"},
		"confirm_password": {"Str0ng!Pas", "Str0ng!Pass"},
	}}
	d, out := newDriver(t, "reset_password", backend, map[string]string{"token": "abc"}, prompt)

	outcome, err := d.run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, form.OutcomeSuccess, outcome.Kind)
	assert.Equal(t, []string{"new_password", "confirm_password", "confirm_password"}, prompt.asked)
	assert.Len(t, backend.Requests("/passwordreset/abc/"), 1)
	assert.Contains(t, out.String(), "┌ Success!")
}

func TestDriver_MissingRequiredField(t *testing.T) {
	t.Parallel()

	t.Run("edit again", func(t *testing.T) {
		t.Parallel()
		backend := formtest.NewBackend(t)
		backend.Respond("/login/", formtest.Response{Location: "/dashboard/"})

		prompt := &scriptedPrompter{
			answers: map[string][]string{
				"username": {"", "alice"},
				"password": {"secret"},
			},
			confirms: []bool{true},
		}
		d, out := newDriver(t, "login", backend, nil, prompt)

		outcome, err := d.run(context.Background())
		require.NoError(t, err)
		assert.Equal(t, form.OutcomeSuccess, outcome.Kind)
		assert.Contains(t, out.String(), "  ! missing: [username]\n")
		assert.Contains(t, out.String(), "→ continue at "+backend.URL()+"/dashboard/")
	})

	t.Run("give up", func(t *testing.T) {
		t.Parallel()
		backend := formtest.NewBackend(t)

		prompt := &scriptedPrompter{
			answers:  map[string][]string{"username": {""}, "password": {""}},
			confirms: []bool{false},
		}
		d, _ := newDriver(t, "login", backend, nil, prompt)

		_, err := d.run(context.Background())
		assert.ErrorIs(t, err, form.ErrNotSubmittable)
		assert.Empty(t, backend.Requests("/login/"))
	})
}

func TestDriver_Aborted(t *testing.T) {
	t.Parallel()

	backend := formtest.NewBackend(t)
	prompt := &scriptedPrompter{answers: map[string][]string{"username": {"alice"}}}
	d, _ := newDriver(t, "login", backend, nil, prompt)

	_, err := d.run(context.Background())
	assert.ErrorIs(t, err, errAborted)
}
