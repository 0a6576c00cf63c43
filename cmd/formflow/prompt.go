package main

import (
	"errors"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"

	"github.com/dmitrymomot/formflow/pkg/forms"
)

var errAborted = errors.New("aborted by user")

// prompter asks the user for values. It is an interface so the driver can be
// exercised without a terminal.
type prompter interface {
	Ask(field forms.FieldDef, current string) (string, error)
	Confirm(message string, def bool) (bool, error)
}

type surveyPrompter struct {
	opts []survey.AskOpt
}

func (p surveyPrompter) Ask(field forms.FieldDef, current string) (string, error) {
	var prompt survey.Prompt
	if field.Secret {
		prompt = &survey.Password{Message: label(field)}
	} else {
		prompt = &survey.Input{Message: label(field), Default: current}
	}

	opts := append([]survey.AskOpt(nil), p.opts...)
	if field.Required {
		opts = append(opts, survey.WithValidator(survey.Required))
	}

	var out string
	if err := survey.AskOne(prompt, &out, opts...); err != nil {
		return "", translateSurveyErr(err)
	}
	return out, nil
}

func (p surveyPrompter) Confirm(message string, def bool) (bool, error) {
	var out bool
	if err := survey.AskOne(&survey.Confirm{Message: message, Default: def}, &out, p.opts...); err != nil {
		return false, translateSurveyErr(err)
	}
	return out, nil
}

func translateSurveyErr(err error) error {
	if errors.Is(err, terminal.InterruptErr) {
		return errAborted
	}
	return err
}

func label(f forms.FieldDef) string {
	if f.Label != "" {
		return f.Label
	}
	return f.ID
}
