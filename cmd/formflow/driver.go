package main

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/dmitrymomot/formflow/pkg/form"
	"github.com/dmitrymomot/formflow/pkg/forms"
)

const pollInterval = 20 * time.Millisecond

// driver walks the user through one form: it asks for every field, waits for
// its checks to settle, and submits once the form is complete.
type driver struct {
	def    forms.Definition
	ctrl   *form.Controller
	prompt prompter
	out    io.Writer
	// settle bounds the wait for a field's remote check.
	settle time.Duration
}

func (d *driver) run(ctx context.Context) (form.Outcome, error) {
	if d.def.Title != "" {
		fmt.Fprintf(d.out, "%s\n\n", d.def.Title)
	}

	for _, f := range d.def.Fields {
		if err := d.fill(ctx, f); err != nil {
			return form.Outcome{}, err
		}
	}

	for !d.ctrl.Submittable() {
		snap := d.ctrl.Snapshot()
		if len(snap.MissingRequired) > 0 {
			fmt.Fprintf(d.out, "  ! missing: %v\n", snap.MissingRequired)
		}
		again, err := d.prompt.Confirm("Some fields need attention. Edit them?", true)
		if err != nil {
			return form.Outcome{}, err
		}
		if !again {
			return form.Outcome{}, form.ErrNotSubmittable
		}
		for _, f := range d.def.Fields {
			if v := snap.Fields[f.ID]; v.Status != form.StatusValid {
				if err := d.fill(ctx, f); err != nil {
					return form.Outcome{}, err
				}
			}
		}
	}

	return d.ctrl.Submit(ctx)
}

// fill asks for f until its value is not rejected.
func (d *driver) fill(ctx context.Context, f forms.FieldDef) error {
	current := d.ctrl.Snapshot().Fields[f.ID].Value
	for {
		value, err := d.prompt.Ask(f, current)
		if err != nil {
			return err
		}
		if err := d.ctrl.SetValue(f.ID, value); err != nil {
			return err
		}
		if err := d.ctrl.Blur(f.ID); err != nil {
			return err
		}

		view, err := d.wait(ctx, f.ID)
		if err != nil {
			return err
		}
		if view.Status != form.StatusInvalid {
			if view.Status == form.StatusValid && value != "" {
				fmt.Fprintf(d.out, "  ✓ %s\n", label(f))
			}
			return nil
		}
		current = value
	}
}

// wait polls until the field has no check in flight or settle elapses.
func (d *driver) wait(ctx context.Context, id string) (form.FieldView, error) {
	ctx, cancel := context.WithTimeout(ctx, d.settle)
	defer cancel()

	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()
	for {
		view := d.ctrl.Snapshot().Fields[id]
		if !view.Pending {
			return view, nil
		}
		select {
		case <-ctx.Done():
			if ctx.Err() == context.DeadlineExceeded {
				return view, nil
			}
			return view, ctx.Err()
		case <-ticker.C:
		}
	}
}
