package form

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"github.com/dmitrymomot/formflow/pkg/async"
	"github.com/dmitrymomot/formflow/pkg/debounce"
	"github.com/dmitrymomot/formflow/pkg/logger"
	"github.com/dmitrymomot/formflow/pkg/statemachine"
)

type remoteState struct {
	status  Status
	message string
	// pending covers both the debounce period and the request in flight.
	pending bool
}

type field struct {
	spec        FieldSpec
	value       string
	gen         uint64
	remote      remoteState
	serverError string
}

// Controller tracks the validity of a form's fields and runs its submission.
// One Controller serves one form instance. All methods are safe for
// concurrent use.
type Controller struct {
	name      string
	id        string
	cfg       Config
	order     []string
	hidden    Values
	submitter Submitter
	presenter Presenter
	flow      Flow
	observer  Observer
	log       *slog.Logger
	clock     clockwork.Clock

	debouncer *debounce.Debouncer
	machine   statemachine.StateMachine

	ctx    context.Context
	cancel context.CancelFunc

	mu     sync.Mutex
	fields map[string]*field
	closed bool

	// renderMu serialises presenter calls; it is always taken before mu.
	renderMu sync.Mutex
	rendered rendered
}

// New creates a controller for the form name with the given fields.
func New(name string, specs []FieldSpec, submitter Submitter, opts ...Option) (*Controller, error) {
	if submitter == nil {
		return nil, ErrNoSubmitter
	}

	c := &Controller{
		name:      name,
		id:        uuid.NewString(),
		cfg:       DefaultConfig(),
		hidden:    make(Values),
		submitter: submitter,
		presenter: NopPresenter{},
		observer:  nopObserver{},
		log:       slog.New(slog.DiscardHandler),
		clock:     clockwork.NewRealClock(),
		fields:    make(map[string]*field, len(specs)),
	}

	for _, spec := range specs {
		if spec.ID == "" {
			return nil, ErrEmptyFieldID
		}
		if _, ok := c.fields[spec.ID]; ok {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateField, spec.ID)
		}
		c.fields[spec.ID] = &field{spec: spec, remote: remoteState{status: StatusUnknown}}
		c.order = append(c.order, spec.ID)
	}

	for _, opt := range opts {
		opt(c)
	}

	c.log = c.log.With(logger.Component("form"), logger.Form(name), logger.FormInstance(c.id))
	c.ctx, c.cancel = context.WithCancel(context.Background())
	c.debouncer = debounce.New(c.cfg.DebounceDelay, debounce.WithClock(c.clock))
	c.machine = newSubmissionMachine(c.transitionHook)

	return c, nil
}

// Name returns the form name.
func (c *Controller) Name() string {
	return c.name
}

// Config returns the effective configuration.
func (c *Controller) Config() Config {
	return c.cfg
}

// SetValue records a new value for id. Local rules of every field are
// re-evaluated, and the field's remote result is discarded. A new remote
// check is scheduled only when the value is not blank and passes the local
// rules.
func (c *Controller) SetValue(id, value string) error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ErrClosed
	}
	f, ok := c.fields[id]
	if !ok {
		c.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrUnknownField, id)
	}

	f.value = value
	f.gen++
	f.serverError = ""
	f.remote = remoteState{status: StatusUnknown}

	values := c.valuesLocked()
	if f.spec.Remote != nil {
		if !c.wantsRemoteLocked(f, values) {
			c.debouncer.Cancel(id)
		} else if err := c.scheduleRemoteCheckLocked(f); err != nil {
			c.mu.Unlock()
			return err
		}
	}
	// An edit can make a sibling's local rules pass, and a check skipped
	// while they failed is owed now.
	for _, other := range c.orderedLocked() {
		if other == f || other.remote.pending || other.remote.status != StatusUnknown {
			continue
		}
		if c.wantsRemoteLocked(other, values) {
			if err := c.scheduleRemoteCheckLocked(other); err != nil {
				c.mu.Unlock()
				return err
			}
		}
	}
	c.mu.Unlock()

	c.render()
	return nil
}

// Blur runs a pending remote check for id without waiting for the debounce delay.
func (c *Controller) Blur(id string) error {
	if err := c.lookup(id); err != nil {
		return err
	}
	c.debouncer.Flush(id)
	return nil
}

// Revalidate re-evaluates every field and immediately checks every remote
// field whose value passes its local rules. It is used when a form is first
// shown.
func (c *Controller) Revalidate() error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ErrClosed
	}
	var scheduled []string
	values := c.valuesLocked()
	for _, id := range c.order {
		f := c.fields[id]
		if !c.wantsRemoteLocked(f, values) {
			continue
		}
		f.gen++
		f.remote = remoteState{status: StatusUnknown}
		if err := c.scheduleRemoteCheckLocked(f); err != nil {
			c.mu.Unlock()
			return err
		}
		scheduled = append(scheduled, id)
	}
	c.mu.Unlock()

	c.render()
	for _, id := range scheduled {
		c.debouncer.Flush(id)
	}
	return nil
}

// ValidateLocal runs the local rules of id against its current value.
func (c *Controller) ValidateLocal(id string) (Result, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	f, ok := c.fields[id]
	if !ok {
		return Result{}, fmt.Errorf("%w: %s", ErrUnknownField, id)
	}
	return ValidateLocal(f.spec, f.value, c.valuesLocked()), nil
}

// Submittable reports whether every field is valid and no check is pending.
func (c *Controller) Submittable() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.submittableLocked()
}

// Snapshot returns a consistent copy of the form state.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

// Close stops pending checks. Results that arrive later are ignored.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	c.cancel()
	c.debouncer.Stop()
}

func (c *Controller) lookup(id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return ErrClosed
	}
	if _, ok := c.fields[id]; !ok {
		return fmt.Errorf("%w: %s", ErrUnknownField, id)
	}
	return nil
}

func (c *Controller) scheduleRemoteCheckLocked(f *field) error {
	id, gen := f.spec.ID, f.gen
	if err := c.debouncer.Trigger(id, func() { c.runRemoteCheck(id, gen) }); err != nil {
		return err
	}
	f.remote.pending = true
	c.log.Debug("remote check scheduled", logger.Field(id))
	return nil
}

// runRemoteCheck sends the check scheduled for the given generation of id and
// resolves it asynchronously. A timer that fires just as an edit replaces it
// finds a newer generation and leaves the check to the newer run.
func (c *Controller) runRemoteCheck(id string, scheduled uint64) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	f := c.fields[id]
	if f.gen != scheduled {
		c.mu.Unlock()
		return
	}
	value, gen, check := f.value, f.gen, f.spec.Remote
	if !c.wantsRemoteLocked(f, c.valuesLocked()) {
		f.remote.pending = false
		c.mu.Unlock()
		c.render()
		return
	}
	c.mu.Unlock()

	ctx, cancel := context.WithTimeout(c.ctx, c.cfg.RemoteCheckTimeout)
	started := c.clock.Now()
	future := async.Async(ctx, value, check)
	async.Then(future, func(res Result, err error) {
		cancel()
		c.applyRemoteResult(id, gen, value, res, err, c.clock.Since(started))
	})
}

func (c *Controller) applyRemoteResult(id string, gen uint64, value string, res Result, err error, took time.Duration) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	f := c.fields[id]
	if f.gen != gen || f.value != value {
		c.mu.Unlock()
		c.observer.RemoteCheck(c.name, id, CheckStale, took)
		c.log.Debug("stale remote check discarded", logger.Field(id))
		return
	}

	f.remote.pending = false
	result := CheckValid
	switch {
	case err != nil:
		result = CheckError
		f.remote.status = StatusInvalid
		f.remote.message = firstNonEmpty(f.spec.RemoteErrorMessage, DefaultRemoteErrorMessage)
	case !res.Valid:
		result = CheckInvalid
		f.remote.status = StatusInvalid
		f.remote.message = firstNonEmpty(res.Message, f.spec.RemoteFailureMessage, "This value is not accepted.")
	default:
		f.remote.status = StatusValid
		f.remote.message = firstNonEmpty(res.Message, f.spec.RemoteSuccessMessage)
	}
	c.mu.Unlock()

	c.observer.RemoteCheck(c.name, id, result, took)
	if err != nil {
		c.log.Warn("remote check failed", logger.Field(id), logger.Error(err))
	}
	c.render()
}

func (c *Controller) valuesLocked() Values {
	values := make(Values, len(c.fields))
	for id, f := range c.fields {
		values[id] = f.value
	}
	return values
}

func (c *Controller) orderedLocked() []*field {
	out := make([]*field, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.fields[id])
	}
	return out
}

// wantsRemoteLocked reports whether f's value is worth sending to the
// server: it is not blank and passes every local rule.
func (c *Controller) wantsRemoteLocked(f *field, values Values) bool {
	if f.spec.Remote == nil || isBlank(f.value) {
		return false
	}
	res, _ := evaluate(f.spec, f.value, values)
	return res.Valid
}

func isBlank(v string) bool {
	return strings.TrimSpace(v) == ""
}

func (c *Controller) formDataLocked() Values {
	data := c.hidden.clone()
	for id, f := range c.fields {
		data[id] = f.value
	}
	return data
}

// active reports whether f takes part in validation. Required fields always
// do; optional ones once they or a member of their group are non-empty.
func (c *Controller) activeLocked(f *field) bool {
	if f.spec.Required || !isBlank(f.value) {
		return true
	}
	if f.spec.Group == "" {
		return false
	}
	for _, other := range c.fields {
		if other.spec.Group == f.spec.Group && !isBlank(other.value) {
			return true
		}
	}
	return false
}

func (c *Controller) viewLocked(f *field, values Values) FieldView {
	v := FieldView{
		ID:         f.spec.ID,
		Value:      f.value,
		Mode:       f.spec.Mode(),
		Generation: f.gen,
		Pending:    f.remote.pending,
	}
	local, checks := evaluate(f.spec, f.value, values)
	v.Checks = checks

	switch {
	case !c.activeLocked(f):
		v.Status = StatusValid
	case isBlank(f.value):
		v.Status = StatusUnknown
	case f.serverError != "":
		v.Status = StatusInvalid
		v.Feedback = Feedback{Visible: true, Message: f.serverError}
	case !local.Valid:
		v.Status = StatusInvalid
		v.Feedback = Feedback{Visible: true, Message: local.Message}
	case f.spec.Remote == nil:
		v.Status = StatusValid
	case f.remote.pending:
		v.Status = StatusUnknown
	default:
		v.Status = f.remote.status
		v.Feedback = Feedback{Visible: f.remote.message != "", Message: f.remote.message}
	}
	return v
}

func (c *Controller) submittableLocked() bool {
	if c.closed {
		return false
	}
	values := c.valuesLocked()
	for _, id := range c.order {
		v := c.viewLocked(c.fields[id], values)
		if v.Status != StatusValid || v.Pending {
			return false
		}
	}
	return true
}

func (c *Controller) snapshotLocked() Snapshot {
	values := c.valuesLocked()
	s := Snapshot{
		Form:   c.name,
		State:  SubmissionState(c.machine.Current().Name()),
		Order:  append([]string(nil), c.order...),
		Fields: make(map[string]FieldView, len(c.fields)),
	}
	s.SubmitEnabled = !c.closed && s.State != StateSubmitting
	for _, id := range c.order {
		f := c.fields[id]
		v := c.viewLocked(f, values)
		s.Fields[id] = v
		if f.spec.Required && isBlank(f.value) {
			s.MissingRequired = append(s.MissingRequired, id)
		}
		if v.Status != StatusValid || v.Pending {
			s.SubmitEnabled = false
		}
	}
	return s
}
