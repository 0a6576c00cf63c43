package formtest

import (
	"sync"

	"github.com/dmitrymomot/formflow/pkg/form"
)

// Call is one recorded presenter call.
type Call struct {
	Method  string
	Field   string
	Message string
	Status  form.Status
	Enabled bool
	Modal   form.Modal
	URL     string
}

// Presenter records every call and tracks what a page would currently show.
// It emulates a page where at most the modals in Open are visible.
type Presenter struct {
	mu       sync.Mutex
	calls    []Call
	open     []form.Modal
	status   map[string]form.Status
	inline   map[string]string
	enabled  bool
	banner   string
	navigate []string
}

var _ form.Presenter = (*Presenter)(nil)

func NewPresenter() *Presenter {
	return &Presenter{
		status: make(map[string]form.Status),
		inline: make(map[string]string),
	}
}

func (p *Presenter) record(c Call) {
	p.calls = append(p.calls, c)
}

func (p *Presenter) ShowModal(m form.Modal) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.record(Call{Method: "ShowModal", Modal: m})
	p.open = append(p.open, m)
}

func (p *Presenter) CloseModals() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.record(Call{Method: "CloseModals"})
	p.open = nil
}

func (p *Presenter) ShowInlineError(fieldID, message string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.record(Call{Method: "ShowInlineError", Field: fieldID, Message: message})
	if message == "" {
		delete(p.inline, fieldID)
		return
	}
	p.inline[fieldID] = message
}

func (p *Presenter) SetFieldStatus(fieldID string, status form.Status) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.record(Call{Method: "SetFieldStatus", Field: fieldID, Status: status})
	p.status[fieldID] = status
}

func (p *Presenter) SetSubmitEnabled(enabled bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.record(Call{Method: "SetSubmitEnabled", Enabled: enabled})
	p.enabled = enabled
}

func (p *Presenter) ShowBanner(message string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.record(Call{Method: "ShowBanner", Message: message})
	p.banner = message
}

func (p *Presenter) Navigate(url string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.record(Call{Method: "Navigate", URL: url})
	p.navigate = append(p.navigate, url)
}

// Open shows a modal as the page would before the form is used, for example
// the forgot-password dialog the form lives in.
func (p *Presenter) Open(id string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.open = append(p.open, form.Modal{ID: id})
}

// Dismiss closes the top-most modal as a user would, following its Dismiss
// instructions. It returns the dismissed modal.
func (p *Presenter) Dismiss() (form.Modal, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.open) == 0 {
		return form.Modal{}, false
	}
	top := p.open[len(p.open)-1]
	p.open = p.open[:len(p.open)-1]
	if top.Dismiss.Reopen != "" {
		p.open = append(p.open, form.Modal{ID: top.Dismiss.Reopen})
	}
	if top.Dismiss.RedirectURL != "" {
		p.navigate = append(p.navigate, top.Dismiss.RedirectURL)
	}
	return top, true
}

// Calls returns a copy of every recorded call.
func (p *Presenter) Calls() []Call {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]Call(nil), p.calls...)
}

// Methods returns the recorded method names, optionally filtered.
func (p *Presenter) Methods(only ...string) []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	keep := make(map[string]bool, len(only))
	for _, m := range only {
		keep[m] = true
	}
	var out []string
	for _, c := range p.calls {
		if len(keep) == 0 || keep[c.Method] {
			out = append(out, c.Method)
		}
	}
	return out
}

// OpenModals returns the IDs of visible modals, bottom first.
func (p *Presenter) OpenModals() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	ids := make([]string, 0, len(p.open))
	for _, m := range p.open {
		ids = append(ids, m.ID)
	}
	return ids
}

// TopModal returns the top-most visible modal.
func (p *Presenter) TopModal() (form.Modal, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.open) == 0 {
		return form.Modal{}, false
	}
	return p.open[len(p.open)-1], true
}

func (p *Presenter) FieldStatus(id string) form.Status {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.status[id]
}

// InlineError returns the inline message of a field, or the form-level
// message for an empty id.
func (p *Presenter) InlineError(id string) string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.inline[id]
}

func (p *Presenter) SubmitEnabled() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.enabled
}

func (p *Presenter) Banner() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.banner
}

func (p *Presenter) Navigations() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.navigate...)
}
