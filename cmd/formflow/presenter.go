package main

import (
	"fmt"
	"html"
	"io"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"

	"github.com/dmitrymomot/formflow/pkg/form"
)

// terminalPresenter prints what a page would show. Modals become framed
// blocks and HTML bodies are reduced to plain text.
type terminalPresenter struct {
	mu      sync.Mutex
	w       io.Writer
	labels  map[string]string
	text    *bluemonday.Policy
	dismiss *form.Dismiss
}

var _ form.Presenter = (*terminalPresenter)(nil)

func newTerminalPresenter(w io.Writer, labels map[string]string) *terminalPresenter {
	return &terminalPresenter{
		w:      w,
		labels: labels,
		text:   bluemonday.StrictPolicy(),
	}
}

func (p *terminalPresenter) ShowModal(m form.Modal) {
	p.mu.Lock()
	defer p.mu.Unlock()

	body := m.Body
	if m.HTML {
		body = html.UnescapeString(p.text.Sanitize(body))
	}
	title := m.Title
	if title == "" {
		title = m.ID
	}
	fmt.Fprintf(p.w, "\n┌ %s\n", title)
	for _, line := range strings.Split(strings.TrimSpace(body), "\n") {
		fmt.Fprintf(p.w, "│ %s\n", line)
	}
	fmt.Fprintln(p.w, "└")
	d := m.Dismiss
	p.dismiss = &d
}

func (p *terminalPresenter) CloseModals() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.dismiss = nil
}

func (p *terminalPresenter) ShowInlineError(fieldID, message string) {
	if message == "" {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if fieldID == "" {
		fmt.Fprintf(p.w, "  ! %s\n", message)
		return
	}
	fmt.Fprintf(p.w, "  ✗ %s: %s\n", p.label(fieldID), message)
}

// SetFieldStatus is a no-op: the driver reports each field once it settles.
func (p *terminalPresenter) SetFieldStatus(string, form.Status) {}

func (p *terminalPresenter) SetSubmitEnabled(bool) {}

func (p *terminalPresenter) ShowBanner(message string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	fmt.Fprintf(p.w, "\n! %s\n", message)
}

func (p *terminalPresenter) Navigate(url string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	fmt.Fprintf(p.w, "→ continue at %s\n", url)
}

// finish prints where the user lands once the last modal is closed.
func (p *terminalPresenter) finish() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.dismiss == nil {
		return
	}
	switch {
	case p.dismiss.RedirectURL != "":
		fmt.Fprintf(p.w, "→ continue at %s\n", p.dismiss.RedirectURL)
	case p.dismiss.Reopen != "":
		fmt.Fprintf(p.w, "→ back to %s\n", p.dismiss.Reopen)
	}
	p.dismiss = nil
}

func (p *terminalPresenter) label(id string) string {
	if l := p.labels[id]; l != "" {
		return l
	}
	return id
}
