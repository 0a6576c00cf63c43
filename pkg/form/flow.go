package form

import "strings"

// DefaultFailureMessage is the banner text for server and network failures.
const DefaultFailureMessage = "An error occurred. Please try again."

// Notice describes how one outcome is presented. Title and Body may contain
// the placeholders {error}, {message} and {detail}.
type Notice struct {
	// Modal is the ID of the modal to open. An empty Modal means the notice
	// is shown inline (rejections) or as a banner (failures).
	Modal    string
	Title    string
	Body     string
	Fallback string
	// RedirectURL is followed when the modal is dismissed, or immediately
	// when no modal is configured.
	RedirectURL string
}

// Flow is the presentation policy of one form: which outcome opens which
// modal and where the user goes next.
type Flow struct {
	// HostModal is the modal the form itself lives in, if any. Account-state
	// modals reopen it on dismissal.
	HostModal       string
	Success         Notice
	Rejected        Notice
	AccountLocked   Notice
	EmailUnverified Notice
	Failure         Notice
}

// Dispatch performs exactly one presenter action sequence for o.
// Field-level errors are rendered by the controller, not here.
func (f Flow) Dispatch(p Presenter, o Outcome) {
	switch o.Kind {
	case OutcomeSuccess:
		f.success(p, o)
	case OutcomeValidationRejected:
		n := f.Rejected
		text := n.text(n.Body, o, firstNonEmpty(o.Error, o.Message))
		if n.Modal == "" {
			p.ShowInlineError("", text)
			return
		}
		p.CloseModals()
		p.ShowModal(Modal{
			ID:      n.Modal,
			Title:   expand(n.Title, o),
			Body:    text,
			Dismiss: Dismiss{RedirectURL: n.RedirectURL},
		})
	case OutcomeAccountLocked:
		f.accountState(p, f.AccountLocked, "account-locked", o)
	case OutcomeEmailUnverified:
		f.accountState(p, f.EmailUnverified, "email-unverified", o)
	default:
		n := f.Failure
		text := n.text(n.Body, o, "")
		if text == "" {
			text = DefaultFailureMessage
		}
		if n.Modal == "" {
			p.ShowBanner(text)
			return
		}
		p.CloseModals()
		p.ShowModal(Modal{
			ID:      n.Modal,
			Title:   expand(n.Title, o),
			Body:    text,
			Dismiss: Dismiss{RedirectURL: n.RedirectURL, Reopen: f.HostModal},
		})
	}
}

func (f Flow) success(p Presenter, o Outcome) {
	if o.RedirectURL != "" {
		p.Navigate(o.RedirectURL)
		return
	}
	n := f.Success
	if n.Modal == "" {
		if n.RedirectURL != "" {
			p.Navigate(n.RedirectURL)
		}
		return
	}
	p.CloseModals()
	p.ShowModal(Modal{
		ID:      n.Modal,
		Title:   expand(n.Title, o),
		Body:    n.text(n.Body, o, o.Message),
		Dismiss: Dismiss{RedirectURL: n.RedirectURL},
	})
}

// accountState opens a modal for a locked or unverified account. Any open
// modal is closed first so only one is visible.
func (f Flow) accountState(p Presenter, n Notice, defaultID string, o Outcome) {
	id := n.Modal
	if id == "" {
		id = defaultID
	}
	p.CloseModals()
	p.ShowModal(Modal{
		ID:    id,
		Title: expand(n.Title, o),
		Body:  n.text(n.Body, o, o.Message),
		HTML:  true,
		Dismiss: Dismiss{
			RedirectURL: n.RedirectURL,
			Reopen:      f.HostModal,
		},
	})
}

// text expands placeholders in tmpl. An empty template yields def, and an
// empty result yields the notice fallback.
func (n Notice) text(tmpl string, o Outcome, def string) string {
	out := def
	if tmpl != "" {
		out = expand(tmpl, o)
	}
	if strings.TrimSpace(out) == "" || (n.Fallback != "" && hasEmptyPlaceholder(tmpl, o)) {
		return n.Fallback
	}
	return out
}

func expand(tmpl string, o Outcome) string {
	if tmpl == "" {
		return ""
	}
	return strings.NewReplacer(
		"{error}", o.Error,
		"{message}", o.Message,
		"{detail}", o.Detail,
	).Replace(tmpl)
}

// hasEmptyPlaceholder reports whether tmpl references a value that is empty,
// which would leave a dangling sentence such as "Verification failed: ".
func hasEmptyPlaceholder(tmpl string, o Outcome) bool {
	return (strings.Contains(tmpl, "{error}") && o.Error == "") ||
		(strings.Contains(tmpl, "{message}") && o.Message == "") ||
		(strings.Contains(tmpl, "{detail}") && o.Detail == "")
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
