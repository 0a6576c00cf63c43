package form

// Dismiss says what happens when a modal is closed by the user.
type Dismiss struct {
	// RedirectURL is navigated to after dismissal.
	RedirectURL string
	// Reopen names a modal to show again after dismissal, so the user lands
	// back on the form they came from.
	Reopen string
}

// Modal describes a dialog to show.
type Modal struct {
	ID      string
	Title   string
	Body    string
	HTML    bool
	Dismiss Dismiss
}

// Presenter renders form state. The controller never touches markup and
// calls a Presenter from one goroutine at a time. Implementations must not
// call back into the controller synchronously.
type Presenter interface {
	ShowModal(m Modal)
	CloseModals()
	// ShowInlineError shows message next to the field. An empty fieldID
	// targets the form-level error slot and an empty message clears it.
	ShowInlineError(fieldID, message string)
	SetFieldStatus(fieldID string, status Status)
	SetSubmitEnabled(enabled bool)
	ShowBanner(message string)
	Navigate(url string)
}

// NopPresenter discards every call.
type NopPresenter struct{}

func (NopPresenter) ShowModal(Modal)                {}
func (NopPresenter) CloseModals()                   {}
func (NopPresenter) ShowInlineError(string, string) {}
func (NopPresenter) SetFieldStatus(string, Status)  {}
func (NopPresenter) SetSubmitEnabled(bool)          {}
func (NopPresenter) ShowBanner(string)              {}
func (NopPresenter) Navigate(string)                {}
