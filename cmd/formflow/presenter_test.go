package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/formflow/pkg/form"
)

func TestTerminalPresenter(t *testing.T) {
	t.Parallel()

	t.Run("html modal is printed as text", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		p := newTerminalPresenter(&buf, nil)

		p.ShowModal(form.Modal{
			ID:      "emailVerificationModal",
			Title:   "Account Locked",
			Body:    `<p>Check your inbox &amp; <a href="/resend/">resend</a></p><script>alert(1)</script>`,
			HTML:    true,
			Dismiss: form.Dismiss{Reopen: "forgotPasswordModal"},
		})
		p.finish()

		out := buf.String()
		assert.Contains(t, out, "┌ Account Locked")
		assert.Contains(t, out, "│ Check your inbox & resend")
		assert.NotContains(t, out, "<a")
		assert.NotContains(t, out, "alert")
		assert.Contains(t, out, "→ back to forgotPasswordModal")
	})

	t.Run("modal without title uses its id", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		p := newTerminalPresenter(&buf, nil)

		p.ShowModal(form.Modal{ID: "verifyModal", Body: "Done", Dismiss: form.Dismiss{RedirectURL: "/login/"}})
		p.CloseModals()
		p.finish()

		assert.Contains(t, buf.String(), "┌ verifyModal")
		assert.NotContains(t, buf.String(), "continue at")
	})

	t.Run("inline errors use labels", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		p := newTerminalPresenter(&buf, map[string]string{"username": "Username"})

		p.ShowInlineError("username", "Username already in use")
		p.ShowInlineError("email", "Invalid email format")
		p.ShowInlineError("", "Invalid username, email, or password.")
		p.ShowInlineError("username", "")

		assert.Equal(t,
			"  ✗ Username: Username already in use\n"+
				"  ✗ email: Invalid email format\n"+
				"  ! Invalid username, email, or password.\n",
			buf.String())
	})

	t.Run("banner and navigation", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		p := newTerminalPresenter(&buf, nil)

		p.ShowBanner("An error occurred during login. Please try again.")
		p.Navigate("/dashboard/")

		assert.Equal(t, "\n! An error occurred during login. Please try again.\n→ continue at /dashboard/\n", buf.String())
	})
}
