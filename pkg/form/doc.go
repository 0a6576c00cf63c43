// Package form implements the field validation and submission controller
// behind the account forms: login, signup, password reset and settings.
//
// A Controller is created per form instance from a list of FieldSpecs. Each
// field is validated by local Rules, by a debounced RemoteCheck, or by both.
// Every edit re-evaluates the local rules of all fields (so cross-field rules
// such as NotSimilarTo and EqualTo stay current), discards the field's
// previous remote result and reschedules its check. When the debounce timer
// fires, the check runs against the value held at that moment. Its result is
// applied only if the field still has the same generation and value, so a
// slow response for an older value can never overwrite a newer one. Remote
// errors mark the field invalid.
//
// The controller never touches markup. After every change it pushes the
// differences to a Presenter, and after a submission it hands the decoded
// Outcome to the form's Flow, which decides between modals, inline errors,
// banners and navigation.
//
// # Submission
//
// Submit is driven by a small state machine:
//
//	idle -> submitting -> succeeded | rejected | failed
//
// The transition out of idle is guarded by the aggregate validity, and only
// one submission can be in flight. A terminal state returns to idle when the
// user submits again; there are no automatic retries.
//
// # Usage
//
//	c, err := form.New("signup", []form.FieldSpec{
//	    {ID: "username", Required: true, Remote: checkUsername, RemoteFailureMessage: "Username already in use"},
//	    {ID: "password", Required: true, Rules: append(form.Password(policy), form.NotSimilarTo("username"))},
//	    {ID: "confirm_password", Required: true, Rules: []form.Rule{form.EqualTo("password")}},
//	}, submitter, form.WithPresenter(p), form.WithFlow(flow))
//	if err != nil {
//	    return err
//	}
//	defer c.Close()
//
//	_ = c.SetValue("username", "bob")
//	outcome, err := c.Submit(ctx)
//
// # Concurrency
//
// All methods are safe for concurrent use. Timer callbacks and remote results
// arrive on other goroutines; state is guarded by one mutex and presenter
// calls are serialised so the presenter sees state changes in order.
package form
