// Package forms holds declarative definitions of the account forms and turns
// them into live form controllers.
//
// A definition lists the fields of a form with their local rules and remote
// checks, the action it posts to, and how each submission outcome is
// presented. Definitions are YAML:
//
//	forms:
//	  signup:
//	    action: /signup/
//	    fields:
//	      - id: username
//	        required: true
//	        remote: {marker: check_username, result: available, message: Username already in use}
//	      - id: password
//	        required: true
//	        rules: [password, {not_similar_to: username}]
//	    flow:
//	      success: {modal: signupModal, title: Welcome, redirect: /login/}
//
// Rule names are required, min_length, uppercase, digit, special, password,
// not_similar_to, equals and not_contains. Every rule accepts a message
// override except password, which expands into the four password rules of
// the configured policy.
//
// Default returns the built-in catalog (login, signup, forgot_password,
// reset_password, settings, verify_email). Paths may contain {param}
// placeholders that are filled at build time:
//
//	def, _ := forms.Default().Get("reset_password")
//	ctrl, err := def.Build(forms.Deps{
//	    Client:    client,
//	    Params:    map[string]string{"token": token},
//	    Hidden:    form.Values{"csrfmiddlewaretoken": csrf},
//	    Presenter: presenter,
//	})
package forms
