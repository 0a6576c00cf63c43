// Package formflow is the root of the account form engine.
//
// The engine lives in pkg/form: field specs, local rules, debounced remote
// checks, the submission state machine and outcome presentation. pkg/forms
// declares the built-in account forms (login, signup, password reset, email
// verification, settings) and pkg/transport speaks the server's form-encoded
// POST protocol. cmd/formflow drives any of those forms from a terminal.
package formflow
