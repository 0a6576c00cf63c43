// Package formtest provides test doubles for driving forms end to end: a
// Presenter that records calls and tracks visible modals, and a Backend that
// serves canned account-server responses over HTTP.
//
//	backend := formtest.NewBackend(t)
//	backend.Respond("/login/", formtest.Response{JSON: map[string]any{
//	    "success": false, "account_locked": true, "message": "Account locked",
//	}})
//	presenter := formtest.NewPresenter()
package formtest
