// Package transport is the HTTP side of the form engine. It posts form data
// to the account server, decodes the JSON response into a form.Outcome and
// runs remote field checks such as username availability.
//
// Every request is a form-encoded POST with "X-Requested-With:
// XMLHttpRequest", "Accept: application/json" and an X-Request-ID header.
// Redirects are not followed: a 3xx response with a Location becomes a
// successful outcome whose RedirectURL the presenter should navigate to.
//
// Response decoding fails closed. A body that is not a JSON object, lacks
// the success flag, or comes with an unexpected status is a network error;
// 5xx responses are server errors. Messages attached to account-state
// outcomes are HTML and are sanitised with bluemonday's UGC policy before
// they reach a presenter.
//
// Each call is wrapped in an OpenTelemetry client span. Configure the tracer
// provider with WithTracerProvider; the global provider is used otherwise.
//
//	client, err := transport.New(transport.Config{BaseURL: "https://example.com", Timeout: 30 * time.Second})
//	if err != nil {
//	    return err
//	}
//	checkUsername := client.RemoteCheck(transport.CheckSpec{
//	    Endpoint: "/signup/", Marker: "check_username", Field: "username", Result: "available",
//	})
//	c, err := form.New("signup", specs, client.Submitter("/signup/"))
package transport
