// Package requestid provides helpers for request correlation identifiers
// (request IDs) on outgoing HTTP calls.
//
// Every submission and remote field check the form engine sends carries an
// "X-Request-ID" header, so server logs can be matched with client logs for
// the same user interaction.
//
// # Overview
//
//   - Transport is an http.RoundTripper that stamps each request with the ID
//     stored in its context, generating a UUIDv4 when there is none. A valid
//     header already present on the request is kept.
//
//   - Context helpers WithContext, FromContext and Ensure store and extract
//     request IDs from a context.Context.
//
//   - LoggerExtractor plugs into the logger package so the request ID is added
//     to log records automatically.
//
// # Usage
//
//	client := &http.Client{Transport: requestid.NewTransport(http.DefaultTransport)}
//
//	ctx, id := requestid.Ensure(ctx)
//	req, _ := http.NewRequestWithContext(ctx, http.MethodPost, url, body)
//	resp, err := client.Do(req) // sent with X-Request-ID: id
//
// # Logger integration
//
//	log := logger.New(logger.WithContextExtractors(requestid.LoggerExtractor()))
//
// # Error Handling
//
// The package does not return errors. Invalid or empty request IDs are
// silently replaced by a freshly generated UUID.
package requestid
