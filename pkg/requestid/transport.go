package requestid

import (
	"context"
	"net/http"
	"regexp"

	"github.com/google/uuid"
)

const (
	Header      = "X-Request-ID"
	maxIDLength = 128
	idPattern   = "^[a-zA-Z0-9_-]+$"
)

var validIDRegex = regexp.MustCompile(idPattern)

// Ensure returns ctx unchanged when it carries a valid request ID, or a child
// context carrying a new one.
func Ensure(ctx context.Context) (context.Context, string) {
	if id := FromContext(ctx); isValidRequestID(id) {
		return ctx, id
	}
	if ctx == nil {
		ctx = context.Background()
	}
	id := uuid.NewString()
	return WithContext(ctx, id), id
}

// Transport stamps every outgoing request with an X-Request-ID header taken
// from the request context, or a new UUID when the context carries none.
// A header already set on the request is kept if valid.
type Transport struct {
	Next http.RoundTripper
}

// NewTransport wraps next, or http.DefaultTransport when next is nil.
func NewTransport(next http.RoundTripper) *Transport {
	return &Transport{Next: next}
}

func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	next := t.Next
	if next == nil {
		next = http.DefaultTransport
	}

	if isValidRequestID(req.Header.Get(Header)) {
		return next.RoundTrip(req)
	}

	// RoundTrippers must not modify the caller's request.
	ctx, id := Ensure(req.Context())
	r := req.Clone(ctx)
	r.Header.Set(Header, id)
	return next.RoundTrip(r)
}

func isValidRequestID(id string) bool {
	if len(id) == 0 || len(id) > maxIDLength {
		return false
	}
	return validIDRegex.MatchString(id)
}
