package formtest

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Request is a request received by the Backend.
type Request struct {
	Method string
	Path   string
	Form   url.Values
	Header http.Header
}

// Response describes how the Backend answers one request.
type Response struct {
	Status int
	// JSON is encoded as the body when set.
	JSON any
	// Body is written verbatim when JSON is nil.
	Body        string
	ContentType string
	// Location turns the response into a redirect.
	Location string
	Delay    time.Duration
}

// HandlerFunc computes a response from a recorded request.
type HandlerFunc func(Request) Response

// Backend is a fake account server for exercising forms end to end.
type Backend struct {
	server *httptest.Server
	router chi.Router

	mu       sync.Mutex
	requests []Request
}

// NewBackend starts a backend that is closed when the test ends.
func NewBackend(t testing.TB) *Backend {
	t.Helper()

	b := &Backend{router: chi.NewRouter()}
	b.router.Use(middleware.Recoverer)
	b.server = httptest.NewServer(b.router)
	t.Cleanup(b.server.Close)
	return b
}

// URL returns the base URL of the backend.
func (b *Backend) URL() string {
	return b.server.URL
}

// Client returns an HTTP client configured for the backend.
func (b *Backend) Client() *http.Client {
	return b.server.Client()
}

// Respond answers every POST to path with resp.
func (b *Backend) Respond(path string, resp Response) {
	b.Handle(path, func(Request) Response { return resp })
}

// Handle answers POSTs to path with the result of fn.
func (b *Backend) Handle(path string, fn HandlerFunc) {
	b.router.Post(path, func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		req := Request{
			Method: r.Method,
			Path:   r.URL.Path,
			Form:   r.PostForm,
			Header: r.Header.Clone(),
		}
		b.mu.Lock()
		b.requests = append(b.requests, req)
		b.mu.Unlock()

		resp := fn(req)
		if resp.Delay > 0 {
			select {
			case <-time.After(resp.Delay):
			case <-r.Context().Done():
				return
			}
		}
		write(w, resp)
	})
}

// Check answers remote field checks on path. The JSON object has a single
// key, result, set to accept(value of field).
func (b *Backend) Check(path, field, result string, accept func(string) bool) {
	b.Handle(path, func(r Request) Response {
		return Response{JSON: map[string]any{result: accept(r.Form.Get(field))}}
	})
}

// Requests returns the requests received on path.
func (b *Backend) Requests(path string) []Request {
	b.mu.Lock()
	defer b.mu.Unlock()
	var out []Request
	for _, r := range b.requests {
		if r.Path == path {
			out = append(out, r)
		}
	}
	return out
}

func write(w http.ResponseWriter, resp Response) {
	status := resp.Status
	if resp.Location != "" {
		if status == 0 {
			status = http.StatusFound
		}
		w.Header().Set("Location", resp.Location)
		w.WriteHeader(status)
		return
	}
	if status == 0 {
		status = http.StatusOK
	}

	if resp.JSON != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(resp.JSON)
		return
	}

	contentType := resp.ContentType
	if contentType == "" {
		contentType = "text/html; charset=utf-8"
	}
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(status)
	_, _ = w.Write([]byte(resp.Body))
}
