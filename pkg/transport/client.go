package transport

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/dmitrymomot/formflow/pkg/form"
	"github.com/dmitrymomot/formflow/pkg/logger"
	"github.com/dmitrymomot/formflow/pkg/requestid"
)

const (
	tracerName   = "github.com/dmitrymomot/formflow/pkg/transport"
	maxBodyBytes = 1 << 20
)

// Client talks to the account server: it posts forms and runs remote field checks.
type Client struct {
	base      *url.URL
	http      *http.Client
	userAgent string
	tracer    trace.Tracer
	log       *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets the underlying HTTP client. Its redirect policy is
// replaced so redirects are reported instead of followed, and its transport
// is wrapped to send request IDs.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			cp := *hc
			c.http = &cp
		}
	}
}

func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(c *Client) {
		if tp != nil {
			c.tracer = tp.Tracer(tracerName)
		}
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.log = l
		}
	}
}

// New creates a client for the server at cfg.BaseURL.
func New(cfg Config, opts ...Option) (*Client, error) {
	base, err := url.Parse(cfg.BaseURL)
	if err != nil || base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("%w: %q", ErrInvalidBaseURL, cfg.BaseURL)
	}

	c := &Client{
		base:      base,
		http:      &http.Client{Timeout: cfg.Timeout},
		userAgent: cfg.UserAgent,
		tracer:    otel.GetTracerProvider().Tracer(tracerName),
		log:       slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.http.Timeout == 0 {
		c.http.Timeout = cfg.Timeout
	}
	c.http.Transport = requestid.NewTransport(c.http.Transport)
	c.http.CheckRedirect = func(*http.Request, []*http.Request) error {
		return http.ErrUseLastResponse
	}
	c.log = c.log.With(logger.Component("transport"))

	return c, nil
}

// BaseURL returns the server origin.
func (c *Client) BaseURL() string {
	return c.base.String()
}

// Submit posts data to action and decodes the response. Transport failures
// are reported as network-error outcomes; the error is only set when action
// cannot be resolved.
func (c *Client) Submit(ctx context.Context, action string, data form.Values) (form.Outcome, error) {
	target, err := c.resolve(action)
	if err != nil {
		return form.Outcome{}, err
	}

	ctx, span := c.tracer.Start(ctx, "formflow.submit",
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("http.method", http.MethodPost),
			attribute.String("http.url", target.String()),
		),
	)
	defer span.End()

	started := time.Now()
	status, header, body, finalURL, err := c.post(ctx, target, encode(data))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		c.log.WarnContext(ctx, "submission request failed", logger.URL(target.String()), logger.Error(err))
		detail := err.Error()
		if errors.Is(err, context.DeadlineExceeded) {
			detail = "request timed out"
		}
		return form.Outcome{Kind: form.OutcomeNetworkError, Detail: detail}, nil
	}

	outcome := DecodeSubmit(status, header, body, finalURL)
	span.SetAttributes(
		attribute.Int("http.status_code", status),
		attribute.String("formflow.outcome", string(outcome.Kind)),
	)
	switch outcome.Kind {
	case form.OutcomeServerError, form.OutcomeNetworkError:
		span.SetStatus(codes.Error, outcome.Detail)
	default:
		span.SetStatus(codes.Ok, "")
	}
	c.log.DebugContext(ctx, "submission response",
		logger.URL(target.String()),
		logger.Outcome(outcome.Kind),
		logger.Duration(time.Since(started)),
	)
	return outcome, nil
}

// Submitter binds action to a form.Submitter.
func (c *Client) Submitter(action string) form.Submitter {
	return form.SubmitterFunc(func(ctx context.Context, data form.Values) (form.Outcome, error) {
		return c.Submit(ctx, action, data)
	})
}

// CheckSpec describes a remote field check: a POST to Endpoint carrying the
// value under Field plus Marker=true, answered with a JSON object whose
// Result key holds a boolean.
type CheckSpec struct {
	Endpoint string
	Marker   string
	Field    string
	Result   string
	// Extra is sent with every check, for example a CSRF token.
	Extra form.Values
}

// Check runs spec for value.
func (c *Client) Check(ctx context.Context, spec CheckSpec, value string) (form.Result, error) {
	target, err := c.resolve(spec.Endpoint)
	if err != nil {
		return form.Result{}, err
	}

	data := make(form.Values, len(spec.Extra)+2)
	for k, v := range spec.Extra {
		data[k] = v
	}
	if spec.Marker != "" {
		data[spec.Marker] = "true"
	}
	data[spec.Field] = value

	ctx, span := c.tracer.Start(ctx, "formflow.check",
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("http.url", target.String()),
			attribute.String("formflow.field", spec.Field),
		),
	)
	defer span.End()

	status, _, body, _, err := c.post(ctx, target, encode(data))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return form.Result{}, fmt.Errorf("%w: %w", ErrCheckFailed, err)
	}
	span.SetAttributes(attribute.Int("http.status_code", status))

	res, err := DecodeCheck(status, body, spec.Result)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return form.Result{}, err
	}
	span.SetAttributes(attribute.Bool("formflow.valid", res.Valid))
	span.SetStatus(codes.Ok, "")
	return res, nil
}

// RemoteCheck binds spec to a form.RemoteCheck.
func (c *Client) RemoteCheck(spec CheckSpec) form.RemoteCheck {
	return func(ctx context.Context, value string) (form.Result, error) {
		return c.Check(ctx, spec, value)
	}
}

func (c *Client) post(ctx context.Context, target *url.URL, body string) (int, http.Header, []byte, *url.URL, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, target.String(), strings.NewReader(body))
	if err != nil {
		return 0, nil, nil, nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Requested-With", "XMLHttpRequest")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
	if id := requestid.FromContext(ctx); id != "" {
		req.Header.Set(requestid.Header, id)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, nil, nil, nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return 0, nil, nil, nil, err
	}
	return resp.StatusCode, resp.Header, data, resp.Request.URL, nil
}

func (c *Client) resolve(ref string) (*url.URL, error) {
	if strings.TrimSpace(ref) == "" {
		return nil, ErrInvalidAction
	}
	u, err := url.Parse(ref)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidAction, ref)
	}
	return c.base.ResolveReference(u), nil
}

func encode(data form.Values) string {
	v := make(url.Values, len(data))
	for k, val := range data {
		v.Set(k, val)
	}
	return v.Encode()
}
