package transport

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/dmitrymomot/formflow/pkg/form"
)

// submitResponse is the JSON contract of the account endpoints.
type submitResponse struct {
	Success          *bool                      `json:"success"`
	Error            string                     `json:"error"`
	Errors           map[string]json.RawMessage `json:"errors"`
	Message          string                     `json:"message"`
	AccountLocked    bool                       `json:"account_locked"`
	EmailNotVerified bool                       `json:"email_not_verified"`
}

// DecodeSubmit turns a submission response into an Outcome. Anything it does
// not recognise is a network error, so a broken server never looks like success.
func DecodeSubmit(status int, header http.Header, body []byte, requestURL *url.URL) form.Outcome {
	switch {
	case status >= 300 && status < 400:
		loc := header.Get("Location")
		if loc == "" {
			return networkError(status, "redirect without location")
		}
		return form.Outcome{Kind: form.OutcomeSuccess, RedirectURL: resolve(requestURL, loc), StatusCode: status}
	case status >= 500:
		return form.Outcome{Kind: form.OutcomeServerError, Detail: http.StatusText(status), StatusCode: status}
	case status < 200 || status >= 300:
		return networkError(status, http.StatusText(status))
	}

	var resp submitResponse
	if err := decodeObject(body, &resp); err != nil {
		return networkError(status, err.Error())
	}

	switch {
	case resp.AccountLocked:
		return form.Outcome{Kind: form.OutcomeAccountLocked, Message: SanitizeHTML(resp.Message), StatusCode: status}
	case resp.EmailNotVerified:
		return form.Outcome{Kind: form.OutcomeEmailUnverified, Message: SanitizeHTML(resp.Message), StatusCode: status}
	case resp.Success == nil:
		return networkError(status, "response has no success flag")
	case *resp.Success:
		return form.Outcome{Kind: form.OutcomeSuccess, Message: resp.Message, StatusCode: status}
	default:
		return form.Outcome{
			Kind:        form.OutcomeValidationRejected,
			Error:       resp.Error,
			Message:     resp.Message,
			FieldErrors: fieldErrors(resp.Errors),
			StatusCode:  status,
		}
	}
}

// checkResponse is the JSON contract of remote field checks.
type checkResponse map[string]json.RawMessage

// DecodeCheck reads the boolean result stored under key. A missing key or a
// non-boolean value is an error.
func DecodeCheck(status int, body []byte, key string) (form.Result, error) {
	if status < 200 || status >= 300 {
		return form.Result{}, fmt.Errorf("%w: status %d", ErrCheckFailed, status)
	}

	var resp checkResponse
	if err := decodeObject(body, &resp); err != nil {
		return form.Result{}, err
	}

	raw, ok := resp[key]
	if !ok {
		return form.Result{}, fmt.Errorf("%w: %q", ErrMissingResultKey, key)
	}
	var valid bool
	if err := json.Unmarshal(raw, &valid); err != nil {
		return form.Result{}, fmt.Errorf("%w: %q is not a boolean", ErrUnexpectedResponse, key)
	}

	var message *string
	if rawErr, ok := resp["error"]; ok {
		if err := json.Unmarshal(rawErr, &message); err != nil {
			return form.Result{}, fmt.Errorf("%w: error is not a string", ErrUnexpectedResponse)
		}
	}
	res := form.Result{Valid: valid}
	if message != nil {
		res.Message = *message
	}
	return res, nil
}

func decodeObject(body []byte, v any) error {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return fmt.Errorf("%w: body is not a JSON object", ErrUnexpectedResponse)
	}
	if err := json.Unmarshal(trimmed, v); err != nil {
		return fmt.Errorf("%w: %v", ErrUnexpectedResponse, err)
	}
	return nil
}

// fieldErrors accepts either "field": "message" or "field": ["message", ...].
func fieldErrors(raw map[string]json.RawMessage) map[string]string {
	if len(raw) == 0 {
		return nil
	}
	out := make(map[string]string, len(raw))
	for field, value := range raw {
		var msg string
		if err := json.Unmarshal(value, &msg); err == nil {
			out[field] = msg
			continue
		}
		var list []string
		if err := json.Unmarshal(value, &list); err == nil && len(list) > 0 {
			out[field] = list[0]
		}
	}
	return out
}

func networkError(status int, detail string) form.Outcome {
	return form.Outcome{Kind: form.OutcomeNetworkError, Detail: detail, StatusCode: status}
}

func resolve(base *url.URL, loc string) string {
	ref, err := url.Parse(loc)
	if err != nil || base == nil {
		return loc
	}
	return base.ResolveReference(ref).String()
}
