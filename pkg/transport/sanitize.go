package transport

import (
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	messagePolicyOnce sync.Once
	messagePolicy     *bluemonday.Policy
)

// SanitizeHTML strips markup from server messages that is unsafe to render,
// keeping simple formatting and links.
func SanitizeHTML(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	messagePolicyOnce.Do(func() {
		messagePolicy = bluemonday.UGCPolicy()
	})
	return strings.TrimSpace(messagePolicy.Sanitize(trimmed))
}
