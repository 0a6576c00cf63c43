package transport

import "time"

// Config configures the HTTP client used for submissions and remote checks.
type Config struct {
	BaseURL   string        `env:"FORMFLOW_BASE_URL" envDefault:"http://localhost:8000"` // Account server origin
	Timeout   time.Duration `env:"FORMFLOW_HTTP_TIMEOUT" envDefault:"30s"`               // Per-request upper bound
	UserAgent string        `env:"FORMFLOW_USER_AGENT" envDefault:"formflow/1.0"`        // Sent with every request
}
