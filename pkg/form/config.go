package form

import (
	"time"

	"github.com/dmitrymomot/formflow/pkg/validator"
)

// Config holds the timing and policy knobs of a form controller.
type Config struct {
	DebounceDelay      time.Duration `env:"FORM_DEBOUNCE_DELAY" envDefault:"500ms"`     // Quiet period before a remote check fires
	RemoteCheckTimeout time.Duration `env:"FORM_REMOTE_CHECK_TIMEOUT" envDefault:"10s"` // Upper bound for one remote check
	SubmitTimeout      time.Duration `env:"FORM_SUBMIT_TIMEOUT" envDefault:"30s"`       // Upper bound for one submission
	PasswordMinLength  int           `env:"FORM_PASSWORD_MIN_LENGTH" envDefault:"10"`   // Minimum password length in characters
	SpecialChars       string        `env:"FORM_PASSWORD_SPECIAL_CHARS"`                // Overrides the default special character set
}

// DefaultConfig returns the configuration used when no Config is supplied.
func DefaultConfig() Config {
	return Config{
		DebounceDelay:      500 * time.Millisecond,
		RemoteCheckTimeout: 10 * time.Second,
		SubmitTimeout:      30 * time.Second,
		PasswordMinLength:  validator.DefaultPasswordMinLength,
		SpecialChars:       validator.DefaultSpecialChars,
	}
}

func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.DebounceDelay <= 0 {
		c.DebounceDelay = d.DebounceDelay
	}
	if c.RemoteCheckTimeout <= 0 {
		c.RemoteCheckTimeout = d.RemoteCheckTimeout
	}
	if c.SubmitTimeout <= 0 {
		c.SubmitTimeout = d.SubmitTimeout
	}
	if c.PasswordMinLength <= 0 {
		c.PasswordMinLength = d.PasswordMinLength
	}
	if c.SpecialChars == "" {
		c.SpecialChars = d.SpecialChars
	}
	return c
}

// PasswordPolicy returns the password requirements described by the config.
func (c Config) PasswordPolicy() validator.PasswordPolicy {
	c = c.withDefaults()
	return validator.PasswordPolicy{
		MinLength:    c.PasswordMinLength,
		SpecialChars: c.SpecialChars,
	}
}
