package form

import (
	"log/slog"

	"github.com/jonboulle/clockwork"
)

// Option configures a Controller.
type Option func(*Controller)

// WithConfig sets timing and password policy. Zero fields keep their defaults.
func WithConfig(cfg Config) Option {
	return func(c *Controller) {
		c.cfg = cfg.withDefaults()
	}
}

func WithPresenter(p Presenter) Option {
	return func(c *Controller) {
		if p != nil {
			c.presenter = p
		}
	}
}

// WithFlow sets how submission outcomes are presented.
func WithFlow(f Flow) Option {
	return func(c *Controller) {
		c.flow = f
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(c *Controller) {
		if l != nil {
			c.log = l
		}
	}
}

func WithObserver(o Observer) Option {
	return func(c *Controller) {
		if o != nil {
			c.observer = o
		}
	}
}

// WithClock replaces the clock driving debounce timers, mainly for tests.
func WithClock(clock clockwork.Clock) Option {
	return func(c *Controller) {
		if clock != nil {
			c.clock = clock
		}
	}
}

// WithHidden adds static values sent with every submission, such as a CSRF token.
func WithHidden(values Values) Option {
	return func(c *Controller) {
		for k, v := range values {
			c.hidden[k] = v
		}
	}
}
