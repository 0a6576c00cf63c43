package main

import (
	"fmt"
	"log/slog"
	"strings"
)

type appConfig struct {
	Env      string `env:"APP_ENV" envDefault:"development"`
	Name     string `env:"APP_NAME" envDefault:"formflow"`
	LogLevel  string `env:"LOG_LEVEL"`  // Overrides the level implied by APP_ENV
	LogFormat string `env:"LOG_FORMAT"` // json or text; overrides APP_ENV too
}

func (c appConfig) level() (slog.Level, bool, error) {
	if c.LogLevel == "" {
		return 0, false, nil
	}
	var l slog.Level
	if err := l.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, false, fmt.Errorf("invalid LOG_LEVEL %q: %w", c.LogLevel, err)
	}
	return l, true, nil
}

// pairs collects repeatable name=value flags.
type pairs map[string]string

func (p pairs) String() string {
	parts := make([]string, 0, len(p))
	for k, v := range p {
		parts = append(parts, k+"="+v)
	}
	return strings.Join(parts, ",")
}

func (p pairs) Set(s string) error {
	name, value, ok := strings.Cut(s, "=")
	if !ok || name == "" {
		return fmt.Errorf("expected name=value, got %q", s)
	}
	p[name] = value
	return nil
}
