package environment

import (
	"context"
	"log/slog"
)

type ctxKey struct{}

// WithContext returns a child of ctx carrying env.
func WithContext(ctx context.Context, env Environment) context.Context {
	return context.WithValue(ctx, ctxKey{}, env)
}

// FromContext returns the environment carried by ctx, or "" when there is none.
func FromContext(ctx context.Context) Environment {
	if ctx == nil {
		return ""
	}
	env, _ := ctx.Value(ctxKey{}).(Environment)
	return env
}

// LoggerExtractor adds an "env" attribute to records logged with a context
// that carries an environment. Its signature matches logger.ContextExtractor.
func LoggerExtractor() func(context.Context) (slog.Attr, bool) {
	return func(ctx context.Context) (slog.Attr, bool) {
		env := FromContext(ctx)
		if env == "" {
			return slog.Attr{}, false
		}
		return slog.String("env", env.String()), true
	}
}
