package logger

import (
	"log/slog"
	"time"
)

// Error returns an "error" attribute, or an empty one for a nil err so
// callers can pass it unconditionally.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

func Form(name string) slog.Attr { return slog.String("form", name) }

// FormInstance identifies one controller. Empty ids are dropped.
func FormInstance(id string) slog.Attr {
	if id == "" {
		return slog.Attr{}
	}
	return slog.String("form_instance", id)
}

func Field(id string) slog.Attr { return slog.String("field", id) }

// Outcome takes any string-backed kind so the form package keeps its own type.
func Outcome[K ~string](kind K) slog.Attr { return slog.String("outcome", string(kind)) }

// Transition renders a state change as "from->to".
func Transition(from, to string) slog.Attr {
	return slog.String("transition", from+"->"+to)
}

func RequestID(id string) slog.Attr { return slog.String("request_id", id) }

func Duration(d time.Duration) slog.Attr { return slog.Duration("duration", d) }

func Component(name string) slog.Attr { return slog.String("component", name) }

func URL(u string) slog.Attr { return slog.String("url", u) }
