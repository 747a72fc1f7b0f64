package logconf

import (
	"context"
	"log/slog"
)

// fanout dispatches each record to every wrapped handler.
type fanout []slog.Handler

// Enabled is true if any wrapped handler wants the level.
func (f fanout) Enabled(ctx context.Context, level slog.Level) bool {
	for _, handler := range f {
		if handler.Enabled(ctx, level) {
			return true
		}
	}

	return false
}

// Handle passes the record to every interested handler. The first error
// wins, but every handler still gets its copy.
func (f fanout) Handle(ctx context.Context, record slog.Record) error {
	var firstErr error

	for _, handler := range f {
		if !handler.Enabled(ctx, record.Level) {
			continue
		}

		if err := handler.Handle(ctx, record.Clone()); err != nil && firstErr == nil {
			firstErr = err
		}
	}

	return firstErr
}

// WithAttrs applies attrs to every wrapped handler.
func (f fanout) WithAttrs(attrs []slog.Attr) slog.Handler {
	out := make(fanout, len(f))
	for idx, handler := range f {
		out[idx] = handler.WithAttrs(attrs)
	}

	return out
}

// WithGroup applies the group to every wrapped handler.
func (f fanout) WithGroup(name string) slog.Handler {
	out := make(fanout, len(f))
	for idx, handler := range f {
		out[idx] = handler.WithGroup(name)
	}

	return out
}

// Our fanout must satisfy a slog.Handler.
var _ slog.Handler = (fanout)(nil)
