package daterr

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
)

// attrTimeFormat is how the record time is rendered at the head of a line.
const attrTimeFormat = "2006-01-02 15:04:05"

// Handler adapts a Logger into a log/slog sink. Each record is rendered as
// one text line ("time [LEVEL] msg key=value ...") and handed to Emit.
// Levels below the Logger's minimum are refused up front in Enabled, so
// slog never even builds those records.
type Handler struct {
	logger *Logger
	attrs  []slog.Attr // pre-rendered keys, already group-qualified.
	groups []string
}

// NewHandler wraps an existing Logger for use with slog.New.
func NewHandler(logger *Logger) *Handler {
	return &Handler{logger: logger}
}

// Enabled reports whether the wrapped Logger would accept the level.
func (h *Handler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.logger.config.MinLevel
}

// Handle renders the record and emits it to the current bucket's file.
// It never returns an error; write failures go to the Logger's OnError hook.
func (h *Handler) Handle(_ context.Context, record slog.Record) error {
	var line strings.Builder

	line.WriteString(record.Time.Format(attrTimeFormat))
	line.WriteString(" [")
	line.WriteString(LevelName(record.Level))
	line.WriteString("] ")
	line.WriteString(record.Message)

	for _, attr := range h.attrs {
		writeAttr(&line, attr.Key, attr)
	}

	record.Attrs(func(attr slog.Attr) bool {
		writeAttr(&line, h.key(attr.Key), attr)
		return true
	})

	h.logger.Emit(Record{Time: record.Time, Level: record.Level, Message: line.String()})

	return nil
}

// WithAttrs returns a Handler that stamps attrs onto every record.
func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	clone := *h
	clone.attrs = append([]slog.Attr{}, h.attrs...)

	for _, attr := range attrs {
		attr.Key = h.key(attr.Key)
		clone.attrs = append(clone.attrs, attr)
	}

	return &clone
}

// WithGroup returns a Handler that qualifies later attr keys with name.
func (h *Handler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}

	clone := *h
	clone.groups = append(append([]string{}, h.groups...), name)

	return &clone
}

// key qualifies an attr key with the open group names, dot-joined.
func (h *Handler) key(key string) string {
	if len(h.groups) == 0 {
		return key
	}

	return strings.Join(h.groups, ".") + "." + key
}

// writeAttr appends one " key=value" pair to the line. Empty attrs are
// skipped per the slog.Handler contract.
func writeAttr(line *strings.Builder, key string, attr slog.Attr) {
	if attr.Equal(slog.Attr{}) {
		return
	}

	fmt.Fprintf(line, " %s=%v", key, attr.Value.Resolve())
}

// Our Handler must satisfy a slog.Handler.
var _ slog.Handler = (*Handler)(nil)
