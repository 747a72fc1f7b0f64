package daterr

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
)

// Level is the severity attached to a Record. The values line up with
// log/slog levels so the two convert and compare directly.
type Level = slog.Level

// Severities accepted by Config.MinLevel, lowest to highest.
const (
	LevelDebug    Level = slog.LevelDebug
	LevelInfo     Level = slog.LevelInfo
	LevelWarning  Level = slog.LevelWarn
	LevelError    Level = slog.LevelError
	LevelCritical Level = slog.LevelError + 4
)

// ErrBadLevel is returned by ParseLevel for names it does not know.
var ErrBadLevel = errors.New("unknown log level")

// ParseLevel turns a level name like "INFO" or "critical" into a Level.
// An empty name means LevelInfo. Unknown names return ErrBadLevel.
func ParseLevel(name string) (Level, error) {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case "DEBUG":
		return LevelDebug, nil
	case "INFO", "":
		return LevelInfo, nil
	case "WARNING", "WARN":
		return LevelWarning, nil
	case "ERROR":
		return LevelError, nil
	case "CRITICAL":
		return LevelCritical, nil
	default:
		return LevelInfo, fmt.Errorf("%w: %s", ErrBadLevel, name)
	}
}

// LevelName returns the canonical name for a Level. In-between values get
// the name of the highest severity they reach, matching ParseLevel.
func LevelName(level Level) string {
	switch {
	case level >= LevelCritical:
		return "CRITICAL"
	case level >= LevelError:
		return "ERROR"
	case level >= LevelWarning:
		return "WARNING"
	case level >= LevelInfo:
		return "INFO"
	default:
		return "DEBUG"
	}
}
