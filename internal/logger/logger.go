// Package logger builds the process-wide zerolog logger from configuration.
// Request-scoped loggers travel in the context via zerolog's own
// Logger.WithContext and zerolog.Ctx.
package logger

import (
	"io"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Accepted values for the log_format setting.
const (
	FormatConsole = "console"
	FormatJSON    = "json"
)

// New returns a timestamped logger writing to w. The console format renders
// human-readable lines; anything else writes one JSON object per event.
func New(w io.Writer, level, format string) zerolog.Logger {
	if strings.EqualFold(format, FormatConsole) {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	}
	return zerolog.New(w).Level(ParseLevel(level)).With().Timestamp().Logger()
}

// ParseLevel maps a level name to a zerolog level. Empty or unknown names
// yield info.
func ParseLevel(level string) zerolog.Level {
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil || lvl == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return lvl
}

// ValidFormat reports whether format is a known log_format value.
func ValidFormat(format string) bool {
	switch strings.ToLower(format) {
	case FormatConsole, FormatJSON:
		return true
	}
	return false
}
