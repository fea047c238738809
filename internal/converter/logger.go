// =============================================================================
// SDE Types Converter - Logging
// =============================================================================
//
// The converter logs through the Logger interface. The CLI backs it with a
// log/slog text handler on stderr; debug level traces each pipeline stage.
//
// =============================================================================

package converter

import (
	"io"
	"log/slog"
	"strings"
)

// Logger is the logging surface the converter needs. *slog.Logger satisfies
// it directly; args are alternating key/value pairs.
type Logger interface {
	Debug(msg string, args ...interface{})
	Info(msg string, args ...interface{})
	Warn(msg string, args ...interface{})
	Error(msg string, args ...interface{})
}

// NewLogger returns a text logger writing to w at the named level
// ("debug", "info", "warn" or "error"). Unknown names fall back to info.
func NewLogger(w io.Writer, level string) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: parseLevel(level)}))
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// discardLogger is used when New is given a nil Logger.
var discardLogger Logger = slog.New(slog.DiscardHandler)
