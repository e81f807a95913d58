package app

import (
	"io"
	"log/slog"
)

// newLogger builds the slog.Logger an App instance owns. It never touches the
// process-global logger, so tests and embedded engines stay isolated. An
// unparseable level falls back to info; the CLI layer rejects bad levels
// before they reach here, so the fallback only matters for library callers.
func newLogger(levelStr, formatStr string, outW io.Writer) *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(levelStr)); err != nil {
		level = slog.LevelInfo
	}

	handlerOpts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if formatStr == "json" {
		handler = slog.NewJSONHandler(outW, handlerOpts)
	} else {
		handler = slog.NewTextHandler(outW, handlerOpts)
	}
	return slog.New(handler)
}
