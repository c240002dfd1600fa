package log

import (
	"io"
	"log/slog"
)

// New builds the process-wide diagnostic logger: JSON lines to w
// (standard error in production), wrapped in the redacting handler so
// challenge and credential secret material never reaches a log line.
func New(w io.Writer, level slog.Level) *slog.Logger {
	base := slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})
	return slog.New(NewRedactingHandler(base))
}
