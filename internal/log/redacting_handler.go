package log

import (
	"context"
	"log/slog"
)

// sensitiveFields never reach the underlying writer in cleartext. The
// set is specific to this helper's own record shapes rather than the
// generic secret/password/token set a general-purpose vault would use.
var sensitiveFields = map[string]struct{}{
	"challenge_bytes":  {},
	"public_key_cose":  {},
	"sign_counter_raw": {},
	"server_state":     {},
	"client_data_json": {},
}

// RedactingHandler wraps another slog.Handler, replacing the value of
// any attribute whose key is in sensitiveFields with "[REDACTED]"
// before it reaches inner. A panic while formatting an attribute is
// recovered and logged as a redacted fallback record rather than
// crashing the process.
type RedactingHandler struct {
	inner slog.Handler
}

func NewRedactingHandler(inner slog.Handler) *RedactingHandler {
	return &RedactingHandler{inner: inner}
}

func (h *RedactingHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.inner.Enabled(ctx, level)
}

func (h *RedactingHandler) Handle(ctx context.Context, record slog.Record) (err error) {
	defer func() {
		if r := recover(); r != nil {
			fallback := slog.NewRecord(record.Time, slog.LevelError, "redaction handler panic recovered", record.PC)
			fallback.AddAttrs(slog.String("panic", "[REDACTED]"))
			err = h.inner.Handle(ctx, fallback)
		}
	}()

	redacted := slog.NewRecord(record.Time, record.Level, record.Message, record.PC)
	record.Attrs(func(attr slog.Attr) bool {
		redacted.AddAttrs(redactAttr(attr))
		return true
	})
	return h.inner.Handle(ctx, redacted)
}

func (h *RedactingHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	redacted := make([]slog.Attr, 0, len(attrs))
	for _, attr := range attrs {
		redacted = append(redacted, redactAttr(attr))
	}
	return &RedactingHandler{inner: h.inner.WithAttrs(redacted)}
}

func (h *RedactingHandler) WithGroup(name string) slog.Handler {
	return &RedactingHandler{inner: h.inner.WithGroup(name)}
}

func redactAttr(attr slog.Attr) slog.Attr {
	if _, sensitive := sensitiveFields[attr.Key]; sensitive {
		return slog.String(attr.Key, "[REDACTED]")
	}
	return attr
}
