package log

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRedactionChallengeBytesField(t *testing.T) {
	t.Parallel()
	out := logField(t, "challenge_bytes", "YWJjZGVm")
	require.Equal(t, "[REDACTED]", out["challenge_bytes"])
}

func TestRedactionPublicKeyField(t *testing.T) {
	t.Parallel()
	out := logField(t, "public_key_cose", "deadbeef")
	require.Equal(t, "[REDACTED]", out["public_key_cose"])
}

func TestNonSensitiveFieldPassesThrough(t *testing.T) {
	t.Parallel()
	out := logField(t, "credential_id", "abc123")
	require.Equal(t, "abc123", out["credential_id"])
}

func logField(t *testing.T, key, value string) map[string]any {
	t.Helper()
	var buf bytes.Buffer
	base := slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})
	logger := slog.New(NewRedactingHandler(base))
	logger.Info("test", key, value)

	line := bytes.TrimSpace(buf.Bytes())
	out := map[string]any{}
	require.NoError(t, json.Unmarshal(line, &out))
	return out
}
