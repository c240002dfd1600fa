package wire

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSuccessEnvelopeOmitsError(t *testing.T) {
	t.Parallel()
	data, err := Marshal(Success(map[string]string{"status": "ok"}))
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	require.Equal(t, true, decoded["success"])
	require.NotContains(t, decoded, "error")
}

func TestFailureEnvelopeOmitsData(t *testing.T) {
	t.Parallel()
	data, err := Marshal(Failure("INVALID_INPUT", "bad request"))
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	require.Equal(t, false, decoded["success"])
	require.NotContains(t, decoded, "data")

	errObj, ok := decoded["error"].(map[string]any)
	require.True(t, ok)
	require.Equal(t, "INVALID_INPUT", errObj["code"])
}
