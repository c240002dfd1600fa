package webauthnlib

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestAAGUIDRoundTrip(t *testing.T) {
	id := uuid.New()
	b := aaguidBytes(id.String())
	require.Equal(t, id.String(), AAGUIDString(b))
}

func TestAAGUIDStringRejectsWrongLength(t *testing.T) {
	require.Equal(t, uuid.Nil.String(), AAGUIDString([]byte{1, 2, 3}))
}

func TestAAGUIDBytesFallsBackToNilOnUnparseable(t *testing.T) {
	b := aaguidBytes("not-a-uuid")
	require.Equal(t, make([]byte, 16), b)
}
