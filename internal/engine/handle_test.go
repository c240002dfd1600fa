package engine

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestUserHandleIsDeterministicPerUsername(t *testing.T) {
	require.Equal(t, userHandle("alice"), userHandle("alice"))
}

func TestUserHandleDiffersAcrossUsernames(t *testing.T) {
	require.NotEqual(t, userHandle("alice"), userHandle("bob"))
}

func TestUserHandleIsSixteenBytes(t *testing.T) {
	require.Len(t, userHandle("alice"), 16)
}
