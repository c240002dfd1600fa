package webauthnlib

import (
	"testing"

	"github.com/go-webauthn/webauthn/protocol"
	"github.com/stretchr/testify/require"
)

func TestNewBuildsInstanceForDomainRPID(t *testing.T) {
	instance, err := New("OpenWrt", "router.example.net", "https://router.example.net", protocol.VerificationPreferred)
	require.NoError(t, err)
	require.NotNil(t, instance)
}

func TestNewBuildsInstanceForIPLiteralRPID(t *testing.T) {
	instance, err := New("OpenWrt", "192.168.1.1", "http://192.168.1.1", protocol.VerificationPreferred)
	require.NoError(t, err)
	require.NotNil(t, instance)
}
