package engine

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValidateOriginAcceptsHTTPSHostMatch(t *testing.T) {
	require.NoError(t, ValidateOrigin("https://router.example.net", "router.example.net"))
}

func TestValidateOriginRejectsHTTPForDomainRPID(t *testing.T) {
	err := ValidateOrigin("http://router.example.net", "router.example.net")
	require.Error(t, err)
}

func TestValidateOriginAcceptsAnySchemeForIPLiteralRPID(t *testing.T) {
	require.NoError(t, ValidateOrigin("http://192.168.1.1", "192.168.1.1"))
	require.NoError(t, ValidateOrigin("https://192.168.1.1", "192.168.1.1"))
}

func TestValidateOriginAcceptsNonStandardPortForIPLiteral(t *testing.T) {
	require.NoError(t, ValidateOrigin("http://192.168.1.1:8080", "192.168.1.1"))
}

func TestValidateOriginRejectsHostMismatch(t *testing.T) {
	err := ValidateOrigin("https://evil.example.net", "router.example.net")
	require.Error(t, err)
}

func TestValidateOriginRejectsUnparseableOrigin(t *testing.T) {
	err := ValidateOrigin("://not a url", "router.example.net")
	require.Error(t, err)
}
