package webauthnlib

import (
	"testing"

	"github.com/go-webauthn/webauthn/webauthn"
	"github.com/stretchr/testify/require"
)

func TestBodyRequestRejectsInvalidJSON(t *testing.T) {
	_, err := bodyRequest([]byte("not json"))
	require.Error(t, err)
}

func TestBodyRequestAcceptsValidJSON(t *testing.T) {
	req, err := bodyRequest([]byte(`{"id":"AQID"}`))
	require.NoError(t, err)
	require.Equal(t, "application/json", req.Header.Get("Content-Type"))
}

func TestSessionDataRoundTrips(t *testing.T) {
	session := &webauthn.SessionData{
		Challenge: "test-challenge",
		UserID:    []byte{1, 2, 3},
	}
	data, err := MarshalSessionData(session)
	require.NoError(t, err)

	restored, err := UnmarshalSessionData(data)
	require.NoError(t, err)
	require.Equal(t, session.Challenge, restored.Challenge)
	require.Equal(t, session.UserID, restored.UserID)
}

func TestUnmarshalSessionDataRejectsInvalidJSON(t *testing.T) {
	_, err := UnmarshalSessionData([]byte("not json"))
	require.Error(t, err)
}
