package engine

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/openwrt/webauthn-helper/internal/apperr"
	"github.com/openwrt/webauthn-helper/internal/store/challenge"
	"github.com/openwrt/webauthn-helper/internal/store/credential"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	return New(challenge.NewMemStore(0), credential.NewMemStore(), "OpenWrt", "preferred", discardLogger())
}

func TestRegisterBeginIssuesChallenge(t *testing.T) {
	e := newTestEngine(t)
	data, err := e.RegisterBegin("alice", "router.example.net", "")
	require.NoError(t, err)
	require.NotEmpty(t, data.ChallengeID)
	require.NotNil(t, data.Options)
}

func TestLoginBeginRejectsUnknownUser(t *testing.T) {
	e := newTestEngine(t)
	_, err := e.LoginBegin("nobody", "router.example.net")
	require.Error(t, err)
	require.True(t, apperr.Is(err, apperr.CodeUserNotFound))
}

func TestRegisterFinishRejectsUnknownChallenge(t *testing.T) {
	e := newTestEngine(t)
	_, err := e.RegisterFinish("not-a-real-challenge-id", "https://router.example.net", "phone", []byte(`{}`))
	require.Error(t, err)
	require.True(t, apperr.Is(err, apperr.CodeChallengeNotFound))
}

func TestRegisterFinishRejectsChallengeIssuedForLogin(t *testing.T) {
	e := newTestEngine(t)
	// Seed a user so LoginBegin succeeds and issues a login-kind challenge.
	require.NoError(t, e.Credentials.Insert(&credential.Record{
		CredentialID: []byte{1, 2, 3},
		Username:     "alice",
	}))
	login, err := e.LoginBegin("alice", "router.example.net")
	require.NoError(t, err)

	_, err = e.RegisterFinish(login.ChallengeID, "https://router.example.net", "phone", []byte(`{}`))
	require.Error(t, err)
	require.True(t, apperr.Is(err, apperr.CodeInvalidInput))
}

func TestLoginFinishRejectsChallengeIssuedForRegister(t *testing.T) {
	e := newTestEngine(t)
	begin, err := e.RegisterBegin("alice", "router.example.net", "")
	require.NoError(t, err)

	_, err = e.LoginFinish(begin.ChallengeID, "https://router.example.net", []byte(`{}`))
	require.Error(t, err)
	require.True(t, apperr.Is(err, apperr.CodeInvalidInput))
}

func TestRegisterFinishRejectsOriginMismatch(t *testing.T) {
	e := newTestEngine(t)
	begin, err := e.RegisterBegin("alice", "router.example.net", "")
	require.NoError(t, err)

	_, err = e.RegisterFinish(begin.ChallengeID, "https://evil.example.net", "phone", []byte(`{}`))
	require.Error(t, err)
	require.True(t, apperr.Is(err, apperr.CodeInvalidOrigin))
}

func TestLoginFinishRejectsOriginMismatch(t *testing.T) {
	e := newTestEngine(t)
	require.NoError(t, e.Credentials.Insert(&credential.Record{
		CredentialID: []byte{1, 2, 3},
		Username:     "alice",
	}))
	begin, err := e.LoginBegin("alice", "router.example.net")
	require.NoError(t, err)

	_, err = e.LoginFinish(begin.ChallengeID, "https://evil.example.net", []byte(`{}`))
	require.Error(t, err)
	require.True(t, apperr.Is(err, apperr.CodeInvalidOrigin))
}

func TestLoginFinishRejectsChallengeNotFoundAfterDoubleConsumption(t *testing.T) {
	e := newTestEngine(t)
	require.NoError(t, e.Credentials.Insert(&credential.Record{
		CredentialID: []byte{1, 2, 3},
		Username:     "alice",
	}))
	begin, err := e.LoginBegin("alice", "router.example.net")
	require.NoError(t, err)

	_, _ = e.LoginFinish(begin.ChallengeID, "https://router.example.net", []byte(`{"id":"AQID","rawId":"AQID"}`))
	_, err = e.LoginFinish(begin.ChallengeID, "https://router.example.net", []byte(`{"id":"AQID","rawId":"AQID"}`))
	require.Error(t, err)
	require.True(t, apperr.Is(err, apperr.CodeChallengeNotFound))
}

func TestLoginFinishRejectsCredentialNotInAllowList(t *testing.T) {
	e := newTestEngine(t)
	require.NoError(t, e.Credentials.Insert(&credential.Record{
		CredentialID: []byte{1, 2, 3},
		Username:     "alice",
	}))
	begin, err := e.LoginBegin("alice", "router.example.net")
	require.NoError(t, err)

	// rawId "BAUG" decodes to a credential id not in the allow list.
	_, err = e.LoginFinish(begin.ChallengeID, "https://router.example.net", []byte(`{"id":"BAUG","rawId":"BAUG"}`))
	require.Error(t, err)
	require.True(t, apperr.Is(err, apperr.CodeCredentialNotFound))
}
