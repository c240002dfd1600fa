package manage

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/openwrt/webauthn-helper/internal/codec"
	"github.com/openwrt/webauthn-helper/internal/store/challenge"
	"github.com/openwrt/webauthn-helper/internal/store/credential"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestManager(t *testing.T) (*Manager, *credential.MemStore, string) {
	t.Helper()
	creds := credential.NewMemStore()
	challenges := challenge.NewMemStore(0)
	path := filepath.Join(t.TempDir(), "credentials.json")
	return New(challenges, creds, path, discardLogger()), creds, path
}

func mustInsert(t *testing.T, creds *credential.MemStore, id []byte, username, deviceName string) {
	t.Helper()
	now := codec.NowUTC()
	require.NoError(t, creds.Insert(&credential.Record{
		CredentialID: id,
		Username:     username,
		DeviceName:   deviceName,
		CreatedAt:    now,
		LastUsedAt:   now,
	}))
}

func TestListByUsername(t *testing.T) {
	mgr, creds, _ := newTestManager(t)
	mustInsert(t, creds, []byte{1}, "alice", "phone")
	mustInsert(t, creds, []byte{2}, "bob", "key")

	summaries, err := mgr.List("alice", "")
	require.NoError(t, err)
	require.Len(t, summaries, 1)
	require.Equal(t, "phone", summaries[0].DeviceName)
}

func TestListByIDFilterReturnsSingleMatch(t *testing.T) {
	mgr, creds, _ := newTestManager(t)
	id := []byte{9, 9, 9}
	mustInsert(t, creds, id, "alice", "laptop")
	mustInsert(t, creds, []byte{1}, "alice", "phone")

	summaries, err := mgr.List("", codec.EncodeB64URL(id))
	require.NoError(t, err)
	require.Len(t, summaries, 1)
	require.Equal(t, "laptop", summaries[0].DeviceName)
}

func TestListByIDUnknownReturnsNotFound(t *testing.T) {
	mgr, _, _ := newTestManager(t)
	_, err := mgr.List("", codec.EncodeB64URL([]byte{1, 2, 3}))
	require.Error(t, err)
}

func TestDeleteRemovesCredential(t *testing.T) {
	mgr, creds, _ := newTestManager(t)
	id := []byte{7}
	mustInsert(t, creds, id, "alice", "phone")

	data, err := mgr.Delete(codec.EncodeB64URL(id))
	require.NoError(t, err)
	require.Equal(t, codec.EncodeB64URL(id), data.CredentialID)

	_, err = creds.FindByID(id)
	require.Error(t, err)
}

func TestUpdateRenamesAndReportsOldName(t *testing.T) {
	mgr, creds, _ := newTestManager(t)
	id := []byte{3}
	mustInsert(t, creds, id, "alice", "old-name")

	data, err := mgr.Update(codec.EncodeB64URL(id), "new-name")
	require.NoError(t, err)
	require.Equal(t, "old-name", data.OldName)
	require.Equal(t, "new-name", data.NewName)

	record, err := creds.FindByID(id)
	require.NoError(t, err)
	require.Equal(t, "new-name", record.DeviceName)
}

func TestCleanupReportsRemovedCount(t *testing.T) {
	mgr, _, _ := newTestManager(t)
	data, err := mgr.Cleanup()
	require.NoError(t, err)
	require.Equal(t, 0, data.Removed)
}

func TestHealthCheckReportsWritableAndCount(t *testing.T) {
	mgr, creds, path := newTestManager(t)
	mustInsert(t, creds, []byte{1}, "alice", "phone")

	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o700))

	health := mgr.HealthCheck()
	require.Equal(t, "ok", health.Status)
	require.Equal(t, 1, health.Storage.Count)
	require.True(t, health.Storage.Writable)
}

func TestHealthCheckNeverFailsOnUnwritablePath(t *testing.T) {
	mgr, _, _ := newTestManager(t)
	mgr.CredentialsPath = filepath.Join("/nonexistent-root-dir", "credentials.json")

	health := mgr.HealthCheck()
	require.Equal(t, "ok", health.Status)
	require.False(t, health.Storage.Writable)
}
