package challenge

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/openwrt/webauthn-helper/internal/apperr"
	"github.com/openwrt/webauthn-helper/internal/codec"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T, ttl time.Duration) *FSStore {
	t.Helper()
	store, err := NewFSStore(filepath.Join(t.TempDir(), "challenges"), ttl)
	require.NoError(t, err)
	return store
}

func sampleRecord(id string) *Record {
	return &Record{
		ChallengeID:      id,
		Kind:             KindRegister,
		RPID:             "192.168.1.1",
		Username:         "root",
		ChallengeBytes:   []byte("0123456789abcdef0123456789abcdef"),
		UserVerification: "preferred",
		CreatedAt:        codec.NowUTC(),
	}
}

func TestPutThenTakeRoundTrips(t *testing.T) {
	t.Parallel()
	store := newTestStore(t, DefaultTTL)
	id := codec.NewUUIDv4()
	require.NoError(t, store.Put(sampleRecord(id)))

	record, err := store.Take(id)
	require.NoError(t, err)
	require.Equal(t, id, record.ChallengeID)
	require.Equal(t, KindRegister, record.Kind)
}

func TestTakeIsSingleUse(t *testing.T) {
	t.Parallel()
	store := newTestStore(t, DefaultTTL)
	id := codec.NewUUIDv4()
	require.NoError(t, store.Put(sampleRecord(id)))

	_, err := store.Take(id)
	require.NoError(t, err)

	_, err = store.Take(id)
	require.Error(t, err)
	require.True(t, apperr.Is(err, apperr.CodeChallengeNotFound))
}

func TestTakeRejectsExpiredChallenge(t *testing.T) {
	t.Parallel()
	store := newTestStore(t, 50*time.Millisecond)
	id := codec.NewUUIDv4()
	require.NoError(t, store.Put(sampleRecord(id)))

	time.Sleep(100 * time.Millisecond)
	_, err := store.Take(id)
	require.Error(t, err)
	require.True(t, apperr.Is(err, apperr.CodeChallengeNotFound))
}

func TestTakeUnknownIDNotFound(t *testing.T) {
	t.Parallel()
	store := newTestStore(t, DefaultTTL)
	_, err := store.Take(codec.NewUUIDv4())
	require.True(t, apperr.Is(err, apperr.CodeChallengeNotFound))
}

func TestCleanupRemovesExpiredOnly(t *testing.T) {
	t.Parallel()
	store := newTestStore(t, 50*time.Millisecond)
	staleID := codec.NewUUIDv4()
	require.NoError(t, store.Put(sampleRecord(staleID)))
	time.Sleep(100 * time.Millisecond)

	freshID := codec.NewUUIDv4()
	require.NoError(t, store.Put(sampleRecord(freshID)))

	removed, err := store.Cleanup()
	require.NoError(t, err)
	require.Equal(t, 1, removed)

	_, err = store.Take(freshID)
	require.NoError(t, err)
}
