package challenge

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"time"

	"github.com/openwrt/webauthn-helper/internal/apperr"
	"github.com/openwrt/webauthn-helper/internal/codec"
)

// fileRecord is the external (camelCase, Base64URL) on-disk shape for
// a challenge, per spec.md §6.3. It exists only at the serialization
// boundary; the rest of the codebase works with Record.
type fileRecord struct {
	ChallengeID      string   `json:"challengeId"`
	Kind             string   `json:"kind"`
	RPID             string   `json:"rpId"`
	Username         string   `json:"username"`
	ChallengeBytes   string   `json:"challengeBytes"`
	UserVerification string   `json:"userVerification"`
	AllowList        []string `json:"allowList,omitempty"`
	ServerState      string   `json:"serverState,omitempty"`
	CreatedAt        string   `json:"createdAt"`
}

// FSStore is the production, file-backed Challenge Store: one file per
// record under <dir>/<uuid>.json, mode 0600, written create-temp-then-
// rename so a partial file is never observable.
type FSStore struct {
	dir string
	ttl time.Duration
}

// NewFSStore returns a Store rooted at dir, creating it (mode 0700) if
// absent. ttl of 0 selects DefaultTTL.
func NewFSStore(dir string, ttl time.Duration) (*FSStore, error) {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, apperr.StorageFailed("create challenge directory", err)
	}
	return &FSStore{dir: dir, ttl: ttl}, nil
}

func (s *FSStore) pathFor(id string) string {
	return filepath.Join(s.dir, id+".json")
}

func (s *FSStore) Put(record *Record) error {
	if record == nil || record.ChallengeID == "" {
		return apperr.InvalidInput("challenge record requires a challenge id")
	}
	data, err := json.Marshal(toFileRecord(record))
	if err != nil {
		return apperr.JSONFailed("marshal challenge record", err)
	}

	target := s.pathFor(record.ChallengeID)
	tmp := target + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return apperr.StorageFailed("write challenge temp file", err)
	}
	if err := os.Rename(tmp, target); err != nil {
		_ = os.Remove(tmp)
		return apperr.StorageFailed("rename challenge file into place", err)
	}
	return nil
}

func (s *FSStore) Take(id string) (*Record, error) {
	path := s.pathFor(id)
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, notFound()
		}
		return nil, apperr.StorageFailed("read challenge file", err)
	}

	// Unlink before interpreting the contents: whichever caller wins
	// this race is the unique consumer, even if parsing later fails.
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, apperr.StorageFailed("remove challenge file", err)
	}

	var fr fileRecord
	if err := json.Unmarshal(data, &fr); err != nil {
		return nil, notFound()
	}
	record, err := fromFileRecord(&fr)
	if err != nil {
		return nil, notFound()
	}

	if codec.Expired(record.CreatedAt, s.ttl, codec.NowUTC()) {
		return nil, notFound()
	}
	return record, nil
}

func (s *FSStore) Cleanup() (int, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return 0, nil
		}
		return 0, apperr.StorageFailed("list challenge directory", err)
	}

	now := codec.NowUTC()
	removed := 0
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".json" {
			continue
		}
		path := filepath.Join(s.dir, entry.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		var fr fileRecord
		stale := false
		if err := json.Unmarshal(data, &fr); err != nil {
			stale = true
		} else if record, err := fromFileRecord(&fr); err != nil {
			stale = true
		} else if codec.Expired(record.CreatedAt, s.ttl, now) {
			stale = true
		}
		if stale {
			if err := os.Remove(path); err == nil {
				removed++
			}
		}
	}
	return removed, nil
}

func toFileRecord(r *Record) fileRecord {
	allow := make([]string, 0, len(r.AllowList))
	for _, id := range r.AllowList {
		allow = append(allow, codec.EncodeB64URL(id))
	}
	return fileRecord{
		ChallengeID:      r.ChallengeID,
		Kind:             string(r.Kind),
		RPID:             r.RPID,
		Username:         r.Username,
		ChallengeBytes:   codec.EncodeB64URL(r.ChallengeBytes),
		UserVerification: r.UserVerification,
		AllowList:        allow,
		ServerState:      codec.EncodeB64URL(r.ServerState),
		CreatedAt:        codec.FormatISO8601(r.CreatedAt),
	}
}

func fromFileRecord(fr *fileRecord) (*Record, error) {
	challengeBytes, err := codec.DecodeB64URL(fr.ChallengeBytes)
	if err != nil {
		return nil, err
	}
	var serverState []byte
	if fr.ServerState != "" {
		serverState, err = codec.DecodeB64URL(fr.ServerState)
		if err != nil {
			return nil, err
		}
	}
	allow := make([][]byte, 0, len(fr.AllowList))
	for _, encoded := range fr.AllowList {
		raw, err := codec.DecodeB64URL(encoded)
		if err != nil {
			return nil, err
		}
		allow = append(allow, raw)
	}
	createdAt, err := codec.ParseISO8601(fr.CreatedAt)
	if err != nil {
		return nil, err
	}

	return &Record{
		ChallengeID:      fr.ChallengeID,
		Kind:             Kind(fr.Kind),
		RPID:             fr.RPID,
		Username:         fr.Username,
		ChallengeBytes:   challengeBytes,
		UserVerification: fr.UserVerification,
		AllowList:        allow,
		ServerState:      serverState,
		CreatedAt:        createdAt,
	}, nil
}
