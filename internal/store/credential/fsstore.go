package credential

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/openwrt/webauthn-helper/internal/apperr"
	"github.com/openwrt/webauthn-helper/internal/codec"
)

const storeVersion = 1

// fileRecord is the external (camelCase, Base64URL) on-disk shape of a
// single credential, per spec.md §6.3.
type fileRecord struct {
	CredentialID   string `json:"credentialId"`
	Username       string `json:"username"`
	DeviceName     string `json:"deviceName"`
	PublicKeyCOSE  string `json:"publicKeyCose"`
	AAGUID         string `json:"aaguid"`
	SignCounter    uint32 `json:"signCounter"`
	UserVerified   bool   `json:"userVerified"`
	BackupEligible bool   `json:"backupEligible"`
	CreatedAt      string `json:"createdAt"`
	LastUsedAt     string `json:"lastUsedAt"`
}

type fileDocument struct {
	Version     int          `json:"version"`
	Credentials []fileRecord `json:"credentials"`
}

// FSStore is the production Credential Store: a single JSON document
// guarded by an exclusive advisory lock for the entire read-modify-
// write window, replaced via a fixed-name sibling temp file, fsynced,
// then renamed over the target.
type FSStore struct {
	path string
	mode os.FileMode
}

// NewFSStore returns a Store backed by the document at path. mode of 0
// selects 0600.
func NewFSStore(path string, mode os.FileMode) (*FSStore, error) {
	if mode == 0 {
		mode = 0o600
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, apperr.StorageFailed("create credential store directory", err)
	}
	return &FSStore{path: path, mode: mode}, nil
}

func (s *FSStore) tempPath() string {
	return s.path + ".tmp"
}

// withLock acquires the exclusive lock, loads the current document,
// lets mutate observe/modify it, and — only if mutate reports the set
// changed — persists mutate's returned records via temp-file-then-
// rename before releasing the lock. Read-only callers return
// changed=false and their original records back unmodified.
func (s *FSStore) withLock(mutate func(records []*Record) (changed bool, newRecords []*Record, result any, err error)) (any, error) {
	lock, err := acquireExclusiveLock(s.path)
	if err != nil {
		return nil, err
	}
	defer lock.Release()

	records, err := s.readLocked()
	if err != nil {
		return nil, err
	}

	changed, newRecords, result, err := mutate(records)
	if err != nil {
		return nil, err
	}
	if !changed {
		return result, nil
	}
	if err := s.writeLocked(newRecords); err != nil {
		return nil, err
	}
	return result, nil
}

func (s *FSStore) readLocked() ([]*Record, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, apperr.StorageFailed("read credential store", err)
	}
	if len(data) == 0 {
		return nil, nil
	}

	var doc fileDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, apperr.StorageFailed("parse credential store", err)
	}

	records := make([]*Record, 0, len(doc.Credentials))
	for _, fr := range doc.Credentials {
		record, err := fromFileRecord(&fr)
		if err != nil {
			return nil, apperr.StorageFailed("parse credential record", err)
		}
		records = append(records, record)
	}
	return records, nil
}

func (s *FSStore) writeLocked(records []*Record) error {
	doc := fileDocument{Version: storeVersion, Credentials: make([]fileRecord, 0, len(records))}
	for _, record := range records {
		doc.Credentials = append(doc.Credentials, toFileRecord(record))
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return apperr.JSONFailed("marshal credential store", err)
	}

	tmp := s.tempPath()
	file, err := os.OpenFile(tmp, os.O_RDWR|os.O_CREATE|os.O_TRUNC, s.mode)
	if err != nil {
		return apperr.StorageFailed("open credential store temp file", err)
	}
	if _, err := file.Write(data); err != nil {
		_ = file.Close()
		return apperr.StorageFailed("write credential store temp file", err)
	}
	if err := file.Sync(); err != nil {
		_ = file.Close()
		return apperr.StorageFailed("fsync credential store temp file", err)
	}
	if err := file.Close(); err != nil {
		return apperr.StorageFailed("close credential store temp file", err)
	}
	if err := os.Chmod(tmp, s.mode); err != nil {
		return apperr.StorageFailed("set credential store permissions", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return apperr.StorageFailed("rename credential store into place", err)
	}
	return nil
}

func (s *FSStore) Load() ([]*Record, error) {
	result, err := s.withLock(func(records []*Record) (bool, []*Record, any, error) {
		return false, records, cloneAll(records), nil
	})
	if err != nil {
		return nil, err
	}
	return result.([]*Record), nil
}

func (s *FSStore) Insert(record *Record) error {
	_, err := s.withLock(func(records []*Record) (bool, []*Record, any, error) {
		for _, existing := range records {
			if bytesEqual(existing.CredentialID, record.CredentialID) {
				return false, records, nil, apperr.InvalidInput("credential already registered")
			}
		}
		cp := cloneOne(record)
		return true, append(records, cp), nil, nil
	})
	return err
}

func (s *FSStore) FindByID(credentialID []byte) (*Record, error) {
	result, err := s.withLock(func(records []*Record) (bool, []*Record, any, error) {
		for _, existing := range records {
			if bytesEqual(existing.CredentialID, credentialID) {
				return false, records, cloneOne(existing), nil
			}
		}
		return false, records, nil, notFound()
	})
	if err != nil {
		return nil, err
	}
	return result.(*Record), nil
}

func (s *FSStore) ListByUsername(username string) ([]*Record, error) {
	result, err := s.withLock(func(records []*Record) (bool, []*Record, any, error) {
		matches := make([]*Record, 0)
		for _, existing := range records {
			if existing.Username == username {
				matches = append(matches, cloneOne(existing))
			}
		}
		return false, records, matches, nil
	})
	if err != nil {
		return nil, err
	}
	return result.([]*Record), nil
}

func (s *FSStore) ListAll() ([]*Record, error) {
	return s.Load()
}

func (s *FSStore) Update(credentialID []byte, mutate Mutator) (*Record, error) {
	result, err := s.withLock(func(records []*Record) (bool, []*Record, any, error) {
		for i, existing := range records {
			if !bytesEqual(existing.CredentialID, credentialID) {
				continue
			}
			if err := mutate(existing); err != nil {
				return false, records, nil, err
			}
			records[i] = existing
			return true, records, cloneOne(existing), nil
		}
		return false, records, nil, notFound()
	})
	if err != nil {
		return nil, err
	}
	return result.(*Record), nil
}

func (s *FSStore) Delete(credentialID []byte) error {
	_, err := s.withLock(func(records []*Record) (bool, []*Record, any, error) {
		for i, existing := range records {
			if bytesEqual(existing.CredentialID, credentialID) {
				updated := append(append([]*Record(nil), records[:i]...), records[i+1:]...)
				return true, updated, nil, nil
			}
		}
		return false, records, nil, notFound()
	})
	return err
}

func bytesEqual(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func cloneOne(r *Record) *Record {
	cp := *r
	cp.CredentialID = append([]byte(nil), r.CredentialID...)
	cp.PublicKeyCOSE = append([]byte(nil), r.PublicKeyCOSE...)
	return &cp
}

func cloneAll(records []*Record) []*Record {
	out := make([]*Record, 0, len(records))
	for _, r := range records {
		out = append(out, cloneOne(r))
	}
	return out
}

func toFileRecord(r *Record) fileRecord {
	return fileRecord{
		CredentialID:   codec.EncodeB64URL(r.CredentialID),
		Username:       r.Username,
		DeviceName:     r.DeviceName,
		PublicKeyCOSE:  codec.EncodeB64URL(r.PublicKeyCOSE),
		AAGUID:         r.AAGUID,
		SignCounter:    r.SignCounter,
		UserVerified:   r.UserVerified,
		BackupEligible: r.BackupEligible,
		CreatedAt:      codec.FormatISO8601(r.CreatedAt),
		LastUsedAt:     codec.FormatISO8601(r.LastUsedAt),
	}
}

func fromFileRecord(fr *fileRecord) (*Record, error) {
	credentialID, err := codec.DecodeB64URL(fr.CredentialID)
	if err != nil {
		return nil, err
	}
	publicKey, err := codec.DecodeB64URL(fr.PublicKeyCOSE)
	if err != nil {
		return nil, err
	}
	createdAt, err := codec.ParseISO8601(fr.CreatedAt)
	if err != nil {
		return nil, err
	}
	lastUsedAt, err := codec.ParseISO8601(fr.LastUsedAt)
	if err != nil {
		return nil, err
	}
	return &Record{
		CredentialID:   credentialID,
		Username:       fr.Username,
		DeviceName:     fr.DeviceName,
		PublicKeyCOSE:  publicKey,
		AAGUID:         fr.AAGUID,
		SignCounter:    fr.SignCounter,
		UserVerified:   fr.UserVerified,
		BackupEligible: fr.BackupEligible,
		CreatedAt:      createdAt,
		LastUsedAt:     lastUsedAt,
	}, nil
}
