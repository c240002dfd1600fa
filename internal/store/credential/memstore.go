package credential

import (
	"sync"

	"github.com/openwrt/webauthn-helper/internal/apperr"
)

// MemStore is the in-memory Store double used by engine and management
// tests. A single mutex stands in for the exclusive file lock.
type MemStore struct {
	mu      sync.Mutex
	records []*Record
}

func NewMemStore() *MemStore {
	return &MemStore{}
}

func (m *MemStore) Load() ([]*Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return cloneAll(m.records), nil
}

func (m *MemStore) Insert(record *Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.records {
		if bytesEqual(existing.CredentialID, record.CredentialID) {
			return apperr.InvalidInput("credential already registered")
		}
	}
	m.records = append(m.records, cloneOne(record))
	return nil
}

func (m *MemStore) FindByID(credentialID []byte) (*Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.records {
		if bytesEqual(existing.CredentialID, credentialID) {
			return cloneOne(existing), nil
		}
	}
	return nil, notFound()
}

func (m *MemStore) ListByUsername(username string) ([]*Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	matches := make([]*Record, 0)
	for _, existing := range m.records {
		if existing.Username == username {
			matches = append(matches, cloneOne(existing))
		}
	}
	return matches, nil
}

func (m *MemStore) ListAll() ([]*Record, error) {
	return m.Load()
}

func (m *MemStore) Update(credentialID []byte, mutate Mutator) (*Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, existing := range m.records {
		if !bytesEqual(existing.CredentialID, credentialID) {
			continue
		}
		cp := cloneOne(existing)
		if err := mutate(cp); err != nil {
			return nil, err
		}
		m.records[i] = cp
		return cloneOne(cp), nil
	}
	return nil, notFound()
}

func (m *MemStore) Delete(credentialID []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, existing := range m.records {
		if bytesEqual(existing.CredentialID, credentialID) {
			m.records = append(m.records[:i], m.records[i+1:]...)
			return nil
		}
	}
	return notFound()
}
