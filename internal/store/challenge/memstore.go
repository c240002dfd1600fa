package challenge

import (
	"sync"
	"time"

	"github.com/openwrt/webauthn-helper/internal/codec"
)

// MemStore is the in-memory Store double used by engine and management
// tests, per the "Polymorphism for testing" design note. It reproduces
// the unlink-then-return discipline with a plain mutex since there is
// no filesystem race to model in-process.
type MemStore struct {
	mu      sync.Mutex
	ttl     time.Duration
	records map[string]*Record
}

func NewMemStore(ttl time.Duration) *MemStore {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &MemStore{ttl: ttl, records: map[string]*Record{}}
}

func (m *MemStore) Put(record *Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *record
	m.records[record.ChallengeID] = &cp
	return nil
}

func (m *MemStore) Take(id string) (*Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	record, ok := m.records[id]
	if !ok {
		return nil, notFound()
	}
	delete(m.records, id)
	if codec.Expired(record.CreatedAt, m.ttl, codec.NowUTC()) {
		return nil, notFound()
	}
	return record, nil
}

func (m *MemStore) Cleanup() (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := codec.NowUTC()
	removed := 0
	for id, record := range m.records {
		if codec.Expired(record.CreatedAt, m.ttl, now) {
			delete(m.records, id)
			removed++
		}
	}
	return removed, nil
}
