package challenge

import (
	"time"

	"github.com/openwrt/webauthn-helper/internal/apperr"
)

// DefaultTTL is the ceremony window from spec.md §4.3: a challenge
// older than this is never accepted, regardless of file presence.
const DefaultTTL = 120 * time.Second

// Store is the capability set the engine needs from the Challenge
// Store, abstracted so tests can substitute an in-memory double for
// the filesystem-backed production implementation (design note
// "Polymorphism for testing").
type Store interface {
	// Put persists record, replacing nothing (challenge ids are
	// fresh UUIDs and never reused).
	Put(record *Record) error

	// Take looks up id, enforces the TTL, and removes the record
	// before returning it. At most one caller observes the record as
	// present: the caller that wins the unlink is the unique
	// consumer. Returns apperr CHALLENGE_NOT_FOUND for an absent,
	// corrupt, or expired record.
	Take(id string) (*Record, error)

	// Cleanup deletes every record older than the TTL or that fails
	// to parse, returning the count removed. Best-effort: individual
	// read or delete failures are skipped and not counted, never
	// returned as a hard error for the whole sweep.
	Cleanup() (int, error)
}

func notFound() error {
	return apperr.ChallengeNotFound()
}
