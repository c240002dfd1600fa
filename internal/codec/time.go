package codec

import (
	"time"

	"github.com/openwrt/webauthn-helper/internal/apperr"
)

const iso8601 = time.RFC3339Nano

// NowUTC returns the current instant in UTC. FormatISO8601 renders it
// at full nanosecond precision with a Z suffix.
func NowUTC() time.Time {
	return time.Now().UTC()
}

// FormatISO8601 renders t as an ISO-8601 UTC timestamp with a Z suffix.
func FormatISO8601(t time.Time) string {
	return t.UTC().Format(iso8601)
}

// ParseISO8601 parses a Z-suffixed ISO-8601 timestamp as produced by
// FormatISO8601.
func ParseISO8601(s string) (time.Time, error) {
	t, err := time.Parse(iso8601, s)
	if err != nil {
		return time.Time{}, apperr.Wrap(apperr.CodeInvalidInput, "invalid ISO-8601 timestamp", err)
	}
	return t.UTC(), nil
}

// Expired reports whether createdAt is more than ttl in the past,
// relative to now. Both the challenge store and the cleanup management
// operation call this so the two paths can never disagree about what
// "older than the TTL" means.
func Expired(createdAt time.Time, ttl time.Duration, now time.Time) bool {
	return now.Sub(createdAt) > ttl
}
