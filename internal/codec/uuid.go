package codec

import (
	"github.com/google/uuid"
	"github.com/openwrt/webauthn-helper/internal/apperr"
)

// NewUUIDv4 generates a fresh UUIDv4 seeded from crypto/rand, canonical
// 8-4-4-4-12 lowercase form.
func NewUUIDv4() string {
	return uuid.New().String()
}

// ParseUUID parses s as a UUID in any form google/uuid accepts and
// returns its canonical 8-4-4-4-12 lowercase form, or INVALID_INPUT
// on malformed input.
func ParseUUID(s string) (string, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return "", apperr.Wrap(apperr.CodeInvalidInput, "invalid uuid", err)
	}
	return id.String(), nil
}
