// Package codec provides the Base64URL, timestamp, and UUID encodings
// shared by the wire and store layers. It has no dependency on any
// other internal package.
package codec

import (
	"encoding/base64"
	"strings"

	"github.com/openwrt/webauthn-helper/internal/apperr"
)

// EncodeB64URL encodes b as unpadded RFC 4648 §5 Base64URL, the form
// every binary field takes on the wire and in persisted records.
func EncodeB64URL(b []byte) string {
	return base64.RawURLEncoding.EncodeToString(b)
}

// DecodeB64URL decodes s, rejecting padding characters and any
// character from the standard (non-URL-safe) alphabet. A string
// containing "=", "/", or "+" is rejected up front with its own
// message, before the decoder sees it.
func DecodeB64URL(s string) ([]byte, error) {
	if strings.ContainsAny(s, "=/+") {
		return nil, apperr.InvalidInput("base64url: padded or non-url-safe input")
	}
	b, err := base64.RawURLEncoding.DecodeString(s)
	if err != nil {
		return nil, apperr.Wrap(apperr.CodeInvalidInput, "base64url: decode failed", err)
	}
	return b, nil
}
