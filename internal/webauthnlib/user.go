// Package webauthnlib adapts this helper's internal credential
// records onto the github.com/go-webauthn/webauthn library's User and
// Credential types, following the request-wrapping pattern used by
// TAhirr01-mocrypt-local's passkey service: the library owns
// attestation/assertion cryptography, callers own storage.
package webauthnlib

import (
	"github.com/go-webauthn/webauthn/webauthn"

	"github.com/openwrt/webauthn-helper/internal/store/credential"
)

// User adapts a username and its enrolled credentials to
// webauthn.User for a single ceremony.
type User struct {
	Handle      []byte
	Username    string
	Credentials []*credential.Record
}

func (u *User) WebAuthnID() []byte          { return u.Handle }
func (u *User) WebAuthnName() string        { return u.Username }
func (u *User) WebAuthnDisplayName() string { return u.Username }

func (u *User) WebAuthnCredentials() []webauthn.Credential {
	out := make([]webauthn.Credential, 0, len(u.Credentials))
	for _, record := range u.Credentials {
		out = append(out, toLibraryCredential(record))
	}
	return out
}

func toLibraryCredential(record *credential.Record) webauthn.Credential {
	return webauthn.Credential{
		ID:        record.CredentialID,
		PublicKey: record.PublicKeyCOSE,
		Authenticator: webauthn.Authenticator{
			AAGUID:    aaguidBytes(record.AAGUID),
			SignCount: record.SignCounter,
		},
	}
}
