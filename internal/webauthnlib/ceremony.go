package webauthnlib

import (
	"bytes"
	"encoding/json"
	"net/http"

	"github.com/go-webauthn/webauthn/protocol"
	"github.com/go-webauthn/webauthn/webauthn"

	"github.com/openwrt/webauthn-helper/internal/apperr"
)

// BeginRegistration builds creation options for user, excluding any
// credentials already on file so the authenticator refuses to
// double-enroll (spec.md §4.5.1 step 2).
func BeginRegistration(instance *webauthn.WebAuthn, user *User) (*protocol.CredentialCreation, *webauthn.SessionData, error) {
	exclusions := make([]protocol.CredentialDescriptor, 0, len(user.Credentials))
	for _, record := range user.Credentials {
		exclusions = append(exclusions, protocol.CredentialDescriptor{
			Type:         protocol.PublicKeyCredentialType,
			CredentialID: record.CredentialID,
		})
	}

	options, session, err := instance.BeginRegistration(user, webauthn.WithExclusions(exclusions))
	if err != nil {
		return nil, nil, apperr.WebAuthnFailed("build registration options", err)
	}
	return options, session, nil
}

// FinishRegistration verifies the raw attestation JSON against
// session, returning the library's verified Credential on success.
func FinishRegistration(instance *webauthn.WebAuthn, user *User, session webauthn.SessionData, attestationJSON []byte) (*webauthn.Credential, error) {
	req, err := bodyRequest(attestationJSON)
	if err != nil {
		return nil, err
	}

	cred, err := instance.FinishRegistration(user, session, req)
	if err != nil {
		return nil, apperr.WebAuthnFailed("verify attestation", err)
	}
	return cred, nil
}

// BeginLogin builds request options constrained to the user's
// enrolled credential ids (spec.md §4.5.3 step 2).
func BeginLogin(instance *webauthn.WebAuthn, user *User) (*protocol.CredentialAssertion, *webauthn.SessionData, error) {
	ids := make([][]byte, 0, len(user.Credentials))
	for _, record := range user.Credentials {
		ids = append(ids, record.CredentialID)
	}

	options, session, err := instance.BeginLogin(user, webauthn.WithAllowedCredentials(credentialDescriptors(ids)))
	if err != nil {
		return nil, nil, apperr.WebAuthnFailed("build login options", err)
	}
	return options, session, nil
}

// FinishLogin verifies the raw assertion JSON against session.
func FinishLogin(instance *webauthn.WebAuthn, user *User, session webauthn.SessionData, assertionJSON []byte) (*webauthn.Credential, error) {
	req, err := bodyRequest(assertionJSON)
	if err != nil {
		return nil, err
	}

	cred, err := instance.FinishLogin(user, session, req)
	if err != nil {
		return nil, apperr.WebAuthnFailed("verify assertion", err)
	}
	return cred, nil
}

func credentialDescriptors(ids [][]byte) []protocol.CredentialDescriptor {
	out := make([]protocol.CredentialDescriptor, 0, len(ids))
	for _, id := range ids {
		out = append(out, protocol.CredentialDescriptor{Type: protocol.PublicKeyCredentialType, CredentialID: id})
	}
	return out
}

// bodyRequest wraps raw client JSON in a throwaway *http.Request so it
// can be handed to the library's request-shaped Finish* functions,
// mirroring TAhirr01-mocrypt-local/user_management_ms/services/passkey_auth.go's
// http.NewRequest("POST", "", bytes.NewReader(body)) pattern.
func bodyRequest(body []byte) (*http.Request, error) {
	if !json.Valid(body) {
		return nil, apperr.JSONFailed("parse client response", nil)
	}
	req, err := http.NewRequest(http.MethodPost, "/", bytes.NewReader(body))
	if err != nil {
		return nil, apperr.Internal("build verification request")
	}
	req.Header.Set("Content-Type", "application/json")
	return req, nil
}

// MarshalSessionData serializes session state for storage as a
// ChallengeRecord's server-state blob.
func MarshalSessionData(session *webauthn.SessionData) ([]byte, error) {
	data, err := json.Marshal(session)
	if err != nil {
		return nil, apperr.JSONFailed("marshal session state", err)
	}
	return data, nil
}

// UnmarshalSessionData restores session state previously produced by
// MarshalSessionData.
func UnmarshalSessionData(data []byte) (webauthn.SessionData, error) {
	var session webauthn.SessionData
	if err := json.Unmarshal(data, &session); err != nil {
		return webauthn.SessionData{}, apperr.JSONFailed("parse session state", err)
	}
	return session, nil
}
