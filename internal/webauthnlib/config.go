package webauthnlib

import (
	"time"

	"github.com/go-webauthn/webauthn/protocol"
	"github.com/go-webauthn/webauthn/webauthn"

	"github.com/openwrt/webauthn-helper/internal/apperr"
)

const ceremonyTimeout = 60 * time.Second

// New builds a fresh *webauthn.WebAuthn scoped to one invocation. The
// library is stateless aside from this config, so there is no benefit
// to caching an instance across ceremonies that may target different
// RP IDs and origins (e.g. bare IPv4 literals, per spec.md §4.2).
func New(rpDisplayName, rpID, origin string, uvPolicy protocol.UserVerificationRequirement) (*webauthn.WebAuthn, error) {
	config := &webauthn.Config{
		RPDisplayName:         rpDisplayName,
		RPID:                  rpID,
		RPOrigins:             []string{origin},
		AttestationPreference: protocol.PreferNoAttestation,
		AuthenticatorSelection: protocol.AuthenticatorSelection{
			ResidentKey:      protocol.ResidentKeyRequirementPreferred,
			UserVerification: uvPolicy,
		},
		Timeouts: webauthn.TimeoutsConfig{
			Registration: webauthn.TimeoutConfig{Enforce: true, Timeout: ceremonyTimeout, TimeoutUVD: ceremonyTimeout},
			Login:        webauthn.TimeoutConfig{Enforce: true, Timeout: ceremonyTimeout, TimeoutUVD: ceremonyTimeout},
		},
	}

	instance, err := webauthn.New(config)
	if err != nil {
		return nil, apperr.WebAuthnFailed("construct webauthn engine", err)
	}
	return instance, nil
}
