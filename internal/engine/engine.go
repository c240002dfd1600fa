// Package engine implements the WebAuthn RP state machine: the four
// ceremony operations named in spec.md §4.5, built on top of the
// challenge and credential stores and the go-webauthn/webauthn
// library adapter in internal/webauthnlib.
package engine

import (
	"encoding/json"
	"log/slog"

	"github.com/go-webauthn/webauthn/protocol"

	"github.com/openwrt/webauthn-helper/internal/apperr"
	"github.com/openwrt/webauthn-helper/internal/codec"
	"github.com/openwrt/webauthn-helper/internal/store/challenge"
	"github.com/openwrt/webauthn-helper/internal/store/credential"
	"github.com/openwrt/webauthn-helper/internal/webauthnlib"
	"github.com/openwrt/webauthn-helper/internal/wire"
)

type Engine struct {
	Challenges      challenge.Store
	Credentials     credential.Store
	RPDisplayName   string
	DefaultUVPolicy string
	Logger          *slog.Logger
}

func New(challenges challenge.Store, credentials credential.Store, rpDisplayName, defaultUVPolicy string, logger *slog.Logger) *Engine {
	return &Engine{
		Challenges:      challenges,
		Credentials:     credentials,
		RPDisplayName:   rpDisplayName,
		DefaultUVPolicy: defaultUVPolicy,
		Logger:          logger,
	}
}

func (e *Engine) uvPolicy(requested string) protocol.UserVerificationRequirement {
	if requested == "" {
		requested = e.DefaultUVPolicy
	}
	return protocol.UserVerificationRequirement(requested)
}

// RegisterBegin implements spec.md §4.5.1.
func (e *Engine) RegisterBegin(username, rpID, uvPolicy string) (wire.RegisterBeginData, error) {
	existing, err := e.Credentials.ListByUsername(username)
	if err != nil {
		return wire.RegisterBeginData{}, err
	}

	user := &webauthnlib.User{
		Handle:      userHandle(username),
		Username:    username,
		Credentials: existing,
	}

	instance, err := webauthnlib.New(e.RPDisplayName, rpID, defaultHTTPSOrigin(rpID), e.uvPolicy(uvPolicy))
	if err != nil {
		return wire.RegisterBeginData{}, err
	}

	options, session, err := webauthnlib.BeginRegistration(instance, user)
	if err != nil {
		return wire.RegisterBeginData{}, err
	}

	serverState, err := webauthnlib.MarshalSessionData(session)
	if err != nil {
		return wire.RegisterBeginData{}, err
	}

	challengeID := codec.NewUUIDv4()
	record := &challenge.Record{
		ChallengeID:      challengeID,
		Kind:             challenge.KindRegister,
		RPID:             rpID,
		Username:         username,
		ChallengeBytes:   []byte(session.Challenge),
		UserVerification: string(e.uvPolicy(uvPolicy)),
		ServerState:      serverState,
		CreatedAt:        codec.NowUTC(),
	}
	if err := e.Challenges.Put(record); err != nil {
		return wire.RegisterBeginData{}, err
	}

	e.Logger.Info("register begin issued", "username", username, "rp_id", rpID, "challenge_id", challengeID)
	return wire.RegisterBeginData{Options: options, ChallengeID: challengeID}, nil
}

// RegisterFinish implements spec.md §4.5.2.
func (e *Engine) RegisterFinish(challengeID, origin, deviceName string, stdin []byte) (wire.RegisterFinishData, error) {
	record, err := e.Challenges.Take(challengeID)
	if err != nil {
		return wire.RegisterFinishData{}, err
	}
	if record.Kind != challenge.KindRegister {
		return wire.RegisterFinishData{}, apperr.InvalidInput("challenge id was not issued for registration")
	}

	if err := ValidateOrigin(origin, record.RPID); err != nil {
		return wire.RegisterFinishData{}, err
	}

	session, err := webauthnlib.UnmarshalSessionData(record.ServerState)
	if err != nil {
		return wire.RegisterFinishData{}, err
	}

	existing, err := e.Credentials.ListByUsername(record.Username)
	if err != nil {
		return wire.RegisterFinishData{}, err
	}
	user := &webauthnlib.User{Handle: userHandle(record.Username), Username: record.Username, Credentials: existing}

	instance, err := webauthnlib.New(e.RPDisplayName, record.RPID, origin, protocol.UserVerificationRequirement(record.UserVerification))
	if err != nil {
		return wire.RegisterFinishData{}, err
	}

	cred, err := webauthnlib.FinishRegistration(instance, user, session, stdin)
	if err != nil {
		e.Logger.Warn("register finish rejected", "username", record.Username, "challenge_id", challengeID, "reason", err.Error())
		return wire.RegisterFinishData{}, err
	}

	now := codec.NowUTC()
	newRecord := &credential.Record{
		CredentialID:   cred.ID,
		Username:       record.Username,
		DeviceName:     deviceName,
		PublicKeyCOSE:  cred.PublicKey,
		AAGUID:         webauthnlib.AAGUIDString(cred.Authenticator.AAGUID),
		SignCounter:    cred.Authenticator.SignCount,
		UserVerified:   cred.Flags.UserVerified,
		BackupEligible: cred.Flags.BackupEligible,
		CreatedAt:      now,
		LastUsedAt:     now,
	}
	if err := e.Credentials.Insert(newRecord); err != nil {
		return wire.RegisterFinishData{}, err
	}

	e.Logger.Info("register finish committed", "username", record.Username, "credential_id", codec.EncodeB64URL(cred.ID))
	return wire.RegisterFinishFromRecord(newRecord), nil
}

// LoginBegin implements spec.md §4.5.3.
func (e *Engine) LoginBegin(username, rpID string) (wire.LoginBeginData, error) {
	existing, err := e.Credentials.ListByUsername(username)
	if err != nil {
		return wire.LoginBeginData{}, err
	}
	if len(existing) == 0 {
		return wire.LoginBeginData{}, apperr.UserNotFound(username)
	}

	user := &webauthnlib.User{Handle: userHandle(username), Username: username, Credentials: existing}
	instance, err := webauthnlib.New(e.RPDisplayName, rpID, defaultHTTPSOrigin(rpID), protocol.VerificationPreferred)
	if err != nil {
		return wire.LoginBeginData{}, err
	}

	options, session, err := webauthnlib.BeginLogin(instance, user)
	if err != nil {
		return wire.LoginBeginData{}, err
	}

	serverState, err := webauthnlib.MarshalSessionData(session)
	if err != nil {
		return wire.LoginBeginData{}, err
	}

	allowList := make([][]byte, 0, len(existing))
	for _, c := range existing {
		allowList = append(allowList, c.CredentialID)
	}

	challengeID := codec.NewUUIDv4()
	record := &challenge.Record{
		ChallengeID:      challengeID,
		Kind:             challenge.KindLogin,
		RPID:             rpID,
		Username:         username,
		ChallengeBytes:   []byte(session.Challenge),
		UserVerification: string(protocol.VerificationPreferred),
		AllowList:        allowList,
		ServerState:      serverState,
		CreatedAt:        codec.NowUTC(),
	}
	if err := e.Challenges.Put(record); err != nil {
		return wire.LoginBeginData{}, err
	}

	e.Logger.Info("login begin issued", "username", username, "rp_id", rpID, "challenge_id", challengeID)
	return wire.LoginBeginData{Options: options, ChallengeID: challengeID}, nil
}

// LoginFinish implements spec.md §4.5.4.
func (e *Engine) LoginFinish(challengeID, origin string, stdin []byte) (wire.LoginFinishData, error) {
	record, err := e.Challenges.Take(challengeID)
	if err != nil {
		return wire.LoginFinishData{}, err
	}
	if record.Kind != challenge.KindLogin {
		return wire.LoginFinishData{}, apperr.InvalidInput("challenge id was not issued for login")
	}

	if err := ValidateOrigin(origin, record.RPID); err != nil {
		return wire.LoginFinishData{}, err
	}

	credentialID, err := extractAssertionCredentialID(stdin)
	if err != nil {
		return wire.LoginFinishData{}, err
	}
	if !allowListContains(record.AllowList, credentialID) {
		return wire.LoginFinishData{}, apperr.CredentialNotFound()
	}

	stored, err := e.Credentials.FindByID(credentialID)
	if err != nil {
		return wire.LoginFinishData{}, err
	}

	session, err := webauthnlib.UnmarshalSessionData(record.ServerState)
	if err != nil {
		return wire.LoginFinishData{}, err
	}

	user := &webauthnlib.User{Handle: userHandle(record.Username), Username: record.Username, Credentials: []*credential.Record{stored}}
	instance, err := webauthnlib.New(e.RPDisplayName, record.RPID, origin, protocol.UserVerificationRequirement(record.UserVerification))
	if err != nil {
		return wire.LoginFinishData{}, err
	}

	verified, err := webauthnlib.FinishLogin(instance, user, session, stdin)
	if err != nil {
		return wire.LoginFinishData{}, err
	}

	decision := EvaluateCounter(stored.SignCounter, verified.Authenticator.SignCount)
	if !decision.Accept {
		e.Logger.Warn("clone detected", "event", "CLONE_DETECTED", "credential_id", codec.EncodeB64URL(stored.CredentialID), "stored_counter", stored.SignCounter, "reported_counter", verified.Authenticator.SignCount)
		return wire.LoginFinishData{}, apperr.WebAuthnFailed("signature counter did not advance", nil)
	}

	updated, err := e.Credentials.Update(stored.CredentialID, func(r *credential.Record) error {
		r.SignCounter = verified.Authenticator.SignCount
		r.LastUsedAt = codec.NowUTC()
		return nil
	})
	if err != nil {
		return wire.LoginFinishData{}, err
	}

	e.Logger.Info("login finish committed", "username", record.Username, "credential_id", codec.EncodeB64URL(updated.CredentialID), "counter", updated.SignCounter)
	return wire.LoginFinishData{Username: record.Username, UserVerified: updated.UserVerified, Counter: updated.SignCounter}, nil
}

func defaultHTTPSOrigin(rpID string) string {
	return "https://" + rpID
}

func allowListContains(allowList [][]byte, id []byte) bool {
	for _, entry := range allowList {
		if len(entry) == len(id) {
			match := true
			for i := range entry {
				if entry[i] != id[i] {
					match = false
					break
				}
			}
			if match {
				return true
			}
		}
	}
	return false
}

// extractAssertionCredentialID pulls the rawId field out of the
// client's assertion JSON without committing to the full external
// PublicKeyCredential shape; the library performs the authoritative
// parse during FinishLogin.
func extractAssertionCredentialID(stdin []byte) ([]byte, error) {
	var envelope struct {
		ID    string `json:"id"`
		RawID string `json:"rawId"`
	}
	if err := json.Unmarshal(stdin, &envelope); err != nil {
		return nil, apperr.JSONFailed("parse assertion response", err)
	}
	raw := envelope.RawID
	if raw == "" {
		raw = envelope.ID
	}
	if raw == "" {
		return nil, apperr.InvalidInput("assertion response missing credential id")
	}
	return codec.DecodeB64URL(raw)
}
