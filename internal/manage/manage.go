// Package manage implements the credential-lifecycle operations in
// spec.md §4.6: list, delete, update, cleanup and the storage health
// probe. None of it needs the WebAuthn library; it is built directly
// on the store interfaces, per spec.md §9's "no new dependency" note.
package manage

import (
	"log/slog"
	"os"

	"github.com/openwrt/webauthn-helper/internal/codec"
	"github.com/openwrt/webauthn-helper/internal/store/challenge"
	"github.com/openwrt/webauthn-helper/internal/store/credential"
	"github.com/openwrt/webauthn-helper/internal/version"
	"github.com/openwrt/webauthn-helper/internal/wire"
)

type Manager struct {
	Challenges      challenge.Store
	Credentials     credential.Store
	CredentialsPath string
	Logger          *slog.Logger
}

func New(challenges challenge.Store, credentials credential.Store, credentialsPath string, logger *slog.Logger) *Manager {
	return &Manager{Challenges: challenges, Credentials: credentials, CredentialsPath: credentialsPath, Logger: logger}
}

// List returns every credential for username. If id is non-empty (the
// supplemented --id filter, SPEC_FULL.md §7), it instead returns the
// single matching credential.
func (m *Manager) List(username, id string) ([]wire.CredentialSummary, error) {
	if id != "" {
		credentialID, err := codec.DecodeB64URL(id)
		if err != nil {
			return nil, err
		}
		record, err := m.Credentials.FindByID(credentialID)
		if err != nil {
			return nil, err
		}
		return []wire.CredentialSummary{wire.CredentialToSummary(record)}, nil
	}

	records, err := m.Credentials.ListByUsername(username)
	if err != nil {
		return nil, err
	}
	return wire.CredentialsToSummaries(records), nil
}

// Delete implements credential-manage delete.
func (m *Manager) Delete(id string) (wire.DeleteData, error) {
	credentialID, err := codec.DecodeB64URL(id)
	if err != nil {
		return wire.DeleteData{}, err
	}
	if err := m.Credentials.Delete(credentialID); err != nil {
		return wire.DeleteData{}, err
	}
	m.Logger.Info("credential deleted", "credential_id", id)
	return wire.DeleteData{CredentialID: id}, nil
}

// Update implements credential-manage update: rename device_name.
func (m *Manager) Update(id, newName string) (wire.UpdateData, error) {
	credentialID, err := codec.DecodeB64URL(id)
	if err != nil {
		return wire.UpdateData{}, err
	}

	var oldName string
	_, err = m.Credentials.Update(credentialID, func(r *credential.Record) error {
		oldName = r.DeviceName
		r.DeviceName = newName
		return nil
	})
	if err != nil {
		return wire.UpdateData{}, err
	}

	m.Logger.Info("credential renamed", "credential_id", id, "old_name", oldName, "new_name", newName)
	return wire.UpdateData{CredentialID: id, OldName: oldName, NewName: newName}, nil
}

// Cleanup delegates to the Challenge Store's cleanup and reports the
// count of removed files.
func (m *Manager) Cleanup() (wire.CleanupData, error) {
	removed, err := m.Challenges.Cleanup()
	if err != nil {
		return wire.CleanupData{}, err
	}
	m.Logger.Info("challenge cleanup swept", "removed", removed)
	return wire.CleanupData{Removed: removed}, nil
}

// HealthCheck probes storage writability without ever failing to
// produce a response, per spec.md §4.6.
func (m *Manager) HealthCheck() wire.HealthData {
	health := wire.StorageHealth{Path: m.CredentialsPath}

	records, err := m.Credentials.ListAll()
	if err == nil {
		health.Count = len(records)
	}

	file, err := os.OpenFile(m.CredentialsPath, os.O_WRONLY|os.O_APPEND|os.O_CREATE, 0o600)
	if err == nil {
		health.Writable = true
		_ = file.Close()
	}

	return wire.HealthData{Status: "ok", Version: version.Current().Version, Storage: health}
}
