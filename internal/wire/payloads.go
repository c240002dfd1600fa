package wire

import "github.com/go-webauthn/webauthn/protocol"

// RegisterBeginData is the register-begin success payload: the
// creation options the caller hands to navigator.credentials.create,
// plus the challengeId needed to complete the ceremony.
type RegisterBeginData struct {
	Options     *protocol.CredentialCreation `json:"options"`
	ChallengeID string                       `json:"challengeId"`
}

// LoginBeginData is the login-begin success payload.
type LoginBeginData struct {
	Options     *protocol.CredentialAssertion `json:"options"`
	ChallengeID string                        `json:"challengeId"`
}

// RegisterFinishData is emitted once a new credential has been
// verified and committed to the credential store.
type RegisterFinishData struct {
	CredentialID string `json:"credentialId"`
	AAGUID       string `json:"aaguid"`
	CreatedAt    string `json:"createdAt"`
}

// LoginFinishData is emitted once an assertion has been verified.
type LoginFinishData struct {
	Username     string `json:"username"`
	UserVerified bool   `json:"userVerified"`
	Counter      uint32 `json:"counter"`
}

// CredentialSummary is the external form of a CredentialRecord used
// by credential-manage list.
type CredentialSummary struct {
	CredentialID   string `json:"credentialId"`
	Username       string `json:"username"`
	DeviceName     string `json:"deviceName"`
	CreatedAt      string `json:"createdAt"`
	LastUsedAt     string `json:"lastUsedAt"`
	BackupEligible bool   `json:"backupEligible"`
	UserVerified   bool   `json:"userVerified"`
}

// UpdateData is emitted by credential-manage update.
type UpdateData struct {
	CredentialID string `json:"credentialId"`
	OldName      string `json:"oldName"`
	NewName      string `json:"newName"`
}

// CleanupData is emitted by credential-manage cleanup.
type CleanupData struct {
	Removed int `json:"removed"`
}

// DeleteData is emitted by credential-manage delete.
type DeleteData struct {
	CredentialID string `json:"credentialId"`
}

// StorageHealth describes the credential store's probed state.
type StorageHealth struct {
	Writable bool   `json:"writable"`
	Path     string `json:"path"`
	Count    int    `json:"count"`
}

// HealthData is emitted by health-check.
type HealthData struct {
	Status  string        `json:"status"`
	Version string        `json:"version"`
	Storage StorageHealth `json:"storage"`
}

// VersionData is emitted by --version and by the version subcommand, outside the ceremony
// protocol proper (see SPEC_FULL.md §7).
type VersionData struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	BuildTime string `json:"buildTime"`
}
