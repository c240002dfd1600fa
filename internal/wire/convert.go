package wire

import (
	"github.com/openwrt/webauthn-helper/internal/codec"
	"github.com/openwrt/webauthn-helper/internal/store/credential"
)

// CredentialToSummary converts an internal credential record to its
// external (camelCase, Base64URL) list form. Infallible: every field
// on Record has a total external representation.
func CredentialToSummary(r *credential.Record) CredentialSummary {
	return CredentialSummary{
		CredentialID:   codec.EncodeB64URL(r.CredentialID),
		Username:       r.Username,
		DeviceName:     r.DeviceName,
		CreatedAt:      codec.FormatISO8601(r.CreatedAt),
		LastUsedAt:     codec.FormatISO8601(r.LastUsedAt),
		BackupEligible: r.BackupEligible,
		UserVerified:   r.UserVerified,
	}
}

func CredentialsToSummaries(records []*credential.Record) []CredentialSummary {
	out := make([]CredentialSummary, 0, len(records))
	for _, r := range records {
		out = append(out, CredentialToSummary(r))
	}
	return out
}

func RegisterFinishFromRecord(r *credential.Record) RegisterFinishData {
	return RegisterFinishData{
		CredentialID: codec.EncodeB64URL(r.CredentialID),
		AAGUID:       r.AAGUID,
		CreatedAt:    codec.FormatISO8601(r.CreatedAt),
	}
}
