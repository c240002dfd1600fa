package engine

import "crypto/sha256"

// userHandle derives a stable WebAuthn user handle from a username.
// CredentialRecord has no persisted handle field (spec.md §3), so a
// deterministic derivation is how "reuse the existing handle for this
// username" (spec.md §4.5.1 step 1) holds without an extra store
// column: the same username always yields the same 16-byte handle.
func userHandle(username string) []byte {
	sum := sha256.Sum256([]byte("webauthn-user-handle:" + username))
	return sum[:16]
}
