package webauthnlib

import "github.com/google/uuid"

// aaguidBytes converts a canonical AAGUID string to its 16-byte wire
// form. An unparseable or empty AAGUID degrades to the nil AAGUID
// rather than failing the ceremony; it is informational only.
func aaguidBytes(s string) []byte {
	parsed, err := uuid.Parse(s)
	if err != nil {
		return make([]byte, 16)
	}
	return parsed[:]
}

// AAGUIDString converts a 16-byte AAGUID as reported by an
// authenticator to its canonical lowercase string form.
func AAGUIDString(b []byte) string {
	if len(b) != 16 {
		return uuid.Nil.String()
	}
	var raw [16]byte
	copy(raw[:], b)
	return uuid.Must(uuid.FromBytes(raw[:])).String()
}
