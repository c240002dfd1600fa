package credential

import "github.com/openwrt/webauthn-helper/internal/apperr"

// Store is the capability set the engine and management layer need
// from the Credential Store, abstracted per the "Polymorphism for
// testing" design note: production code gets the file-backed lock-
// guarded implementation, tests get an in-memory one.
type Store interface {
	Load() ([]*Record, error)
	Insert(record *Record) error
	FindByID(credentialID []byte) (*Record, error)
	ListByUsername(username string) ([]*Record, error)
	ListAll() ([]*Record, error)
	Update(credentialID []byte, mutate Mutator) (*Record, error)
	Delete(credentialID []byte) error
}

func notFound() error {
	return apperr.CredentialNotFound()
}
