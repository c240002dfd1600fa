// Package challenge implements the ephemeral Challenge Store: one
// file per pending ceremony, TTL-gated, single-use via unlink-then-return.
package challenge

import "time"

// Kind tags which ceremony a ChallengeRecord belongs to. The engine
// dispatches on this tag rather than using separate record types, per
// the "sum types over inheritance" design note.
type Kind string

const (
	KindRegister Kind = "register"
	KindLogin    Kind = "login"
)

// Record is the internal (snake_case-modeled, native-byte) shape of a
// pending ceremony. It is created by a *-begin operation, consumed
// exactly once by the matching *-finish, and never mutated in place.
type Record struct {
	ChallengeID      string
	Kind             Kind
	RPID             string
	Username         string
	ChallengeBytes   []byte
	UserVerification string
	AllowList        [][]byte // login only: credential ids the assertion must match
	ServerState      []byte   // opaque library SessionData blob, round-tripped verbatim
	CreatedAt        time.Time
}
