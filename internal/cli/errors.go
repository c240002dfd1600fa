package cli

import (
	"errors"

	"github.com/openwrt/webauthn-helper/internal/apperr"
)

// usageError marks an argument-parsing failure; cobra surfaces it
// through the same RunE error path as any other command failure, and
// mapCommandError below assigns it INVALID_INPUT.
type usageError struct{ message string }

func (e *usageError) Error() string { return e.message }

func usageErrorf(message string) error {
	return &usageError{message: message}
}

// mapCommandError is the dispatcher's single translation point from
// an arbitrary Go error to a wire (code, message) pair, modeled on the
// teacher's internal/cli/errors.go: mapCommandError, generalized from
// gRPC status codes to this helper's own apperr taxonomy.
func mapCommandError(err error) (code string, message string) {
	if err == nil {
		return "", ""
	}

	var usage *usageError
	if errors.As(err, &usage) {
		return string(apperr.CodeInvalidInput), usage.message
	}

	var appErr *apperr.Error
	if errors.As(err, &appErr) {
		return string(appErr.Code), appErr.Message
	}

	return string(apperr.CodeInternalError), err.Error()
}
