// Package apperr defines the wire error taxonomy shared by every component
// below the dispatcher. Every component returns a tagged *Error; the
// dispatcher is the single point that turns one into the error envelope.
package apperr

import (
	"errors"
	"fmt"
)

// Code is one of the enum values surfaced on the wire in error.code.
type Code string

const (
	CodeChallengeNotFound  Code = "CHALLENGE_NOT_FOUND"
	CodeUserNotFound       Code = "USER_NOT_FOUND"
	CodeCredentialNotFound Code = "CREDENTIAL_NOT_FOUND"
	CodeInvalidOrigin      Code = "INVALID_ORIGIN"
	CodeWebAuthnError      Code = "WEBAUTHN_ERROR"
	CodeStorageError       Code = "STORAGE_ERROR"
	CodeJSONError          Code = "JSON_ERROR"
	CodeIOError            Code = "IO_ERROR"
	CodeInvalidInput       Code = "INVALID_INPUT"
	CodeInternalError      Code = "INTERNAL_ERROR"
)

// Error is the single error type every component constructs and returns.
// It is never panicked; the dispatcher's panic barrier is reserved for
// truly unreachable conditions.
type Error struct {
	Code    Code
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err == nil {
		return e.Message
	}
	if e.Message == "" {
		return e.Err.Error()
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Err)
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// CodeOf reports the wire code carried by err, defaulting to
// CodeInternalError for an error that never went through New/Wrap.
func CodeOf(err error) Code {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return CodeInternalError
}

func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

func Newf(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

func Wrap(code Code, message string, cause error) *Error {
	return &Error{Code: code, Message: message, Err: cause}
}

func Is(err error, code Code) bool {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Code == code
	}
	return false
}

func ChallengeNotFound() *Error {
	return New(CodeChallengeNotFound, "challenge not found or expired")
}

func UserNotFound(username string) *Error {
	return Newf(CodeUserNotFound, "no credentials enrolled for user %q", username)
}

func CredentialNotFound() *Error {
	return New(CodeCredentialNotFound, "credential not found")
}

func InvalidOrigin(origin, rpID string) *Error {
	return Newf(CodeInvalidOrigin, "origin %q does not bind to rp id %q", origin, rpID)
}

func WebAuthnFailed(message string, cause error) *Error {
	if message == "" {
		message = "webauthn verification failed"
	}
	return Wrap(CodeWebAuthnError, message, cause)
}

func StorageFailed(message string, cause error) *Error {
	return Wrap(CodeStorageError, message, cause)
}

func JSONFailed(message string, cause error) *Error {
	return Wrap(CodeJSONError, message, cause)
}

func IOFailed(message string, cause error) *Error {
	return Wrap(CodeIOError, message, cause)
}

func InvalidInput(message string) *Error {
	return New(CodeInvalidInput, message)
}

func Internal(message string) *Error {
	return New(CodeInternalError, message)
}
