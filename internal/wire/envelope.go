package wire

import "encoding/json"

// Envelope is the single top-level shape every invocation writes to
// standard output, per spec.md §6.2.
type Envelope struct {
	Success bool           `json:"success"`
	Data    any            `json:"data,omitempty"`
	Error   *EnvelopeError `json:"error,omitempty"`
}

type EnvelopeError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func Success(data any) Envelope {
	return Envelope{Success: true, Data: data}
}

func Failure(code, message string) Envelope {
	return Envelope{Success: false, Error: &EnvelopeError{Code: code, Message: message}}
}

// Marshal renders the envelope as a single compact JSON line, matching
// the one-object-per-invocation contract (spec.md testable property 6).
func Marshal(e Envelope) ([]byte, error) {
	return json.Marshal(e)
}
