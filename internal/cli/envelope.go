package cli

import (
	"fmt"
	"io"

	"github.com/openwrt/webauthn-helper/internal/wire"
)

// writeEnvelope renders exactly one envelope object, per spec.md
// testable property 6. Passing a non-nil errDescriptor writes a
// failure envelope and ignores data.
func writeEnvelope(w io.Writer, data any, errDescriptor *wire.EnvelopeError) error {
	var envelope wire.Envelope
	if errDescriptor != nil {
		envelope = wire.Envelope{Success: false, Error: errDescriptor}
	} else {
		envelope = wire.Success(data)
	}

	encoded, err := wire.Marshal(envelope)
	if err != nil {
		// Marshaling our own envelope types cannot fail in practice;
		// fall back to a minimal hand-written object rather than
		// emitting nothing, to preserve envelope totality.
		_, ferr := fmt.Fprintf(w, `{"success":false,"error":{"code":"INTERNAL_ERROR","message":"failed to encode response"}}`+"\n")
		if ferr != nil {
			return ferr
		}
		return err
	}

	_, err = fmt.Fprintln(w, string(encoded))
	return err
}

func writeFailureEnvelope(w io.Writer, code, message string) error {
	return writeEnvelope(w, nil, &wire.EnvelopeError{Code: code, Message: message})
}
