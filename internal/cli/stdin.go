package cli

import (
	"io"

	"github.com/openwrt/webauthn-helper/internal/apperr"
)

// maxStdinBytes bounds finish-operation stdin reads per spec.md §5:
// "bounded: cap at 1 MiB; exceed -> INVALID_INPUT".
const maxStdinBytes = 1 << 20

func readStdin(r io.Reader) ([]byte, error) {
	limited := io.LimitReader(r, maxStdinBytes+1)
	data, err := io.ReadAll(limited)
	if err != nil {
		return nil, apperr.IOFailed("read stdin", err)
	}
	if len(data) > maxStdinBytes {
		return nil, apperr.InvalidInput("stdin exceeds the 1 MiB limit")
	}
	if len(data) == 0 {
		return nil, apperr.InvalidInput("expected a JSON document on stdin")
	}
	return data, nil
}
