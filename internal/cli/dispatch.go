package cli

import (
	"fmt"
	"io"

	"github.com/openwrt/webauthn-helper/internal/apperr"
)

// Run is the single top-level entry point named in spec.md §4.7: parse
// arguments, execute inside a panic-catching barrier, and emit exactly
// one envelope to stdout before returning the process exit code.
func Run(args []string, stdin io.Reader, stdout, stderr io.Writer) (exitCode int) {
	defer func() {
		if r := recover(); r != nil {
			_ = writeFailureEnvelope(stdout, string(apperr.CodeInternalError), fmt.Sprintf("panic: %v", r))
			exitCode = 1
		}
	}()

	deps := &commandDeps{
		globals: &GlobalOptions{},
		out:     stdout,
		stdin:   stdin,
	}

	root := newRootCommand(deps, stderr)
	root.SetArgs(args)
	root.SetOut(stderr)
	root.SetErr(stderr)

	if err := root.Execute(); err != nil {
		code, message := mapCommandError(err)
		_ = writeFailureEnvelope(stdout, code, message)
		return 1
	}
	return 0
}
