// Command webauthn-helper is the stateless CLI entry point: one
// invocation, one operation, one JSON envelope on stdout.
package main

import (
	"os"

	"github.com/openwrt/webauthn-helper/internal/cli"
)

func main() {
	os.Exit(cli.Run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}
