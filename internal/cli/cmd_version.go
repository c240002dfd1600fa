package cli

import (
	"github.com/spf13/cobra"

	"github.com/openwrt/webauthn-helper/internal/version"
	"github.com/openwrt/webauthn-helper/internal/wire"
)

// newVersionCommand prints build metadata as an envelope, mirroring
// the teacher's `heimdall version --json` (internal/cli/root.go:
// newVersionCommand) but always through the envelope, since this
// helper has no human-readable output mode (spec.md §6.2 is the only
// wire contract it speaks).
func newVersionCommand(deps *commandDeps) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build version information",
		RunE: func(cmd *cobra.Command, args []string) error {
			info := version.Current()
			return deps.emit(wire.VersionData{
				Version:   info.Version,
				Commit:    info.Commit,
				BuildTime: info.BuildTime,
			})
		},
	}
}
