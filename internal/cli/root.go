// Package cli wires cobra's command tree to the engine and management
// layers, in the teacher's dispatcher idiom (internal/cli/root.go),
// generalized from a daemon-backed multi-purpose CLI to a single-shot
// stateless helper: one command, one envelope, one exit.
package cli

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/openwrt/webauthn-helper/internal/version"
	"github.com/openwrt/webauthn-helper/internal/wire"
)

func newRootCommand(deps *commandDeps, logWriter io.Writer) *cobra.Command {
	var showVersion bool

	cmd := &cobra.Command{
		Use:           "webauthn-helper",
		Short:         "WebAuthn relying-party helper for OpenWrt",
		SilenceUsage:  true,
		SilenceErrors: true,
		// PersistentPreRunE runs after flag parsing but before any
		// subcommand's RunE, so --root is known before the stores and
		// engine it selects are constructed.
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Name() == "version" || cmd.Parent() == nil {
				return nil
			}
			env, err := newRuntimeEnv(deps.globals, logWriter)
			if err != nil {
				return err
			}
			deps.env = env
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if showVersion {
				info := version.Current()
				return deps.emit(wire.VersionData{Version: info.Version, Commit: info.Commit, BuildTime: info.BuildTime})
			}
			return cmd.Help()
		},
	}
	cmd.Flags().BoolVar(&showVersion, "version", false, "print build version information")
	cmd.PersistentFlags().StringVar(&deps.globals.RootOverride, "root", "", "override the /etc/webauthn, /tmp/webauthn prefix (testing only)")

	cmd.AddCommand(
		newRegisterBeginCommand(deps),
		newRegisterFinishCommand(deps),
		newLoginBeginCommand(deps),
		newLoginFinishCommand(deps),
		newCredentialManageCommand(deps),
		newHealthCheckCommand(deps),
		newVersionCommand(deps),
	)
	return cmd
}
