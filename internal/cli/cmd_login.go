package cli

import (
	"strings"

	"github.com/spf13/cobra"
)

func newLoginBeginCommand(deps *commandDeps) *cobra.Command {
	var username, rpID string

	cmd := &cobra.Command{
		Use:   "login-begin",
		Short: "Begin a passkey authentication ceremony",
		RunE: func(cmd *cobra.Command, args []string) error {
			if strings.TrimSpace(username) == "" {
				return usageErrorf("login-begin requires --username")
			}
			if strings.TrimSpace(rpID) == "" {
				return usageErrorf("login-begin requires --rp-id")
			}

			data, err := deps.env.Engine.LoginBegin(username, rpID)
			if err != nil {
				return err
			}
			return deps.emit(data)
		},
	}
	cmd.Flags().StringVar(&username, "username", "", "account username")
	cmd.Flags().StringVar(&rpID, "rp-id", "", "relying party id (DNS name or IP literal)")
	return cmd
}

func newLoginFinishCommand(deps *commandDeps) *cobra.Command {
	var challengeID, origin string

	cmd := &cobra.Command{
		Use:   "login-finish",
		Short: "Complete a passkey authentication ceremony",
		RunE: func(cmd *cobra.Command, args []string) error {
			if strings.TrimSpace(challengeID) == "" {
				return usageErrorf("login-finish requires --challenge-id")
			}
			if strings.TrimSpace(origin) == "" {
				return usageErrorf("login-finish requires --origin")
			}

			stdin, err := readStdin(deps.stdin)
			if err != nil {
				return err
			}

			data, err := deps.env.Engine.LoginFinish(challengeID, origin, stdin)
			if err != nil {
				return err
			}
			return deps.emit(data)
		},
	}
	cmd.Flags().StringVar(&challengeID, "challenge-id", "", "challenge id returned by login-begin")
	cmd.Flags().StringVar(&origin, "origin", "", "origin reported by the browser")
	return cmd
}
