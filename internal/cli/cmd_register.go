package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/openwrt/webauthn-helper/internal/apperr"
)

func newRegisterBeginCommand(deps *commandDeps) *cobra.Command {
	var username, rpID, userVerification string

	cmd := &cobra.Command{
		Use:   "register-begin",
		Short: "Begin a passkey registration ceremony",
		RunE: func(cmd *cobra.Command, args []string) error {
			if strings.TrimSpace(username) == "" {
				return usageErrorf("register-begin requires --username")
			}
			if strings.TrimSpace(rpID) == "" {
				return usageErrorf("register-begin requires --rp-id")
			}
			if err := validateUVPolicy(userVerification); err != nil {
				return err
			}

			data, err := deps.env.Engine.RegisterBegin(username, rpID, userVerification)
			if err != nil {
				return err
			}
			return deps.emit(data)
		},
	}
	cmd.Flags().StringVar(&username, "username", "", "account username")
	cmd.Flags().StringVar(&rpID, "rp-id", "", "relying party id (DNS name or IP literal)")
	cmd.Flags().StringVar(&userVerification, "user-verification", "preferred", "required|preferred|discouraged")
	return cmd
}

func newRegisterFinishCommand(deps *commandDeps) *cobra.Command {
	var challengeID, origin, deviceName string

	cmd := &cobra.Command{
		Use:   "register-finish",
		Short: "Complete a passkey registration ceremony",
		RunE: func(cmd *cobra.Command, args []string) error {
			if strings.TrimSpace(challengeID) == "" {
				return usageErrorf("register-finish requires --challenge-id")
			}
			if strings.TrimSpace(origin) == "" {
				return usageErrorf("register-finish requires --origin")
			}

			stdin, err := readStdin(deps.stdin)
			if err != nil {
				return err
			}

			data, err := deps.env.Engine.RegisterFinish(challengeID, origin, deviceName, stdin)
			if err != nil {
				return err
			}
			return deps.emit(data)
		},
	}
	cmd.Flags().StringVar(&challengeID, "challenge-id", "", "challenge id returned by register-begin")
	cmd.Flags().StringVar(&origin, "origin", "", "origin reported by the browser")
	cmd.Flags().StringVar(&deviceName, "device-name", "", "human-readable authenticator label")
	return cmd
}

func validateUVPolicy(policy string) error {
	switch policy {
	case "required", "preferred", "discouraged":
		return nil
	default:
		return apperr.InvalidInput("user-verification must be one of required, preferred, discouraged")
	}
}
