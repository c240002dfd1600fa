package cli

import "github.com/spf13/cobra"

func newHealthCheckCommand(deps *commandDeps) *cobra.Command {
	return &cobra.Command{
		Use:   "health-check",
		Short: "Probe credential store writability",
		RunE: func(cmd *cobra.Command, args []string) error {
			return deps.emit(deps.env.Manager.HealthCheck())
		},
	}
}
