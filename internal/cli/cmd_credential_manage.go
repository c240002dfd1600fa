package cli

import (
	"github.com/spf13/cobra"
)

func newCredentialManageCommand(deps *commandDeps) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "credential-manage",
		Short: "Credential lifecycle operations",
	}
	cmd.AddCommand(
		newCredentialListCommand(deps),
		newCredentialDeleteCommand(deps),
		newCredentialUpdateCommand(deps),
		newCredentialCleanupCommand(deps),
	)
	return cmd
}

func newCredentialListCommand(deps *commandDeps) *cobra.Command {
	var username, id string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List enrolled credentials",
		RunE: func(cmd *cobra.Command, args []string) error {
			if username == "" && id == "" {
				return usageErrorf("credential-manage list requires --username or --id")
			}
			data, err := deps.env.Manager.List(username, id)
			if err != nil {
				return err
			}
			return deps.emit(data)
		},
	}
	cmd.Flags().StringVar(&username, "username", "", "account username")
	cmd.Flags().StringVar(&id, "id", "", "list a single credential by id (Base64URL)")
	return cmd
}

func newCredentialDeleteCommand(deps *commandDeps) *cobra.Command {
	var id string

	cmd := &cobra.Command{
		Use:   "delete",
		Short: "Delete a credential",
		RunE: func(cmd *cobra.Command, args []string) error {
			if id == "" {
				return usageErrorf("credential-manage delete requires --id")
			}
			data, err := deps.env.Manager.Delete(id)
			if err != nil {
				return err
			}
			return deps.emit(data)
		},
	}
	cmd.Flags().StringVar(&id, "id", "", "credential id (Base64URL)")
	return cmd
}

func newCredentialUpdateCommand(deps *commandDeps) *cobra.Command {
	var id, name string

	cmd := &cobra.Command{
		Use:   "update",
		Short: "Rename a credential",
		RunE: func(cmd *cobra.Command, args []string) error {
			if id == "" {
				return usageErrorf("credential-manage update requires --id")
			}
			if name == "" {
				return usageErrorf("credential-manage update requires --name")
			}
			data, err := deps.env.Manager.Update(id, name)
			if err != nil {
				return err
			}
			return deps.emit(data)
		},
	}
	cmd.Flags().StringVar(&id, "id", "", "credential id (Base64URL)")
	cmd.Flags().StringVar(&name, "name", "", "new device name")
	return cmd
}

func newCredentialCleanupCommand(deps *commandDeps) *cobra.Command {
	return &cobra.Command{
		Use:   "cleanup",
		Short: "Remove expired challenge files",
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := deps.env.Manager.Cleanup()
			if err != nil {
				return err
			}
			return deps.emit(data)
		},
	}
}
