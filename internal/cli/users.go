package cli

import (
	"github.com/spf13/cobra"

	"github.com/localtalent/console/internal/table"
)

func (r *runner) usersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "users",
		Short: "Manage user accounts (admin)",
	}
	cmd.AddCommand(
		r.listCmd(table.EndpointUser, "List user accounts"),
		r.actionCmd(table.EndpointUser, table.ActionDelete, "Delete a user account"),
	)
	return cmd
}
