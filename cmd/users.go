// ABOUTME: User listing command
// ABOUTME: Users are read-only from the console

package cmd

import (
	"context"
	"io"

	"github.com/igvshop/igv-admin/internal/client"
	"github.com/spf13/cobra"
)

var userFilter client.ListFilter

var usersCmd = &cobra.Command{
	Use:   "users",
	Short: "Review customer accounts",
}

var usersListCmd = &cobra.Command{
	Use:   "list",
	Short: "List users",
	Run: func(cmd *cobra.Command, args []string) {
		withClient(func(ctx context.Context, w io.Writer, c *client.Client) int {
			return runUsersList(ctx, w, c, userFilter)
		})
	},
}

func init() {
	addListFlags(usersListCmd, &userFilter)
	usersCmd.AddCommand(usersListCmd)
	rootCmd.AddCommand(usersCmd)
}

// runUsersList prints one page of users
func runUsersList(ctx context.Context, w io.Writer, c *client.Client, f client.ListFilter) int {
	page, err := c.Users.List(ctx, f)
	if err != nil {
		return fail(w, err)
	}
	return printPage(w, page, []string{"ID", "Name", "Email", "Google ID"}, func(u client.User) []string {
		return []string{u.ID.String(), u.Name, u.Email, u.GoogleID}
	})
}
