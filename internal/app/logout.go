package app

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/catalogctl/internal/config"
	"github.com/blackwell-systems/catalogctl/internal/session"
)

func newLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the cached access token and profile",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := session.Clear(config.SessionPath()); err != nil {
				return fmt.Errorf("clearing session: %w", err)
			}
			ok("logged out")
			return nil
		},
	}
}

func newWhoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the cached profile",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if sess == nil {
				return fmt.Errorf("not logged in")
			}
			fmt.Printf("%s <%s>\n", sess.User.Username, sess.User.EmailAddress)
			return nil
		},
	}
}
