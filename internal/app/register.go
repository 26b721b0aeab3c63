package app

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newRegisterCmd() *cobra.Command {
	var (
		username string
		email    string
		password string
	)

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create a new account on the catalog server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var err error
			if username == "" {
				if username, err = promptLine("Username: "); err != nil {
					return err
				}
			}
			if email == "" {
				if email, err = promptLine("Email address: "); err != nil {
					return err
				}
			}
			if password == "" {
				if password, err = promptLine("Password: "); err != nil {
					return err
				}
			}

			user, err := client.Register(username, email, password)
			if err != nil {
				return fmt.Errorf("registration failed: %w", err)
			}

			ok("account %s created", user.Username)
			fmt.Println("Log in with: catalogctl login")
			return nil
		},
	}

	cmd.Flags().StringVarP(&username, "username", "u", "", "Account username")
	cmd.Flags().StringVarP(&email, "email", "e", "", "Email address")
	cmd.Flags().StringVarP(&password, "password", "p", "", "Account password (prompted if omitted)")
	return cmd
}
