package app

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/catalogctl/internal/config"
	"github.com/blackwell-systems/catalogctl/internal/session"
)

func newLoginCmd() *cobra.Command {
	var (
		username string
		password string
	)

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and cache an access token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var err error
			if username == "" {
				if username, err = promptLine("Username: "); err != nil {
					return err
				}
			}
			if password == "" {
				if password, err = promptLine("Password: "); err != nil {
					return err
				}
			}

			result, err := client.Login(username, password)
			if err != nil {
				return fmt.Errorf("login failed: %w", err)
			}

			s := &session.Session{
				AccessToken: result.AccessToken,
				User: session.User{
					ID:           result.User.ID,
					Username:     result.User.Username,
					EmailAddress: result.User.EmailAddress,
				},
			}
			if err := session.Save(config.SessionPath(), s); err != nil {
				return fmt.Errorf("saving session: %w", err)
			}

			ok("logged in as %s", result.User.Username)
			return nil
		},
	}

	cmd.Flags().StringVarP(&username, "username", "u", "", "Account username")
	cmd.Flags().StringVarP(&password, "password", "p", "", "Account password (prompted if omitted)")
	return cmd
}

func promptLine(prompt string) (string, error) {
	fmt.Print(prompt)
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}
