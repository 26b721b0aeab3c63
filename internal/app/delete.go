package app

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/catalogctl/internal/util"
)

func newDeleteCmd() *cobra.Command {
	var skipConfirm bool

	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a catalog record",
		Long: `Delete a book record from the catalog by its identifier.

This action is DESTRUCTIVE and cannot be undone.

Examples:
  catalogctl delete 68a1f0c2e4b0a21f33c7d9aa
  catalogctl delete 68a1f0c2e4b0a21f33c7d9aa --yes`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireLogin(); err != nil {
				return err
			}
			id := args[0]

			if !skipConfirm {
				if !util.IsTTY() {
					return fmt.Errorf("--yes required in non-interactive mode")
				}
				fmt.Printf("Are you sure you want to delete book %s? (y/n): ", id)
				var confirm string
				fmt.Scanln(&confirm)
				if confirm != "y" && confirm != "Y" && confirm != "yes" {
					warn("Cancelled.")
					return nil
				}
			}

			if err := client.DeleteBook(id); err != nil {
				return err
			}
			ok("book %s deleted", id)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&skipConfirm, "yes", "y", false, "Skip confirmation prompt")
	return cmd
}
