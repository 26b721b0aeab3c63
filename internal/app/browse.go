package app

import (
	"github.com/spf13/cobra"

	"github.com/blackwell-systems/catalogctl/internal/api"
	"github.com/blackwell-systems/catalogctl/internal/catalog"
	"github.com/blackwell-systems/catalogctl/internal/tui"
)

func newBrowseCmd() *cobra.Command {
	var search string

	cmd := &cobra.Command{
		Use:     "browse",
		Aliases: []string{"ls"},
		Short:   "Browse the catalog (interactive TUI or text output)",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireLogin(); err != nil {
				return err
			}
			if tui.ShouldUseTUI(cmd) {
				return runBrowser()
			}
			// Piped or --no-interactive: plain text listing.
			books, err := client.ListBooks(api.ListOptions{PerPage: cfg.Defaults.PerPage})
			if err != nil {
				return err
			}
			printBooks(catalog.Filter{Search: search}.Apply(books))
			return nil
		},
	}

	cmd.Flags().StringVarP(&search, "search", "s", "", "Filter by title, author, or genre (text mode)")
	return cmd
}
