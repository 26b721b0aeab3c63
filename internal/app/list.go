package app

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/blackwell-systems/catalogctl/internal/api"
	"github.com/blackwell-systems/catalogctl/internal/catalog"
)

func newListCmd() *cobra.Command {
	var (
		search  string
		page    int
		perPage int
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List catalog records (plain text)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireLogin(); err != nil {
				return err
			}
			if perPage == 0 {
				perPage = cfg.Defaults.PerPage
			}
			books, err := client.ListBooks(api.ListOptions{Page: page, PerPage: perPage})
			if err != nil {
				return err
			}
			printBooks(catalog.Filter{Search: search}.Apply(books))
			return nil
		},
	}

	cmd.Flags().StringVarP(&search, "search", "s", "", "Filter by title, author, or genre")
	cmd.Flags().IntVar(&page, "page", 0, "Page number (server default if omitted)")
	cmd.Flags().IntVar(&perPage, "per-page", 0, "Records per page (server default if omitted)")
	return cmd
}

func printBooks(books []catalog.Book) {
	if len(books) == 0 {
		warn("No books found.")
		return
	}

	bold := color.New(color.Bold)
	for _, b := range books {
		avail := color.RedString("unavailable")
		if b.Available {
			avail = color.GreenString("available")
		}
		cover := ""
		if b.HasImage() {
			cover = " ◆"
		}
		fmt.Printf("%s — %s (%d)\n", bold.Sprint(b.Title), b.Author, b.PublicationYear)
		fmt.Printf("  %s  %s  %s%s\n", color.CyanString(b.Genre), b.ISBN, avail, cover)
		fmt.Printf("  %s\n", color.HiBlackString(b.ID))
	}
	fmt.Printf("\n%d book(s)\n", len(books))
}
