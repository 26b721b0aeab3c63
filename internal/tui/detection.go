package tui

import (
	"github.com/spf13/cobra"

	"github.com/blackwell-systems/catalogctl/internal/util"
)

// ShouldUseTUI returns true if the command should use interactive TUI mode.
// TUI mode is enabled when stdout is a TTY (not piped or redirected) and
// --no-interactive is not set.
func ShouldUseTUI(cmd *cobra.Command) bool {
	if !util.IsTTY() {
		return false
	}
	noInteractive, _ := cmd.Flags().GetBool("no-interactive")
	return !noInteractive
}
