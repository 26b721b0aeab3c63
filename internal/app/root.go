package app

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/blackwell-systems/catalogctl/internal/api"
	"github.com/blackwell-systems/catalogctl/internal/cache"
	"github.com/blackwell-systems/catalogctl/internal/config"
	"github.com/blackwell-systems/catalogctl/internal/session"
	"github.com/blackwell-systems/catalogctl/internal/tui"
	"github.com/blackwell-systems/catalogctl/internal/unified"
	"github.com/blackwell-systems/catalogctl/internal/util"
)

var (
	cfg    *config.Config
	client *api.Client
	sess   *session.Session
	logger *logrus.Logger

	flagNoColor       bool
	flagNoInteractive bool
	flagConfig        string
)

var rootCmd = &cobra.Command{
	Use:   "catalogctl",
	Short: "Manage a hosted library catalog from the terminal",
	Long: `catalogctl is a client for a library catalog server: list, search,
add, edit and delete book records, with optional cover images hosted by the
server's image service.

All records live on the server; catalogctl keeps nothing locally except your
access token and cached profile.

Run 'catalogctl' with no arguments to launch the interactive browser.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		if tui.ShouldUseTUI(cmd) {
			return runBrowser()
		}
		return cmd.Help()
	},
}

// Execute is the entry point called from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, color.RedString("error:"), err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&flagNoColor, "no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().BoolVar(&flagNoInteractive, "no-interactive", false, "Disable interactive TUI mode")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Config file path (default: ~/.config/catalogctl/config.yml)")

	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		util.InitColor(flagNoColor)

		if flagConfig != "" {
			_ = os.Setenv("CATALOGCTL_CONFIG", flagConfig)
		}

		var err error
		cfg, err = config.Load()
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}

		logger = newLogger(cfg.Log.File)

		// A missing or unreadable session just means "not logged in".
		sess, _ = session.Load(config.SessionPath())

		token := ""
		if sess != nil {
			token = sess.AccessToken
		}
		client = api.New(cfg.API.BaseURL, token)
		return nil
	}

	rootCmd.AddCommand(
		newLoginCmd(),
		newRegisterCmd(),
		newLogoutCmd(),
		newWhoamiCmd(),
		newBrowseCmd(),
		newListCmd(),
		newDeleteCmd(),
		newVersionCmd(),
	)
}

// requireLogin errors out early with a hint instead of letting every
// protected request fail with a bare 401.
func requireLogin() error {
	if sess == nil || sess.AccessToken == "" {
		return fmt.Errorf("not logged in — run 'catalogctl login' first")
	}
	return nil
}

// runBrowser launches the interactive book manager.
func runBrowser() error {
	if err := requireLogin(); err != nil {
		return err
	}
	return unified.Run(unified.Deps{
		Client: client,
		Cfg:    cfg,
		Covers: cache.NewCovers(cfg.Cache.Dir),
		Log:    logger,
	})
}

// newLogger writes diagnostics to the state-dir log file. Falling back to
// discard keeps best-effort warnings out of the TUI's screen if the file
// cannot be opened.
func newLogger(path string) *logrus.Logger {
	l := logrus.New()
	l.SetLevel(logrus.InfoLevel)
	l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	if err := os.MkdirAll(filepath.Dir(path), 0755); err == nil {
		if f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644); err == nil {
			l.SetOutput(f)
			return l
		}
	}
	l.SetOutput(io.Discard)
	return l
}

// ok prints a green success line.
func ok(format string, a ...interface{}) {
	fmt.Println(color.GreenString("✓"), fmt.Sprintf(format, a...))
}

// warn prints a yellow warning line.
func warn(format string, a ...interface{}) {
	fmt.Fprintln(os.Stderr, color.YellowString("!"), fmt.Sprintf(format, a...))
}
