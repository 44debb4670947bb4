// ABOUTME: TUI command launching the interactive interface
// ABOUTME: Logs go to a file in the config directory so they do not corrupt the screen

package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/Depaula010/meusecretariofront/internal/logger"
	"github.com/Depaula010/meusecretariofront/internal/tui"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive interface",
	Long: `Launch the interactive terminal interface.

Screens follow the same routes and guards as the web client: you start at
the login screen unless a session is stored, and an expired session sends
you back to login and then to where you were.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGTERM)
		defer cancel()

		if exitCode := runTUI(ctx, os.Stderr); exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

// runTUI starts the interactive interface and returns exit code
func runTUI(ctx context.Context, w io.Writer) int {
	cfg, err := loadConfig()
	if err != nil {
		return setupError(w, err)
	}

	f, err := logger.OpenFile(cfg.ConfigDir)
	if err != nil {
		return setupError(w, fmt.Errorf("opening log file: %w", err))
	}
	defer f.Close()
	logOutput = f

	d, err := newDeps()
	if err != nil {
		return setupError(w, err)
	}
	d.logger.Info("Starting TUI", "api_url", cfg.BaseURL())

	err = tui.Run(ctx, tui.Options{
		API:      d.api,
		Auth:     d.auth,
		Sessions: d.sessions,
		Nav:      d.nav,
	})
	if err != nil {
		d.logger.Error("TUI exited with error", "error", err)
		return setupError(w, err)
	}
	return exitOK
}
