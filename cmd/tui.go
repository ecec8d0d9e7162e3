// ABOUTME: Command that opens the interactive console
// ABOUTME: Logs go to a file in the config directory while the alternate screen is up

package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/igvshop/igv-admin/internal/tui"
	"github.com/igvshop/igv-admin/internal/tui/debuglog"
	"github.com/spf13/cobra"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Open the interactive console",
	Run: func(cmd *cobra.Command, args []string) {
		exitOn(runTUI())
	},
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

// runTUI starts the console and returns the exit code
func runTUI() int {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return exitError
	}
	store, err := openSession(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return exitError
	}

	level := slog.LevelInfo
	if debugLog {
		level = slog.LevelDebug
	}
	if err := debuglog.Init(cfg.ConfigDir, level); err != nil {
		fmt.Fprintf(os.Stderr, "Error: cannot open debug log: %v\n", err)
		return exitError
	}
	defer debuglog.Close()

	opts := tui.Options{AuthURL: cfg.AuthURL, CallbackPort: cfg.CallbackPort}
	if err := tui.Run(newClient(cfg, store), store, opts); err != nil {
		slog.Error("console stopped", "error", err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return exitError
	}
	return exitOK
}
