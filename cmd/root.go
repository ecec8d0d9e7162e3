// ABOUTME: Root command for the igv-admin CLI
// ABOUTME: Handles global flags, configuration and the shared session and client setup

package cmd

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/igvshop/igv-admin/internal/client"
	"github.com/igvshop/igv-admin/internal/config"
	"github.com/igvshop/igv-admin/internal/logger"
	"github.com/igvshop/igv-admin/internal/session"
	"github.com/spf13/cobra"
)

var (
	apiURL     string
	apiRoot    string
	jsonOutput bool
	debugLog   bool
)

// Exit codes
const (
	exitOK       = 0
	exitNotFound = 1 // missing record or no session
	exitError    = 2
)

// rootCmd is the base command
var rootCmd = &cobra.Command{
	Use:   "igv-admin",
	Short: "Admin console for the IGV shop",
	Long: `igv-admin manages the IGV shop catalog and reviews orders and users.

Run without a subcommand to open the interactive console.

Environment Variables:
  IGV_API_URL          REST API base (default: http://localhost:5000/api)
  IGV_API_ROOT         Host serving /orders and /auth (default: http://localhost:5000)
  IGV_AUTH_URL         Host serving /auth/google (default: IGV_API_ROOT)
  IGV_CONFIG_DIR       Session and debug log directory (default: ~/.config/igv-admin)
  IGV_REQUEST_TIMEOUT  Per-request timeout in seconds (default: 30)
  IGV_CALLBACK_PORT    Loopback port for the sign-in callback (default: any)
  IGV_LOG_LEVEL        debug, info, warn, error (default: warn)`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger.Init(os.Stderr, debugLog)
	},
	Run: func(cmd *cobra.Command, args []string) {
		exitOn(runTUI())
	},
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&apiURL, "api-url", "", "REST API base URL (overrides IGV_API_URL)")
	rootCmd.PersistentFlags().StringVar(&apiRoot, "api-root", "", "API root serving orders and auth (overrides IGV_API_ROOT)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output JSON instead of human-readable text")
	rootCmd.PersistentFlags().BoolVar(&debugLog, "debug", false, "Log requests to stderr")
}

// loadConfig reads the environment and applies flag overrides
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if apiURL != "" {
		cfg.APIURL = apiURL
	}
	if apiRoot != "" {
		cfg.APIRoot = apiRoot
		if os.Getenv("IGV_AUTH_URL") == "" {
			cfg.AuthURL = apiRoot
		}
	}
	return cfg, nil
}

// openSession restores the persisted session from the config directory
func openSession(cfg *config.Config) (*session.Store, error) {
	store := session.New(session.NewFileStorage(cfg.ConfigDir))
	if err := store.Restore(); err != nil {
		return nil, err
	}
	return store, nil
}

// newClient builds an API client that authenticates with store
func newClient(cfg *config.Config, store *session.Store) *client.Client {
	return client.New(cfg.APIURL, cfg.APIRoot,
		client.WithTimeout(cfg.RequestTimeout),
		client.WithTokenSource(store),
	)
}

// IsJSONOutput returns whether JSON output is requested
func IsJSONOutput() bool {
	return jsonOutput
}

// withClient runs fn with a signal-aware context and a client for the
// signed-in operator. Without a session it exits 1.
func withClient(fn func(ctx context.Context, w io.Writer, c *client.Client) int) {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(exitError)
	}
	store, err := openSession(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(exitError)
	}
	if !store.IsLoggedIn() {
		fmt.Fprintln(os.Stderr, "Not signed in. Run 'igv-admin login' first.")
		os.Exit(exitNotFound)
	}

	exitOn(fn(ctx, os.Stdout, newClient(cfg, store)))
}

func exitOn(code int) {
	if code != exitOK {
		os.Exit(code)
	}
}

// fail prints err and returns the matching exit code
func fail(w io.Writer, err error) int {
	fmt.Fprintf(w, "Error: %v\n", err)
	if client.StatusCode(err) == http.StatusNotFound {
		return exitNotFound
	}
	return exitError
}
