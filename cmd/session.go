// ABOUTME: Sign-in commands: login, logout and whoami
// ABOUTME: Login waits for the Google sign-in callback or takes a pasted token

package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/igvshop/igv-admin/internal/auth"
	"github.com/igvshop/igv-admin/internal/config"
	"github.com/igvshop/igv-admin/internal/session"
	"github.com/spf13/cobra"
)

// loginTimeout bounds how long login waits for the browser
const loginTimeout = 5 * time.Minute

var (
	loginToken string
	loginPort  int
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in with Google",
	Long: `Sign in with Google. A link is printed; open it in a browser and the token
is delivered back to a listener on this machine. Use --token to paste a token instead.`,
	Run: func(cmd *cobra.Command, args []string) {
		withSession(func(ctx context.Context, w io.Writer, cfg *config.Config, store *session.Store) int {
			token := loginToken
			if token == "" {
				port := cfg.CallbackPort
				if cmd.Flags().Changed("port") {
					port = loginPort
				}
				srv, err := auth.NewCallbackServer(port)
				if err != nil {
					return fail(w, err)
				}
				srv.Start()
				defer srv.Close()

				token, err = waitForToken(ctx, w, srv, cfg.AuthURL)
				if err != nil {
					return fail(w, err)
				}
			}
			return runLogin(w, store, token)
		})
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Sign out and forget the stored token",
	Run: func(cmd *cobra.Command, args []string) {
		withSession(func(_ context.Context, w io.Writer, _ *config.Config, store *session.Store) int {
			return runLogout(w, store)
		})
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the signed-in account",
	Run: func(cmd *cobra.Command, args []string) {
		withSession(func(_ context.Context, w io.Writer, _ *config.Config, store *session.Store) int {
			return runWhoami(w, store)
		})
	},
}

func init() {
	loginCmd.Flags().StringVar(&loginToken, "token", "", "Use this token instead of the browser sign-in")
	loginCmd.Flags().IntVar(&loginPort, "port", 0, "Loopback port for the sign-in callback (overrides IGV_CALLBACK_PORT)")
	rootCmd.AddCommand(loginCmd, logoutCmd, whoamiCmd)
}

// withSession runs fn with the config and persisted session
func withSession(fn func(ctx context.Context, w io.Writer, cfg *config.Config, store *session.Store) int) {
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
	exitOn(fn(ctx, os.Stdout, cfg, store))
}

// waitForToken prints the sign-in link and blocks until the callback
// delivers a token
func waitForToken(ctx context.Context, w io.Writer, srv *auth.CallbackServer, authURL string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, loginTimeout)
	defer cancel()

	fmt.Fprintf(w, "Open this link in a browser to sign in:\n\n  %s\n\nWaiting for sign-in...\n",
		auth.LoginURL(authURL, srv.RedirectURL()))

	token, err := srv.Wait(ctx)
	if err != nil {
		return "", fmt.Errorf("sign-in did not complete: %w", err)
	}
	return token, nil
}

type whoami struct {
	SignedIn  bool       `json:"signedIn"`
	Subject   string     `json:"subject,omitempty"`
	ExpiresAt *time.Time `json:"expiresAt,omitempty"`
}

func currentIdentity(store *session.Store) whoami {
	if !store.IsLoggedIn() {
		return whoami{}
	}
	exp := store.ExpiresAt()
	return whoami{SignedIn: true, Subject: store.SubjectID(), ExpiresAt: &exp}
}

// runLogin stores token as the session
func runLogin(w io.Writer, store *session.Store, token string) int {
	if err := store.Login(token); err != nil {
		return fail(w, fmt.Errorf("sign-in rejected: %w", err))
	}
	if IsJSONOutput() {
		return printJSON(w, currentIdentity(store))
	}
	fmt.Fprintf(w, "Signed in as %s (session expires %s)\n",
		displaySubject(store.SubjectID()), humanize.Time(store.ExpiresAt()))
	return exitOK
}

// runLogout clears the session
func runLogout(w io.Writer, store *session.Store) int {
	if err := store.Logout(); err != nil {
		return fail(w, err)
	}
	if IsJSONOutput() {
		return printJSON(w, currentIdentity(store))
	}
	fmt.Fprintln(w, "Signed out")
	return exitOK
}

// runWhoami prints the signed-in account, or exits 1 without a session
func runWhoami(w io.Writer, store *session.Store) int {
	id := currentIdentity(store)
	if IsJSONOutput() {
		if code := printJSON(w, id); code != exitOK {
			return code
		}
	} else if id.SignedIn {
		fmt.Fprintf(w, "Signed in as %s\nSession expires %s (%s)\n",
			displaySubject(id.Subject), id.ExpiresAt.Local().Format(time.RFC1123), humanize.Time(*id.ExpiresAt))
	} else {
		fmt.Fprintln(w, "Not signed in")
	}
	if !id.SignedIn {
		return exitNotFound
	}
	return exitOK
}

func displaySubject(subject string) string {
	if subject == "" {
		return "(unknown account)"
	}
	return subject
}
