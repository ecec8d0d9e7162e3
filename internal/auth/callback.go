// ABOUTME: Loopback HTTP listener that receives the bearer token after Google sign-in
// ABOUTME: The backend redirects the browser to /callback/{nonce}?token=... on this server

package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// ErrServerClosed is returned by Wait when the server shut down before a token arrived
var ErrServerClosed = errors.New("callback server closed")

const confirmationPage = `<!doctype html>
<html><head><title>IGV Admin</title></head>
<body style="font-family: sans-serif">
<h2>Signed in</h2>
<p>You can close this window and return to the terminal.</p>
</body></html>
`

// LoginURL returns the sign-in URL that sends the browser back to redirect
func LoginURL(authBase, redirect string) string {
	q := url.Values{}
	q.Set("redirect", redirect)
	return strings.TrimRight(authBase, "/") + "/auth/google?" + q.Encode()
}

// CallbackServer accepts exactly one token on a nonce-protected path
type CallbackServer struct {
	nonce    string
	listener net.Listener
	server   *http.Server
	tokens   chan string
	done     chan struct{}
}

// NewCallbackServer listens on 127.0.0.1:port; port 0 picks a free port
func NewCallbackServer(port int) (*CallbackServer, error) {
	listener, err := net.Listen("tcp", fmt.Sprintf("127.0.0.1:%d", port))
	if err != nil {
		return nil, fmt.Errorf("failed to listen for login callback: %w", err)
	}

	s := &CallbackServer{
		nonce:    uuid.NewString(),
		listener: listener,
		tokens:   make(chan string, 1),
		done:     make(chan struct{}),
	}

	r := chi.NewRouter()
	r.Use(logRequest)
	r.Get("/callback/{nonce}", s.handleCallback)
	s.server = &http.Server{
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s, nil
}

// Start serves callbacks in the background until Close
func (s *CallbackServer) Start() {
	go func() {
		defer close(s.done)
		if err := s.server.Serve(s.listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("login callback server stopped", "error", err)
		}
	}()
}

// RedirectURL is the address the backend must send the browser back to
func (s *CallbackServer) RedirectURL() string {
	return fmt.Sprintf("http://%s/callback/%s", s.listener.Addr().String(), s.nonce)
}

// Wait blocks until a token arrives or ctx ends
func (s *CallbackServer) Wait(ctx context.Context) (string, error) {
	select {
	case tok := <-s.tokens:
		return tok, nil
	case <-s.done:
		select {
		case tok := <-s.tokens:
			return tok, nil
		default:
			return "", ErrServerClosed
		}
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

// Close stops the listener
func (s *CallbackServer) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	return s.server.Shutdown(ctx)
}

func (s *CallbackServer) handleCallback(w http.ResponseWriter, r *http.Request) {
	if chi.URLParam(r, "nonce") != s.nonce {
		http.NotFound(w, r)
		return
	}

	token := r.URL.Query().Get("token")
	if token == "" {
		token = r.URL.Query().Get("access_token")
	}
	if token == "" {
		http.Error(w, "missing token", http.StatusBadRequest)
		return
	}

	select {
	case s.tokens <- token:
		slog.Debug("login callback received token")
	default:
		slog.Debug("login callback ignored duplicate token")
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprint(w, confirmationPage)
}
