// ABOUTME: Tests for the login, logout and whoami commands
// ABOUTME: Uses in-memory session storage and a real loopback callback

package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/igvshop/igv-admin/internal/auth"
	"github.com/igvshop/igv-admin/internal/session"
)

func signToken(t *testing.T, exp time.Time, subject string) string {
	t.Helper()
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"exp":      exp.Unix(),
		"googleId": subject,
	}).SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}
	return tok
}

func TestLoginWhoamiLogout(t *testing.T) {
	storage := session.NewMemoryStorage()
	store := session.New(storage)

	var buf bytes.Buffer
	if code := runWhoami(&buf, store); code != exitNotFound {
		t.Errorf("expected exit 1 before sign-in, got %d", code)
	}
	if !strings.Contains(buf.String(), "Not signed in") {
		t.Errorf("unexpected output %q", buf.String())
	}

	buf.Reset()
	if code := runLogin(&buf, store, signToken(t, time.Now().Add(time.Hour), "google-42")); code != exitOK {
		t.Fatalf("expected exit 0, got %d: %s", code, buf.String())
	}
	if !strings.Contains(buf.String(), "Signed in as google-42") {
		t.Errorf("unexpected output %q", buf.String())
	}
	if storage.Values[session.KeyToken] == "" {
		t.Error("expected token persisted")
	}

	buf.Reset()
	if code := runWhoami(&buf, store); code != exitOK {
		t.Errorf("expected exit 0 when signed in, got %d", code)
	}
	if !strings.Contains(buf.String(), "google-42") {
		t.Errorf("unexpected output %q", buf.String())
	}

	buf.Reset()
	if code := runLogout(&buf, store); code != exitOK {
		t.Fatalf("expected exit 0, got %d", code)
	}
	if store.IsLoggedIn() {
		t.Error("expected session cleared")
	}
}

func TestLogin_RejectsBadTokens(t *testing.T) {
	tests := []struct {
		name  string
		token string
		want  string
	}{
		{"malformed", "not-a-token", "malformed token"},
		{"expired", "", "already expired"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token := tt.token
			if token == "" {
				token = signToken(t, time.Now().Add(-time.Minute), "g")
			}
			storage := session.NewMemoryStorage()
			store := session.New(storage)

			var buf bytes.Buffer
			if code := runLogin(&buf, store, token); code != exitError {
				t.Errorf("expected exit 2, got %d", code)
			}
			if !strings.Contains(buf.String(), tt.want) {
				t.Errorf("expected %q in output, got %q", tt.want, buf.String())
			}
			if storage.Writes != 0 {
				t.Errorf("expected nothing persisted, got %d writes", storage.Writes)
			}
		})
	}
}

func TestWhoami_JSON(t *testing.T) {
	jsonOutput = true
	defer func() { jsonOutput = false }()

	store := session.New(session.NewMemoryStorage())
	if err := store.Login(signToken(t, time.Now().Add(time.Hour), "google-42")); err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if code := runWhoami(&buf, store); code != exitOK {
		t.Fatalf("expected exit 0, got %d", code)
	}
	var got map[string]any
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if got["signedIn"] != true || got["subject"] != "google-42" {
		t.Errorf("unexpected output %v", got)
	}
}

type brokenWriter struct{}

func (brokenWriter) Write([]byte) (int, error) {
	return 0, errors.New("broken pipe")
}

func TestWhoami_JSONWriteFailure(t *testing.T) {
	jsonOutput = true
	defer func() { jsonOutput = false }()

	store := session.New(session.NewMemoryStorage())
	if err := store.Login(signToken(t, time.Now().Add(time.Hour), "google-42")); err != nil {
		t.Fatal(err)
	}

	if code := runWhoami(brokenWriter{}, store); code != exitError {
		t.Errorf("expected exit %d when output cannot be written, got %d", exitError, code)
	}
}

func TestWaitForToken(t *testing.T) {
	srv, err := auth.NewCallbackServer(0)
	if err != nil {
		t.Fatalf("failed to start callback server: %v", err)
	}
	srv.Start()
	defer srv.Close()

	go func() {
		resp, err := http.Get(srv.RedirectURL() + "?token=tok-123")
		if err == nil {
			resp.Body.Close()
		}
	}()

	var buf bytes.Buffer
	token, err := waitForToken(context.Background(), &buf, srv, "http://localhost:5000")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if token != "tok-123" {
		t.Errorf("expected tok-123, got %q", token)
	}
	if !strings.Contains(buf.String(), "http://localhost:5000/auth/google?redirect=") {
		t.Errorf("expected login link in output:\n%s", buf.String())
	}
}

func TestWaitForToken_Canceled(t *testing.T) {
	srv, err := auth.NewCallbackServer(0)
	if err != nil {
		t.Fatalf("failed to start callback server: %v", err)
	}
	srv.Start()
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var buf bytes.Buffer
	if _, err := waitForToken(ctx, &buf, srv, "http://localhost:5000"); err == nil {
		t.Error("expected error when canceled")
	}
}
