// ABOUTME: Tests for the sign-in screen
// ABOUTME: Drives the model with synthetic messages and a real loopback callback

package login

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/igvshop/igv-admin/internal/auth"
)

func typeText(l *Login, text string) {
	for _, r := range text {
		l.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

func TestPastedTokenEmitsTokenMsg(t *testing.T) {
	l := New("http://localhost:5000", 0)
	typeText(l, "  abc.def.ghi ")

	_, cmd := l.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected a command")
	}
	msg, ok := cmd().(TokenMsg)
	if !ok {
		t.Fatalf("expected TokenMsg, got %T", cmd())
	}
	if msg.Token != "abc.def.ghi" {
		t.Errorf("expected trimmed token, got %q", msg.Token)
	}
}

func TestEmptyPasteIgnored(t *testing.T) {
	l := New("http://localhost:5000", 0)
	_, cmd := l.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd != nil {
		t.Error("expected no command for empty input")
	}
}

func TestEscQuits(t *testing.T) {
	l := New("http://localhost:5000", 0)
	_, cmd := l.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if cmd == nil {
		t.Fatal("expected a command")
	}
	if _, ok := cmd().(QuitMsg); !ok {
		t.Errorf("expected QuitMsg, got %T", cmd())
	}
}

func TestSetErrorShowsAndClears(t *testing.T) {
	l := New("http://localhost:5000", 0)
	typeText(l, "bad")
	l.SetError(errors.New("malformed token"))

	if l.input.Value() != "" {
		t.Errorf("expected input cleared, got %q", l.input.Value())
	}
	if !strings.Contains(l.View(), "malformed token") {
		t.Error("expected error in view")
	}
}

func TestListenerFailureShown(t *testing.T) {
	l := New("http://localhost:5000", 0)
	l.Update(listeningMsg{owner: l, err: errors.New("address in use")})
	if !strings.Contains(l.View(), "address in use") {
		t.Error("expected listener error in view")
	}
	if l.URL() != "" {
		t.Error("expected no login URL without a listener")
	}
}

func TestCallbackDeliversToken(t *testing.T) {
	server, err := auth.NewCallbackServer(0)
	if err != nil {
		t.Fatalf("failed to start callback server: %v", err)
	}
	server.Start()

	l := New("http://localhost:5000", 0)
	defer l.Close()

	_, wait := l.Update(listeningMsg{owner: l, server: server})
	if wait == nil {
		t.Fatal("expected a wait command")
	}
	if !strings.HasPrefix(l.URL(), "http://localhost:5000/auth/google?redirect=") {
		t.Errorf("unexpected login URL %q", l.URL())
	}
	if !strings.Contains(l.View(), "/auth/google") {
		t.Error("expected login URL in view")
	}

	go func() {
		resp, err := http.Get(server.RedirectURL() + "?token=tok-123")
		if err == nil {
			resp.Body.Close()
		}
	}()

	done := make(chan tea.Msg, 1)
	go func() { done <- wait() }()

	var msg tea.Msg
	select {
	case msg = <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for callback")
	}

	_, cmd := l.Update(msg)
	if cmd == nil {
		t.Fatal("expected a command after callback")
	}
	batch, ok := cmd().(tea.BatchMsg)
	if !ok {
		t.Fatalf("expected BatchMsg, got %T", cmd())
	}
	var got string
	for _, c := range batch {
		if c == nil {
			continue
		}
		// the listener is restarted alongside the token; skip the blocking wait
		if tm, ok := runNonBlocking(c).(TokenMsg); ok {
			got = tm.Token
		}
	}
	if got != "tok-123" {
		t.Errorf("expected token tok-123, got %q", got)
	}
}

// runNonBlocking runs cmd with a short deadline and returns nil if it blocks
func runNonBlocking(cmd tea.Cmd) tea.Msg {
	ch := make(chan tea.Msg, 1)
	go func() { ch <- cmd() }()
	select {
	case msg := <-ch:
		return msg
	case <-time.After(200 * time.Millisecond):
		return nil
	}
}

func startedServer(t *testing.T) *auth.CallbackServer {
	t.Helper()
	server, err := auth.NewCallbackServer(0)
	if err != nil {
		t.Fatalf("failed to start callback server: %v", err)
	}
	server.Start()
	t.Cleanup(func() { _ = server.Close() })
	return server
}

func assertShutDown(t *testing.T, server *auth.CallbackServer) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if _, err := server.Wait(ctx); !errors.Is(err, auth.ErrServerClosed) {
		t.Errorf("expected listener shut down, got %v", err)
	}
}

func TestListenerForAnotherScreenIsClosed(t *testing.T) {
	previous := New("http://localhost:5000", 0)
	current := New("http://localhost:5000", 0)
	defer current.Close()
	server := startedServer(t)

	_, cmd := current.Update(listeningMsg{owner: previous, server: server})
	if cmd != nil {
		t.Error("expected no wait for a listener this screen did not start")
	}
	if current.URL() != "" {
		t.Error("expected the other screen's listener to be ignored")
	}
	assertShutDown(t, server)
}

func TestListenerAfterCloseIsClosed(t *testing.T) {
	l := New("http://localhost:5000", 0)
	l.Close()
	server := startedServer(t)

	l.Update(listeningMsg{owner: l, server: server})
	if l.URL() != "" {
		t.Error("expected a closed screen to drop its listener")
	}
	assertShutDown(t, server)
}

func TestDiscardClosesListener(t *testing.T) {
	server := startedServer(t)
	Discard(listeningMsg{server: server})
	assertShutDown(t, server)

	// other messages are left alone
	Discard(TokenMsg{Token: "x"})
}
