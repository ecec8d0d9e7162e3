// ABOUTME: Sign-in screen showing the Google login URL and a token paste box
// ABOUTME: Emits TokenMsg from either the loopback callback or the pasted text

package login

import (
	"context"
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/igvshop/igv-admin/internal/auth"
	"github.com/igvshop/igv-admin/internal/tui/icons"
	"github.com/igvshop/igv-admin/internal/tui/styles"
)

// TokenMsg carries a token obtained by sign-in; the app validates it
type TokenMsg struct {
	Token string
}

// QuitMsg is sent when the operator leaves the sign-in screen
type QuitMsg struct{}

// listeningMsg hands a started listener to the screen that asked for it
type listeningMsg struct {
	owner  *Login
	server *auth.CallbackServer
	err    error
}

type callbackMsg struct {
	token string
	err   error
}

// Login is the sign-in screen
type Login struct {
	authURL string
	port    int
	server  *auth.CallbackServer
	cancel  context.CancelFunc
	closed  bool
	input   textinput.Model
	err     error
	width   int
}

// New creates the sign-in screen. A callback listener on port (0 = any free
// port) starts with Init.
func New(authURL string, port int) *Login {
	ti := textinput.New()
	ti.Placeholder = "paste token and press enter"
	ti.Prompt = icons.Key.String() + " "
	ti.EchoMode = textinput.EchoPassword
	ti.CharLimit = 4096
	ti.Width = 48
	ti.Focus()

	return &Login{
		authURL: authURL,
		port:    port,
		input:   ti,
	}
}

// SetError shows a rejected token and clears the input
func (l *Login) SetError(err error) {
	l.err = err
	l.input.Reset()
}

// SetWidth sets the screen width
func (l *Login) SetWidth(width int) {
	l.width = width
}

// URL returns the login URL once the listener is up
func (l *Login) URL() string {
	if l.server == nil {
		return ""
	}
	return auth.LoginURL(l.authURL, l.server.RedirectURL())
}

// Init implements tea.Model
func (l *Login) Init() tea.Cmd {
	port := l.port
	return tea.Batch(textinput.Blink, func() tea.Msg {
		server, err := auth.NewCallbackServer(port)
		if err != nil {
			return listeningMsg{owner: l, err: err}
		}
		server.Start()
		return listeningMsg{owner: l, server: server}
	})
}

// Close stops the callback listener. A listener still starting is shut down
// when it reports in.
func (l *Login) Close() {
	l.closed = true
	if l.cancel != nil {
		l.cancel()
		l.cancel = nil
	}
	if l.server != nil {
		_ = l.server.Close()
		l.server = nil
	}
}

// Discard shuts down the listener carried by msg, if any. The app calls it for
// messages that arrive when no sign-in screen is live.
func Discard(msg tea.Msg) {
	if m, ok := msg.(listeningMsg); ok && m.server != nil {
		_ = m.server.Close()
	}
}

func (l *Login) wait() tea.Cmd {
	if l.cancel != nil {
		l.cancel()
	}
	ctx, cancel := context.WithCancel(context.Background())
	l.cancel = cancel
	server := l.server
	return func() tea.Msg {
		token, err := server.Wait(ctx)
		return callbackMsg{token: token, err: err}
	}
}

// Update implements tea.Model
func (l *Login) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case listeningMsg:
		if msg.owner != l || l.closed {
			Discard(msg)
			return l, nil
		}
		if msg.err != nil {
			l.err = msg.err
			return l, nil
		}
		l.server = msg.server
		return l, l.wait()

	case callbackMsg:
		if msg.err != nil {
			if !errors.Is(msg.err, auth.ErrServerClosed) && !errors.Is(msg.err, context.Canceled) {
				l.err = msg.err
			}
			return l, nil
		}
		token := msg.token
		// keep listening in case the app rejects this token
		return l, tea.Batch(l.wait(), func() tea.Msg { return TokenMsg{Token: token} })

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return l, func() tea.Msg { return QuitMsg{} }
		case "enter":
			token := strings.TrimSpace(l.input.Value())
			if token == "" {
				return l, nil
			}
			return l, func() tea.Msg { return TokenMsg{Token: token} }
		}
	}

	var cmd tea.Cmd
	l.input, cmd = l.input.Update(msg)
	return l, cmd
}

// View implements tea.Model
func (l *Login) View() string {
	var sb strings.Builder
	sb.WriteString(styles.Title.Render(icons.App.String() + " Sign in"))
	sb.WriteString("\n\n")

	if url := l.URL(); url != "" {
		sb.WriteString("Open this link in a browser and sign in with Google:\n\n")
		sb.WriteString(styles.ValueStyle.Render(url))
		sb.WriteString("\n\n")
		sb.WriteString(styles.Help.Render("Waiting for the sign-in callback..."))
	} else {
		sb.WriteString(styles.Help.Render("Starting sign-in listener..."))
	}
	sb.WriteString("\n\n")

	sb.WriteString("Or paste a token:\n")
	sb.WriteString(l.input.View())
	sb.WriteString("\n")

	if l.err != nil {
		sb.WriteString("\n")
		sb.WriteString(styles.StatusCritical.Render("Error: " + l.err.Error()))
		sb.WriteString("\n")
	}

	sb.WriteString("\n")
	sb.WriteString(styles.Help.Render("enter submit • esc quit"))
	return sb.String()
}
