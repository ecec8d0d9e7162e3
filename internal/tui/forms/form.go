// ABOUTME: Create, update and delete forms as bubbletea models built on huh
// ABOUTME: A completed form emits a validated write for the app to run; nothing is sent before that

package forms

import (
	"context"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/igvshop/igv-admin/internal/client"
	"github.com/igvshop/igv-admin/internal/tui/styles"
)

// Write performs the mutation a form collected
type Write func(ctx context.Context, c *client.Client) error

// SubmittedMsg is sent when a form completes with valid input
type SubmittedMsg struct {
	Success string
	Write   Write
}

// CancelledMsg is sent when a form is dismissed
type CancelledMsg struct{}

// Form wraps a huh form and turns its values into a Write
type Form struct {
	title   string
	newForm func() *huh.Form
	form    *huh.Form
	// submit validates the collected values; a nil msg means "cancel"
	submit func() (*SubmittedMsg, error)
	err    error
	width  int
}

func newForm(title string, build func() *huh.Form, submit func() (*SubmittedMsg, error)) *Form {
	return &Form{
		title:   title,
		newForm: build,
		form:    build(),
		submit:  submit,
	}
}

// Title returns the form title
func (f *Form) Title() string {
	return f.title
}

// Err returns the validation error from the last submission, if any
func (f *Form) Err() error {
	return f.err
}

// Init implements tea.Model
func (f *Form) Init() tea.Cmd {
	return f.form.Init()
}

// SetWidth sets the form width
func (f *Form) SetWidth(width int) {
	f.width = width
	f.form = f.form.WithWidth(width)
}

// Update implements tea.Model
func (f *Form) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok && key.String() == "esc" {
		return f, func() tea.Msg { return CancelledMsg{} }
	}

	model, cmd := f.form.Update(msg)
	if form, ok := model.(*huh.Form); ok {
		f.form = form
	}

	switch f.form.State {
	case huh.StateCompleted:
		return f.complete()
	case huh.StateAborted:
		return f, func() tea.Msg { return CancelledMsg{} }
	}
	return f, cmd
}

// complete validates the values and emits the write. Invalid input reopens
// the form with the entered values and the error shown.
func (f *Form) complete() (tea.Model, tea.Cmd) {
	sub, err := f.submit()
	if err != nil {
		f.err = err
		f.form = f.newForm()
		if f.width > 0 {
			f.form = f.form.WithWidth(f.width)
		}
		return f, f.form.Init()
	}
	f.err = nil
	if sub == nil {
		return f, func() tea.Msg { return CancelledMsg{} }
	}
	return f, func() tea.Msg { return *sub }
}

// View implements tea.Model
func (f *Form) View() string {
	var sb strings.Builder
	sb.WriteString(styles.Title.Render(f.title))
	sb.WriteString("\n")
	if f.err != nil {
		sb.WriteString(styles.StatusCritical.Render("Error: " + f.err.Error()))
		sb.WriteString("\n\n")
	}
	sb.WriteString(f.form.View())
	return sb.String()
}
