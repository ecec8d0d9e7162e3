// ABOUTME: huh theme shared by every create, update and confirm form
// ABOUTME: Colors follow the app palette so forms sit naturally inside the frame

package forms

import (
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/igvshop/igv-admin/internal/tui/styles"
)

func fg(c lipgloss.Color) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(c)
}

// createTheme builds a huh theme on the app palette. Destructive confirms
// reuse it; the danger color only shows up in validation errors.
func createTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Group.Title = fg(styles.Primary).Bold(true).MarginBottom(1)
	t.Group.Description = fg(styles.Muted).MarginBottom(1)

	f := &t.Focused
	f.Base = lipgloss.NewStyle().
		PaddingLeft(1).
		BorderStyle(lipgloss.ThickBorder()).
		BorderLeft(true).
		BorderForeground(styles.Primary)
	f.Title = fg(styles.Accent).Bold(true)
	f.Description = fg(styles.Muted)
	f.ErrorIndicator = fg(styles.Danger).SetString(" *")
	f.ErrorMessage = fg(styles.Danger)

	f.SelectSelector = fg(styles.Primary).SetString("> ")
	f.Option = fg(styles.Text)
	f.SelectedOption = fg(styles.Secondary).Bold(true)

	f.TextInput.Cursor = fg(styles.Accent)
	f.TextInput.Placeholder = fg(styles.Muted)
	f.TextInput.Prompt = fg(styles.Primary)
	f.TextInput.Text = fg(styles.Text)

	button := lipgloss.NewStyle().Padding(0, 2).MarginRight(1)
	f.FocusedButton = button.Foreground(styles.Text).Background(styles.Primary)
	f.BlurredButton = button.Foreground(styles.Muted).Background(styles.Surface)

	// Blurred fields keep the layout but drop the border and highlights.
	t.Blurred = t.Focused
	t.Blurred.Base = f.Base.BorderStyle(lipgloss.HiddenBorder())
	t.Blurred.Title = fg(styles.Muted)
	t.Blurred.SelectSelector = fg(styles.Muted).SetString("  ")
	t.Blurred.Option = fg(styles.Muted)

	return t
}
