// ABOUTME: Tests for the main menu
// ABOUTME: Validates navigation, selection and rendering

package menu

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func key(s string) tea.KeyMsg {
	switch s {
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestMenuOptions(t *testing.T) {
	m := New()

	if len(m.options) != 6 {
		t.Errorf("expected 6 options, got %d", len(m.options))
	}
	if m.options[0].label != "Product types" {
		t.Errorf("expected first option 'Product types', got %s", m.options[0].label)
	}
	if m.Selected() != ItemCategories {
		t.Errorf("expected cursor on categories, got %s", m.Selected())
	}
}

func TestMenuNavigation(t *testing.T) {
	m := New()

	m.Update(key("up"))
	if m.Selected() != ItemCategories {
		t.Error("expected cursor to stay on first option")
	}

	m.Update(key("down"))
	m.Update(key("j"))
	if m.Selected() != ItemProductImages {
		t.Errorf("expected product images, got %s", m.Selected())
	}

	for i := 0; i < 10; i++ {
		m.Update(key("down"))
	}
	if m.Selected() != ItemLogout {
		t.Errorf("expected cursor to stop on last option, got %s", m.Selected())
	}
}

func TestMenuSelect(t *testing.T) {
	m := New()
	m.Update(key("down"))

	_, cmd := m.Update(key("enter"))
	if cmd == nil {
		t.Fatal("expected command on enter")
	}
	msg, ok := cmd().(SelectedMsg)
	if !ok {
		t.Fatalf("expected SelectedMsg, got %T", cmd())
	}
	if msg.Item != ItemProducts {
		t.Errorf("expected products, got %s", msg.Item)
	}
}

func TestMenuCancel(t *testing.T) {
	m := New()
	_, cmd := m.Update(key("esc"))
	if cmd == nil {
		t.Fatal("expected command on esc")
	}
	if _, ok := cmd().(CancelledMsg); !ok {
		t.Errorf("expected CancelledMsg, got %T", cmd())
	}
}

func TestMenuView(t *testing.T) {
	view := New().View()
	for _, label := range []string{"Product types", "Products", "Orders", "Users", "Sign out"} {
		if !strings.Contains(view, label) {
			t.Errorf("expected %q in view", label)
		}
	}
}

func TestItemString(t *testing.T) {
	tests := []struct {
		item     Item
		expected string
	}{
		{ItemCategories, "categories"},
		{ItemProducts, "products"},
		{ItemProductImages, "images"},
		{ItemOrders, "orders"},
		{ItemUsers, "users"},
		{ItemLogout, "logout"},
		{Item(99), "unknown"},
	}

	for _, tc := range tests {
		t.Run(tc.expected, func(t *testing.T) {
			if got := tc.item.String(); got != tc.expected {
				t.Errorf("expected %q, got %q", tc.expected, got)
			}
		})
	}
}
