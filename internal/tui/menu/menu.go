// ABOUTME: Main menu shown after sign-in
// ABOUTME: Lets the operator pick a resource screen or sign out

package menu

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/igvshop/igv-admin/internal/tui/icons"
	"github.com/igvshop/igv-admin/internal/tui/styles"
)

// Item is one menu entry
type Item int

const (
	ItemCategories Item = iota
	ItemProducts
	ItemProductImages
	ItemOrders
	ItemUsers
	ItemLogout
)

// SelectedMsg is sent when an entry is chosen
type SelectedMsg struct {
	Item Item
}

// CancelledMsg is sent when the menu is dismissed
type CancelledMsg struct{}

type option struct {
	label string
	icon  icons.Icon
	value Item
}

// Menu is the resource selection menu
type Menu struct {
	options []option
	cursor  int
}

// New creates the main menu
func New() *Menu {
	return &Menu{
		options: []option{
			{label: "Product types", icon: icons.Category, value: ItemCategories},
			{label: "Products", icon: icons.Product, value: ItemProducts},
			{label: "Product images", icon: icons.Image, value: ItemProductImages},
			{label: "Orders", icon: icons.Order, value: ItemOrders},
			{label: "Users", icon: icons.User, value: ItemUsers},
			{label: "Sign out", icon: icons.Quit, value: ItemLogout},
		},
	}
}

// Selected returns the entry under the cursor
func (m *Menu) Selected() Item {
	return m.options[m.cursor].value
}

// Init implements tea.Model
func (m *Menu) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (m *Menu) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.options)-1 {
			m.cursor++
		}
	case "enter":
		item := m.Selected()
		return m, func() tea.Msg { return SelectedMsg{Item: item} }
	case "q", "esc":
		return m, func() tea.Msg { return CancelledMsg{} }
	}
	return m, nil
}

// View implements tea.Model
func (m *Menu) View() string {
	var sb strings.Builder

	sb.WriteString(styles.Title.Render("Select a screen"))
	sb.WriteString("\n")

	selected := lipgloss.NewStyle().Foreground(styles.Primary).Bold(true)
	normal := lipgloss.NewStyle().Foreground(styles.Text)
	for i, opt := range m.options {
		line := opt.icon.String() + " " + opt.label
		if i == m.cursor {
			sb.WriteString(selected.Render("> " + line))
		} else {
			sb.WriteString(normal.Render("  " + line))
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

// String returns the string representation of an Item
func (it Item) String() string {
	switch it {
	case ItemCategories:
		return "categories"
	case ItemProducts:
		return "products"
	case ItemProductImages:
		return "images"
	case ItemOrders:
		return "orders"
	case ItemUsers:
		return "users"
	case ItemLogout:
		return "logout"
	default:
		return "unknown"
	}
}
