// ABOUTME: Root bubbletea model for the admin console
// ABOUTME: Manages screen state and routes keyboard input to child components

package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/igvshop/igv-admin/internal/client"
	"github.com/igvshop/igv-admin/internal/listing"
	"github.com/igvshop/igv-admin/internal/session"
	"github.com/igvshop/igv-admin/internal/tui/debuglog"
	"github.com/igvshop/igv-admin/internal/tui/forms"
	"github.com/igvshop/igv-admin/internal/tui/icons"
	"github.com/igvshop/igv-admin/internal/tui/login"
	"github.com/igvshop/igv-admin/internal/tui/menu"
	"github.com/igvshop/igv-admin/internal/tui/orderdetail"
	"github.com/igvshop/igv-admin/internal/tui/resources"
	"github.com/igvshop/igv-admin/internal/tui/styles"
	"github.com/igvshop/igv-admin/internal/tui/widgets"
)

// Screen represents the current TUI screen
type Screen int

const (
	ScreenLogin Screen = iota
	ScreenMenu
	ScreenResource
	ScreenForm
	ScreenDetail
)

// Layout constants
const (
	minTerminalWidth = 80 // Minimum width before the frame stops shrinking
	frameLines       = 4  // header, footer and the newline after/before each
)

// resourceScreen is the part of a resources.List the app drives, whatever
// its item type
type resourceScreen interface {
	tea.Model
	Title() string
	LastUpdate() time.Time
	Searching() bool
	SetSize(width, height int)
	Mutated(success string, err error) tea.Cmd
	Failed(err error) tea.Cmd
}

// mutationDoneMsg is sent when a form's write finishes
type mutationDoneMsg struct {
	list    resourceScreen
	success string
	err     error
}

// productFormMsg carries the product types loaded for a product form
type productFormMsg struct {
	list       resourceScreen
	existing   *client.Product
	categories []client.Category
	err        error
}

// Options configures the console
type Options struct {
	AuthURL      string
	CallbackPort int
}

// App is the root model for the TUI
type App struct {
	client  *client.Client
	session *session.Store
	opts    Options
	screen  Screen
	width   int
	height  int

	// Child models
	login  *login.Login
	menu   *menu.Menu
	item   menu.Item
	list   resourceScreen
	form   *forms.Form
	detail *orderdetail.Detail

	tracker listing.DetailTracker
}

// New creates a new TUI application
func New(apiClient *client.Client, store *session.Store, opts Options) *App {
	a := &App{
		client:  apiClient,
		session: store,
		opts:    opts,
		menu:    menu.New(),
		screen:  ScreenMenu,
	}
	if !store.IsLoggedIn() {
		a.screen = ScreenLogin
		a.login = login.New(opts.AuthURL, opts.CallbackPort)
	}
	return a
}

// Screen returns the screen being shown
func (a *App) Screen() Screen {
	return a.screen
}

// Init implements tea.Model
func (a *App) Init() tea.Cmd {
	if a.login != nil {
		return a.login.Init()
	}
	return nil
}

// Update implements tea.Model
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.resize()
		return a, nil

	case tea.KeyMsg:
		// Handle global quit
		if msg.String() == "ctrl+c" {
			a.closeLogin()
			return a, tea.Quit
		}

		// Route to current screen
		switch a.screen {
		case ScreenLogin:
			return a.updateLogin(msg)
		case ScreenMenu:
			return a.updateMenu(msg)
		case ScreenResource:
			return a.updateList(msg)
		case ScreenForm:
			return a.updateForm(msg)
		case ScreenDetail:
			return a.updateDetail(msg)
		}
		return a, nil

	case login.TokenMsg:
		return a.handleToken(msg)

	case login.QuitMsg, menu.CancelledMsg:
		a.closeLogin()
		return a, tea.Quit

	case menu.SelectedMsg:
		return a.handleMenuSelected(msg)

	case resources.BackMsg:
		a.list = nil
		a.screen = ScreenMenu
		return a, nil

	case resources.CreateMsg:
		if a.item == menu.ItemProducts {
			return a, a.loadProductForm(nil)
		}
		return a.openForm(a.createForm())

	case resources.EditMsg:
		if p, ok := msg.Item.(client.Product); ok {
			return a, a.loadProductForm(&p)
		}
		return a.openForm(editForm(msg.Item))

	case productFormMsg:
		// the operator may have moved on while the types loaded
		if a.list == nil || msg.list != a.list || a.screen != ScreenResource {
			return a, nil
		}
		if msg.err != nil {
			debuglog.Error("load product types", msg.err)
			return a, a.list.Failed(fmt.Errorf("product types: %w", msg.err))
		}
		return a.openForm(forms.NewProduct(msg.existing, msg.categories))

	case resources.DeleteMsg:
		if img, ok := msg.Item.(client.ProductImage); ok {
			return a.openForm(forms.NewDeleteImage(img))
		}
		return a, nil

	case resources.OpenMsg:
		if order, ok := msg.Item.(client.Order); ok {
			return a, a.openDetail(order.ID)
		}
		return a, nil

	case forms.SubmittedMsg:
		a.form = nil
		a.screen = ScreenResource
		return a, a.runWrite(msg)

	case forms.CancelledMsg:
		a.form = nil
		a.screen = ScreenResource
		return a, nil

	case mutationDoneMsg:
		// the operator may have left the list the write came from
		if a.list == nil || msg.list != a.list {
			return a, nil
		}
		return a, a.list.Mutated(msg.success, msg.err)

	case orderdetail.LoadedMsg:
		if !a.tracker.Accept(msg.Ticket) || a.detail == nil {
			return a, nil
		}
		if msg.Err != nil {
			// a partial order is never shown; close and report on the list
			debuglog.Error("load order detail", msg.Err)
			id := a.detail.OrderID()
			a.closeDetail()
			if a.list == nil {
				return a, nil
			}
			return a, a.list.Failed(fmt.Errorf("order #%d: %w", id, msg.Err))
		}
		a.detail.SetData(msg.Data)
		return a, nil
	}

	return a.forward(msg)
}

// forward passes messages the app does not handle to the live children.
// List results keep flowing while a form or detail is on top of the list.
func (a *App) forward(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	if a.login != nil {
		_, cmd := a.login.Update(msg)
		cmds = append(cmds, cmd)
	} else {
		// a listener that started after sign-in finished
		login.Discard(msg)
	}
	if a.list != nil {
		_, cmd := a.list.Update(msg)
		cmds = append(cmds, cmd)
	}
	if a.form != nil {
		_, cmd := a.form.Update(msg)
		cmds = append(cmds, cmd)
	}
	return a, tea.Batch(cmds...)
}

func (a *App) updateLogin(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if a.login == nil {
		return a, nil
	}
	_, cmd := a.login.Update(msg)
	return a, cmd
}

func (a *App) updateMenu(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if a.menu == nil {
		return a, nil
	}
	model, cmd := a.menu.Update(msg)
	a.menu = model.(*menu.Menu)
	return a, cmd
}

func (a *App) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if a.list == nil {
		return a, nil
	}
	_, cmd := a.list.Update(msg)
	return a, cmd
}

func (a *App) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if a.form == nil {
		return a, nil
	}
	_, cmd := a.form.Update(msg)
	return a, cmd
}

func (a *App) updateDetail(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "b", "q":
		a.closeDetail()
		return a, nil
	case "r":
		if a.detail != nil {
			return a, a.openDetail(a.detail.OrderID())
		}
	}
	return a, nil
}

func (a *App) closeDetail() {
	a.tracker.Close()
	a.detail = nil
	a.screen = ScreenResource
}

// handleToken signs in with a token from the login screen
func (a *App) handleToken(msg login.TokenMsg) (tea.Model, tea.Cmd) {
	if a.login == nil {
		return a, nil
	}
	if err := a.session.Login(msg.Token); err != nil {
		a.login.SetError(err)
		return a, nil
	}
	a.closeLogin()
	a.menu = menu.New()
	a.screen = ScreenMenu
	return a, nil
}

func (a *App) handleMenuSelected(msg menu.SelectedMsg) (tea.Model, tea.Cmd) {
	a.item = msg.Item

	var list resourceScreen
	switch msg.Item {
	case menu.ItemCategories:
		list = resources.New(resources.Categories(a.client))
	case menu.ItemProducts:
		list = resources.New(resources.Products(a.client))
	case menu.ItemProductImages:
		list = resources.New(resources.ProductImages(a.client))
	case menu.ItemOrders:
		list = resources.New(resources.Orders(a.client))
	case menu.ItemUsers:
		list = resources.New(resources.Users(a.client))
	case menu.ItemLogout:
		return a, a.logout()
	default:
		return a, nil
	}

	a.list = list
	a.screen = ScreenResource
	a.resize()
	return a, list.Init()
}

func (a *App) logout() tea.Cmd {
	if err := a.session.Logout(); err != nil {
		debuglog.Error("logout", err)
	}
	a.list, a.form, a.detail = nil, nil, nil
	a.tracker.Close()
	a.login = login.New(a.opts.AuthURL, a.opts.CallbackPort)
	a.login.SetWidth(a.width)
	a.screen = ScreenLogin
	return a.login.Init()
}

func (a *App) closeLogin() {
	if a.login != nil {
		a.login.Close()
		a.login = nil
	}
}

// createForm returns the create form for the current resource
func (a *App) createForm() *forms.Form {
	switch a.item {
	case menu.ItemCategories:
		return forms.NewCategory(nil)
	case menu.ItemProductImages:
		return forms.NewProductImage()
	}
	return nil
}

// editForm returns the edit form for a selected row
func editForm(item any) *forms.Form {
	switch v := item.(type) {
	case client.Category:
		return forms.NewCategory(&v)
	}
	return nil
}

// loadProductForm fetches the product types the product form picks from
func (a *App) loadProductForm(existing *client.Product) tea.Cmd {
	list, c := a.list, a.client
	if list == nil {
		return nil
	}
	return func() tea.Msg {
		categories, err := forms.FetchCategories(context.Background(), c)
		return productFormMsg{list: list, existing: existing, categories: categories, err: err}
	}
}

func (a *App) openForm(f *forms.Form) (tea.Model, tea.Cmd) {
	if f == nil || a.list == nil {
		return a, nil
	}
	a.form = f
	if a.width > 0 {
		a.form.SetWidth(a.contentWidth())
	}
	a.screen = ScreenForm
	return a, a.form.Init()
}

// runWrite performs a submitted form's write against the list that opened it
func (a *App) runWrite(sub forms.SubmittedMsg) tea.Cmd {
	list, c := a.list, a.client
	return func() tea.Msg {
		err := sub.Write(context.Background(), c)
		return mutationDoneMsg{list: list, success: sub.Success, err: err}
	}
}

// openDetail shows an order and starts its lookups
func (a *App) openDetail(orderID int) tea.Cmd {
	ticket := a.tracker.Open()
	a.detail = orderdetail.New(orderID, a.contentWidth(), a.contentHeight())
	a.screen = ScreenDetail

	c := a.client
	return func() tea.Msg {
		data, err := listing.FetchOrder(context.Background(), c, orderID)
		return orderdetail.LoadedMsg{Ticket: ticket, Data: data, Err: err}
	}
}

func (a *App) resize() {
	if a.login != nil {
		a.login.SetWidth(a.contentWidth())
	}
	if a.list != nil {
		a.list.SetSize(a.contentWidth(), a.contentHeight())
	}
	if a.form != nil {
		a.form.SetWidth(a.contentWidth())
	}
	if a.detail != nil {
		a.detail.SetSize(a.contentWidth(), a.contentHeight())
	}
}

// View implements tea.Model
func (a *App) View() string {
	var content string

	switch a.screen {
	case ScreenLogin:
		if a.login != nil {
			content = a.login.View()
		}
	case ScreenMenu:
		content = a.menu.View()
	case ScreenResource:
		if a.list != nil {
			content = a.list.View()
		}
	case ScreenForm:
		if a.form != nil {
			content = styles.ActivePanel.Render(a.form.View())
		}
	case ScreenDetail:
		if a.detail != nil {
			content = a.detail.View()
		}
	}

	return a.wrapWithFrame(content)
}

// contentWidth is the width available inside the frame
func (a *App) contentWidth() int {
	return max(a.width-2, 0)
}

// contentHeight calculates the height available between header and footer
func (a *App) contentHeight() int {
	return max(a.height-frameLines, 0)
}

// frameWidth guards against zero/small width before WindowSizeMsg is received
func (a *App) frameWidth() int {
	return max(a.width, minTerminalWidth)
}

// renderHeader creates the header bar with app branding and context
func (a *App) renderHeader() string {
	width := a.frameWidth()

	borderStyle := lipgloss.NewStyle().Foreground(styles.Muted)
	titleStyle := lipgloss.NewStyle().Foreground(styles.Primary).Bold(true)
	contextStyle := lipgloss.NewStyle().Foreground(styles.Secondary)

	leftText := fmt.Sprintf(" %s %s ", icons.App.String(), titleStyle.Render("IGV Admin"))

	var labels []string
	if a.list != nil && a.screen != ScreenMenu && a.screen != ScreenLogin {
		labels = append(labels, a.list.Title())
	}
	if a.session.IsLoggedIn() && a.session.SubjectID() != "" {
		labels = append(labels, icons.User.String()+" "+a.session.SubjectID())
	}
	rightText := ""
	if len(labels) > 0 {
		rightText = " " + contextStyle.Render(strings.Join(labels, " · ")) + " "
	}

	fillWidth := width - 4 - lipgloss.Width(leftText) - lipgloss.Width(rightText) // -4 for ╭─ and ─╮
	if fillWidth < 0 {
		fillWidth = 0
	}
	fill := strings.Repeat("─", fillWidth)

	return borderStyle.Render("╭─" + leftText + fill + rightText + "─╮")
}

// shortcuts returns the key hints for the current screen
func (a *App) shortcuts() []string {
	switch a.screen {
	case ScreenLogin:
		return []string{"Enter Submit", "Esc Quit"}
	case ScreenMenu:
		return []string{"↑↓ Navigate", "Enter Select", "q Quit"}
	case ScreenResource:
		if a.list != nil && a.list.Searching() {
			return []string{"Enter Done", "Esc Done"}
		}
		hints := []string{"/ Search", "←→ Page", "s Size", "r Refresh"}
		switch a.item {
		case menu.ItemCategories, menu.ItemProducts:
			hints = append(hints, "n New", "e Edit")
		case menu.ItemProductImages:
			hints = append(hints, "n New", "d Delete")
		case menu.ItemOrders:
			hints = append(hints, "Enter Open")
		}
		return append(hints, "b Back")
	case ScreenForm:
		return []string{"Tab Next", "Enter Confirm", "Esc Cancel"}
	case ScreenDetail:
		return []string{"r Refresh", "b Back"}
	}
	return nil
}

// renderFooter creates the footer with keyboard shortcuts and status
func (a *App) renderFooter() string {
	width := a.frameWidth()

	borderStyle := lipgloss.NewStyle().Foreground(styles.Muted)
	labelStyle := lipgloss.NewStyle().Foreground(styles.Muted)
	statusStyle := lipgloss.NewStyle().Foreground(styles.Secondary)

	shortcuts := a.shortcuts()
	var styledShortcuts []string
	for _, s := range shortcuts {
		parts := strings.SplitN(s, " ", 2)
		if len(parts) == 2 {
			styledShortcuts = append(styledShortcuts, styles.KeyStyle.Render(parts[0])+" "+labelStyle.Render(parts[1]))
		} else {
			styledShortcuts = append(styledShortcuts, s)
		}
	}

	leftText := " " + strings.Join(styledShortcuts, "  ")
	leftPlainText := " " + strings.Join(shortcuts, "  ")

	// Right side status (last successful load of the list)
	rightText := ""
	rightPlainText := ""
	if a.screen == ScreenResource && a.list != nil && !a.list.LastUpdate().IsZero() {
		updated := "Updated " + widgets.Relative(a.list.LastUpdate())
		rightText = statusStyle.Render(updated) + " "
		rightPlainText = updated + " "
	}

	fillWidth := width - 4 - lipgloss.Width(leftPlainText) - lipgloss.Width(rightPlainText) // -4 for ╰─ and ─╯
	if fillWidth < 0 {
		fillWidth = 0
	}
	fill := strings.Repeat("─", fillWidth)

	return borderStyle.Render("╰─" + leftText + fill + rightText + "─╯")
}

// wrapWithFrame wraps content with header and footer
func (a *App) wrapWithFrame(content string) string {
	var sb strings.Builder

	sb.WriteString(a.renderHeader())
	sb.WriteString("\n")
	sb.WriteString(content)
	sb.WriteString("\n")
	sb.WriteString(a.renderFooter())

	return sb.String()
}

// Run starts the TUI
func Run(apiClient *client.Client, store *session.Store, opts Options) error {
	app := New(apiClient, store, opts)

	p := tea.NewProgram(
		app,
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	app.closeLogin()
	return err
}
