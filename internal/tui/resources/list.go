// ABOUTME: Generic resource list screen: search box, table, pagination and notices
// ABOUTME: All list state lives in a listing.Controller; this model only renders and routes keys

package resources

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/igvshop/igv-admin/internal/listing"
	"github.com/igvshop/igv-admin/internal/tui/debuglog"
	"github.com/igvshop/igv-admin/internal/tui/icons"
	"github.com/igvshop/igv-admin/internal/tui/styles"
)

// PageSizes are the sizes the page size key cycles through
var PageSizes = []int{10, 20, 50, 100}

// noticeTTL is how long a mutation notice stays on screen
const noticeTTL = 4 * time.Second

// Config describes one resource screen
type Config[T any] struct {
	Title    string
	Icon     icons.Icon
	Columns  []table.Column
	Row      func(T) table.Row
	List     listing.Lister[T]
	PageSize int

	CanCreate bool
	CanEdit   bool
	CanDelete bool
	CanOpen   bool
}

// Messages sent to the app when the operator asks for an action
type (
	CreateMsg struct{}
	EditMsg   struct{ Item any }
	DeleteMsg struct{ Item any }
	OpenMsg   struct{ Item any }
	BackMsg   struct{}
)

var listIDs atomic.Uint64

// loadedMsg carries a fetch result back to the list that issued it
type loadedMsg[T any] struct {
	list uint64
	res  listing.Result[T]
}

type clearNoticeMsg struct {
	list uint64
	seq  int
}

// List is a resource screen over items of type T
type List[T any] struct {
	id         uint64
	cfg        Config[T]
	ctrl       *listing.Controller[T]
	table      table.Model
	search     textinput.Model
	spinner    spinner.Model
	width      int
	height     int
	lastUpdate time.Time
	noticeSeq  int
}

// New creates a list screen. Call Init to issue the first load.
func New[T any](cfg Config[T]) *List[T] {
	if cfg.PageSize == 0 {
		cfg.PageSize = PageSizes[0]
	}

	t := table.New(
		table.WithColumns(cfg.Columns),
		table.WithFocused(true),
		table.WithHeight(cfg.PageSize),
	)
	t.SetStyles(styles.Table())

	search := textinput.New()
	search.Prompt = icons.Search.String() + " "
	search.Placeholder = "Search (press / to type)"
	search.CharLimit = 100

	spin := spinner.New(spinner.WithSpinner(spinner.Dot))
	spin.Style = lipgloss.NewStyle().Foreground(styles.Primary)

	return &List[T]{
		id:      listIDs.Add(1),
		cfg:     cfg,
		ctrl:    listing.New(cfg.List, cfg.PageSize),
		table:   t,
		search:  search,
		spinner: spin,
	}
}

// Init implements tea.Model
func (l *List[T]) Init() tea.Cmd {
	return tea.Batch(l.spinner.Tick, l.Load())
}

// Load refetches the current query
func (l *List[T]) Load() tea.Cmd {
	return l.fetch(l.ctrl.Begin())
}

// fetch runs req off the event loop
func (l *List[T]) fetch(req listing.Request) tea.Cmd {
	ctrl, id := l.ctrl, l.id
	return func() tea.Msg {
		return loadedMsg[T]{list: id, res: ctrl.Fetch(context.Background(), req)}
	}
}

// Controller exposes the list state
func (l *List[T]) Controller() *listing.Controller[T] {
	return l.ctrl
}

// Title returns the screen title
func (l *List[T]) Title() string {
	return l.cfg.Title
}

// LastUpdate returns when the list last loaded successfully
func (l *List[T]) LastUpdate() time.Time {
	return l.lastUpdate
}

// Searching reports whether key presses go to the search box
func (l *List[T]) Searching() bool {
	return l.search.Focused()
}

// Rows returns the rows currently in the table
func (l *List[T]) Rows() []table.Row {
	return l.table.Rows()
}

// Selected returns the item under the cursor
func (l *List[T]) Selected() (T, bool) {
	var zero T
	items := l.ctrl.Items()
	i := l.table.Cursor()
	if i < 0 || i >= len(items) {
		return zero, false
	}
	return items[i], true
}

// SetSize updates the screen dimensions
func (l *List[T]) SetSize(width, height int) {
	l.width = width
	l.height = height
	l.table.SetWidth(width)
	// title, search, pagination, notice and spacing
	l.table.SetHeight(max(3, height-8))
	l.search.Width = max(20, width-4)
}

// Mutated reports a finished create, update or delete. Success refetches the
// current query; either way a notice is shown for a few seconds.
func (l *List[T]) Mutated(success string, err error) tea.Cmd {
	n, req := l.ctrl.Mutated(success, err)
	if n.IsError() {
		debuglog.Error(l.cfg.Title+" mutation", err)
	}

	cmds := []tea.Cmd{l.expireNotice()}
	if req != nil {
		cmds = append(cmds, l.fetch(*req))
	}
	return tea.Batch(cmds...)
}

// Failed shows err as an error notice and leaves the rows alone
func (l *List[T]) Failed(err error) tea.Cmd {
	l.ctrl.Failed(err)
	return l.expireNotice()
}

// expireNotice clears the current notice after noticeTTL unless a newer one
// replaced it
func (l *List[T]) expireNotice() tea.Cmd {
	l.noticeSeq++
	id, seq := l.id, l.noticeSeq
	return tea.Tick(noticeTTL, func(time.Time) tea.Msg { return clearNoticeMsg{list: id, seq: seq} })
}

// Update implements tea.Model
func (l *List[T]) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadedMsg[T]:
		if msg.list != l.id {
			return l, nil
		}
		if l.ctrl.Apply(msg.res) {
			l.syncRows()
			if msg.res.Err != nil {
				debuglog.Error("load "+strings.ToLower(l.cfg.Title), msg.res.Err)
			} else {
				l.lastUpdate = time.Now()
			}
		}
		return l, nil

	case clearNoticeMsg:
		if msg.list == l.id && msg.seq == l.noticeSeq {
			l.ctrl.ClearNotice()
		}
		return l, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		l.spinner, cmd = l.spinner.Update(msg)
		return l, cmd

	case tea.WindowSizeMsg:
		l.SetSize(msg.Width, msg.Height)
		return l, nil

	case tea.KeyMsg:
		if l.search.Focused() {
			return l.updateSearch(msg)
		}
		return l.updateKeys(msg)
	}
	return l, nil
}

func (l *List[T]) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter", "esc", "tab":
		l.search.Blur()
		l.table.Focus()
		return l, nil
	}

	var cmd tea.Cmd
	l.search, cmd = l.search.Update(msg)
	if req, ok := l.ctrl.SetSearch(strings.TrimSpace(l.search.Value())); ok {
		return l, tea.Batch(cmd, l.fetch(req))
	}
	return l, cmd
}

func (l *List[T]) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "/":
		l.table.Blur()
		return l, l.search.Focus()
	case "left", "h", "pgup":
		if req, ok := l.ctrl.PrevPage(); ok {
			return l, l.fetch(req)
		}
		return l, nil
	case "right", "l", "pgdown":
		if req, ok := l.ctrl.NextPage(); ok {
			return l, l.fetch(req)
		}
		return l, nil
	case "s":
		if req, ok := l.ctrl.SetPageSize(nextPageSize(l.ctrl.Query().PageSize)); ok {
			return l, l.fetch(req)
		}
		return l, nil
	case "r":
		return l, l.Load()
	case "esc", "b":
		return l, func() tea.Msg { return BackMsg{} }
	case "n":
		if l.cfg.CanCreate {
			return l, func() tea.Msg { return CreateMsg{} }
		}
		return l, nil
	case "e":
		if item, ok := l.Selected(); ok && l.cfg.CanEdit {
			return l, func() tea.Msg { return EditMsg{Item: item} }
		}
		return l, nil
	case "d":
		if item, ok := l.Selected(); ok && l.cfg.CanDelete {
			return l, func() tea.Msg { return DeleteMsg{Item: item} }
		}
		return l, nil
	case "enter":
		if item, ok := l.Selected(); ok && l.cfg.CanOpen {
			return l, func() tea.Msg { return OpenMsg{Item: item} }
		}
		return l, nil
	}

	var cmd tea.Cmd
	l.table, cmd = l.table.Update(msg)
	return l, cmd
}

// nextPageSize cycles through PageSizes
func nextPageSize(current int) int {
	for i, size := range PageSizes {
		if size == current {
			return PageSizes[(i+1)%len(PageSizes)]
		}
	}
	return PageSizes[0]
}

// syncRows copies the controller's items into the table
func (l *List[T]) syncRows() {
	items := l.ctrl.Items()
	rows := make([]table.Row, 0, len(items))
	for _, item := range items {
		rows = append(rows, l.cfg.Row(item))
	}
	l.table.SetRows(rows)
	if l.table.Cursor() >= len(rows) {
		l.table.SetCursor(max(0, len(rows)-1))
	}
}

// View implements tea.Model
func (l *List[T]) View() string {
	var sb strings.Builder

	sb.WriteString(styles.Title.Render(l.cfg.Icon.String() + " " + l.cfg.Title))
	sb.WriteString("\n")
	sb.WriteString(l.search.View())
	sb.WriteString("\n\n")

	switch l.ctrl.State() {
	case listing.Error:
		msg := fmt.Sprintf("Could not load %s\n\n%v\n\nPress r to retry", strings.ToLower(l.cfg.Title), l.ctrl.Err())
		sb.WriteString(styles.ErrorPanel.Render(msg))
	case listing.Idle, listing.Loading:
		if len(l.table.Rows()) == 0 {
			sb.WriteString(l.spinner.View() + " Loading...")
		} else {
			sb.WriteString(l.table.View())
		}
	default:
		if len(l.table.Rows()) == 0 {
			sb.WriteString(styles.Subtitle.Render("No results found"))
		} else {
			sb.WriteString(l.table.View())
		}
	}
	sb.WriteString("\n")
	sb.WriteString(l.renderPagination())

	if n := l.ctrl.Notice(); n != nil {
		sb.WriteString("\n")
		if n.IsError() {
			sb.WriteString(styles.NoticeError.Render(icons.Critical.String() + " " + n.Text))
		} else {
			sb.WriteString(styles.NoticeSuccess.Render(icons.CheckOK.String() + " " + n.Text))
		}
	}
	return sb.String()
}

// renderPagination renders "Page X of Y" with totals and the loading spinner
func (l *List[T]) renderPagination() string {
	q := l.ctrl.Query()
	parts := []string{fmt.Sprintf("Page %d of %d", q.Page, l.ctrl.TotalPages())}
	if page := l.ctrl.Page(); page != nil {
		parts = append(parts, humanize.Comma(int64(page.TotalItems))+" items")
	}
	parts = append(parts, fmt.Sprintf("%d per page", q.PageSize))
	if q.Search != "" {
		parts = append(parts, fmt.Sprintf("search %q", q.Search))
	}

	line := lipgloss.NewStyle().Foreground(styles.Muted).Render(strings.Join(parts, " · "))
	if l.ctrl.State() == listing.Loading {
		line += " " + l.spinner.View()
	}
	return line
}
