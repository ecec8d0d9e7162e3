// ABOUTME: Order detail view showing the order, its QR payment sessions and line items
// ABOUTME: The view renders only once all three lookups have succeeded

package orderdetail

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/igvshop/igv-admin/internal/listing"
	"github.com/igvshop/igv-admin/internal/tui/icons"
	"github.com/igvshop/igv-admin/internal/tui/styles"
	"github.com/igvshop/igv-admin/internal/tui/widgets"
)

// LoadedMsg carries the lookup result for the detail view identified by Ticket
type LoadedMsg struct {
	Ticket uint64
	Data   *listing.OrderView
	Err    error
}

// Detail displays one order
type Detail struct {
	orderID int
	data    *listing.OrderView
	width   int
	height  int
}

// New creates a detail view for orderID in the loading state
func New(orderID, width, height int) *Detail {
	return &Detail{
		orderID: orderID,
		width:   width,
		height:  height,
	}
}

// OrderID returns the order being shown
func (d *Detail) OrderID() int {
	return d.orderID
}

// SetData stores a successful lookup. Failed lookups close the view instead.
func (d *Detail) SetData(data *listing.OrderView) {
	d.data = data
}

// SetSize updates the view dimensions
func (d *Detail) SetSize(width, height int) {
	d.width = width
	d.height = height
}

// View renders the detail
func (d *Detail) View() string {
	title := styles.Title.Render(fmt.Sprintf("Order #%d", d.orderID))

	if d.data == nil {
		return title + "\n" + styles.Panel.Render("Loading order...")
	}

	var sb strings.Builder
	sb.WriteString(title)
	sb.WriteString("\n")
	sb.WriteString(d.renderOrder())
	sb.WriteString("\n")
	sb.WriteString(d.renderSessions())
	sb.WriteString("\n")
	sb.WriteString(d.renderLines())

	return lipgloss.NewStyle().
		Width(d.width).
		Render(sb.String())
}

func (d *Detail) renderOrder() string {
	o := d.data.Order
	var sb strings.Builder
	field := func(label, value string) {
		sb.WriteString(styles.LabelStyle.Render(fmt.Sprintf("%-10s", label)))
		sb.WriteString(styles.ValueStyle.Render(value))
		sb.WriteString("\n")
	}

	if o.Code != "" {
		field("Code", o.Code)
	}
	field("Status", widgets.Badge(widgets.StatusLabel(o.Status), widgets.OrderStatusLevel(o.Status)))
	field("Total", widgets.VND(o.TotalAmount))
	customer := o.UserName
	if o.UserEmail != "" {
		customer = fmt.Sprintf("%s <%s>", customer, o.UserEmail)
	}
	field("Customer", strings.TrimSpace(customer))

	return styles.Panel.Render(strings.TrimRight(sb.String(), "\n"))
}

func (d *Detail) renderSessions() string {
	var sb strings.Builder
	sb.WriteString(styles.Subtitle.Render(icons.QR.String() + " QR sessions"))
	sb.WriteString("\n")
	if len(d.data.Sessions) == 0 {
		sb.WriteString(styles.Help.Render("No QR sessions"))
		return sb.String()
	}
	for _, s := range d.data.Sessions {
		sb.WriteString(fmt.Sprintf("  %s  %s %s  %s  expires %s\n",
			widgets.StatusText(s.Status, widgets.OrderStatusLevel(s.Status)),
			s.BankCode,
			s.AccountNumber,
			widgets.VND(s.Amount),
			widgets.Relative(s.ExpiredAt),
		))
	}
	return strings.TrimRight(sb.String(), "\n")
}

func (d *Detail) renderLines() string {
	var sb strings.Builder
	sb.WriteString(styles.Subtitle.Render("Items"))
	sb.WriteString("\n")
	if len(d.data.Lines) == 0 {
		sb.WriteString(styles.Help.Render("No items"))
		return sb.String()
	}
	for _, l := range d.data.Lines {
		sb.WriteString(fmt.Sprintf("  %dx %s (%s)  %s\n",
			l.Quantity, l.ProductName, l.ProductCode, widgets.VND(l.Price)))
	}
	return strings.TrimRight(sb.String(), "\n")
}
