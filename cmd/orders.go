// ABOUTME: Order commands: list with status filter and show with QR sessions and items
// ABOUTME: Show joins three lookups and prints nothing unless all succeed

package cmd

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/igvshop/igv-admin/internal/client"
	"github.com/igvshop/igv-admin/internal/listing"
	"github.com/igvshop/igv-admin/internal/tui/widgets"
	"github.com/spf13/cobra"
)

var orderFilter client.OrderFilter

var ordersCmd = &cobra.Command{
	Use:   "orders",
	Short: "Review orders",
}

var ordersListCmd = &cobra.Command{
	Use:   "list",
	Short: "List orders",
	Run: func(cmd *cobra.Command, args []string) {
		withClient(func(ctx context.Context, w io.Writer, c *client.Client) int {
			return runOrdersList(ctx, w, c, orderFilter)
		})
	},
}

var ordersShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show an order with its QR sessions and items",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		withClient(func(ctx context.Context, w io.Writer, c *client.Client) int {
			id, err := strconv.Atoi(args[0])
			if err != nil || id <= 0 {
				return fail(w, fmt.Errorf("invalid order id %q", args[0]))
			}
			return runOrderShow(ctx, w, c, id)
		})
	},
}

func init() {
	addListFlags(ordersListCmd, &orderFilter.ListFilter)
	ordersListCmd.Flags().StringVar(&orderFilter.Status, "status", "", "Filter by status (paid, pending)")
	ordersCmd.AddCommand(ordersListCmd, ordersShowCmd)
	rootCmd.AddCommand(ordersCmd)
}

// runOrdersList prints one page of orders
func runOrdersList(ctx context.Context, w io.Writer, c *client.Client, f client.OrderFilter) int {
	page, err := c.Orders.List(ctx, f)
	if err != nil {
		return fail(w, err)
	}
	return printPage(w, page, []string{"ID", "Customer", "Email", "Total", "Status"}, func(o client.Order) []string {
		return []string{strconv.Itoa(o.ID), o.UserName, o.UserEmail, widgets.VND(o.TotalAmount), widgets.StatusLabel(o.Status)}
	})
}

// runOrderShow prints an order with its QR sessions and line items
func runOrderShow(ctx context.Context, w io.Writer, c *client.Client, id int) int {
	data, err := listing.FetchOrder(ctx, c, id)
	if err != nil {
		return fail(w, err)
	}

	if IsJSONOutput() {
		return printJSON(w, data)
	}
	fmt.Fprintln(w, formatOrderHuman(data))
	return exitOK
}

// formatOrderHuman formats an order for human readability
func formatOrderHuman(d *listing.OrderView) string {
	o := d.Order
	var sb strings.Builder
	fmt.Fprintf(&sb, `Order:    #%d %s
Status:   %s
Total:    %s
Customer: %s %s
`, o.ID, o.Code, widgets.StatusLabel(o.Status), widgets.VND(o.TotalAmount), o.UserName, o.UserEmail)

	sb.WriteString("\nQR sessions:\n")
	if len(d.Sessions) == 0 {
		sb.WriteString("  none\n")
	} else {
		rows := make([][]string, 0, len(d.Sessions))
		for _, s := range d.Sessions {
			rows = append(rows, []string{s.BankCode, s.AccountNumber, widgets.VND(s.Amount), widgets.StatusLabel(s.Status), widgets.Timestamp(s.ExpiredAt)})
		}
		sb.WriteString(renderTable([]string{"Bank", "Account", "Amount", "Status", "Expires"}, rows))
		sb.WriteString("\n")
	}

	sb.WriteString("\nItems:\n")
	if len(d.Lines) == 0 {
		sb.WriteString("  none")
	} else {
		rows := make([][]string, 0, len(d.Lines))
		for _, l := range d.Lines {
			rows = append(rows, []string{l.ProductCode, l.ProductName, strconv.Itoa(l.Quantity), widgets.VND(l.Price)})
		}
		sb.WriteString(renderTable([]string{"Code", "Product", "Qty", "Price"}, rows))
	}
	return strings.TrimRight(sb.String(), "\n")
}
