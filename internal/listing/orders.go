// ABOUTME: Joined order lookup used by the order detail view and the orders show command
// ABOUTME: The order, its QR sessions and its line items load together or not at all

package listing

import (
	"context"
	"fmt"

	"github.com/igvshop/igv-admin/internal/client"
)

// OrderView is the joined result of the three order lookups
type OrderView struct {
	Order    *client.Order        `json:"order"`
	Sessions []client.QRSession   `json:"qrSessions"`
	Lines    []client.OrderDetail `json:"details"`
}

// FetchOrder runs the order, QR session and line item lookups concurrently.
// Any failure discards the partial results.
func FetchOrder(ctx context.Context, c *client.Client, orderID int) (*OrderView, error) {
	var v OrderView
	err := FanOut(ctx,
		func(ctx context.Context) error {
			order, err := c.Orders.Get(ctx, orderID)
			v.Order = order
			return err
		},
		func(ctx context.Context) error {
			sessions, err := c.Orders.QRSessions(ctx, orderID)
			v.Sessions = sessions
			return err
		},
		func(ctx context.Context) error {
			lines, err := c.Orders.Details(ctx, orderID)
			v.Lines = lines
			return err
		},
	)
	if err != nil {
		return nil, err
	}
	if v.Order == nil {
		return nil, fmt.Errorf("order %d not found", orderID)
	}
	return &v, nil
}
