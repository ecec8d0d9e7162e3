// ABOUTME: Order resource client, served from the API root rather than /api
// ABOUTME: Paged listing with status filter plus the order, QR session and line item lookups

package client

import (
	"context"
	"fmt"
	"net/http"
	"time"
)

// Order status values
const (
	OrderPaid    = "paid"
	OrderPending = "pending"
)

// Order is a customer order
type Order struct {
	ID          int     `json:"id"`
	Code        string  `json:"code,omitempty"`
	TotalAmount Decimal `json:"totalAmount"`
	Status      string  `json:"status"`
	UserID      ID      `json:"userId"`
	UserName    string  `json:"userName"`
	UserEmail   string  `json:"userEmail"`
}

// QRSession is a bank transfer QR code issued for an order
type QRSession struct {
	ID            int       `json:"id"`
	OrderID       int       `json:"orderId"`
	QRToken       string    `json:"qrToken"`
	BankCode      string    `json:"bankCode"`
	AccountNumber string    `json:"accountNumber"`
	Amount        Decimal   `json:"amount"`
	ExpiredAt     time.Time `json:"expiredAt"`
	Status        string    `json:"status"`
}

// OrderDetail is one line item of an order
type OrderDetail struct {
	ID          int       `json:"id"`
	Quantity    int       `json:"quantity"`
	ProductID   int       `json:"productId"`
	OrderID     int       `json:"orderId"`
	Price       Decimal   `json:"price"`
	ProductCode string    `json:"productCode"`
	ProductName string    `json:"productName"`
	CreatedAt   time.Time `json:"createdAt"`
}

// OrderService talks to /orders
type OrderService struct {
	c *Client
}

// List fetches one page of orders
func (s *OrderService) List(ctx context.Context, f OrderFilter) (*Page[Order], error) {
	return listPage[Order](ctx, s.c, "fetch orders",
		endpoint(s.c.apiRoot, "/orders", f.values()))
}

// Get fetches one order
func (s *OrderService) Get(ctx context.Context, id int) (*Order, error) {
	return call[*Order](ctx, s.c, "fetch order", http.MethodGet,
		endpoint(s.c.apiRoot, fmt.Sprintf("/orders/%d", id), nil), nil)
}

// QRSessions fetches the QR sessions issued for an order
func (s *OrderService) QRSessions(ctx context.Context, id int) ([]QRSession, error) {
	return call[[]QRSession](ctx, s.c, "fetch QR sessions", http.MethodGet,
		endpoint(s.c.apiRoot, fmt.Sprintf("/orders/%d/qr-sessions", id), nil), nil)
}

// Details fetches the line items of an order
func (s *OrderService) Details(ctx context.Context, id int) ([]OrderDetail, error) {
	return call[[]OrderDetail](ctx, s.c, "fetch order details", http.MethodGet,
		endpoint(s.c.apiRoot, fmt.Sprintf("/orders/%d/details", id), nil), nil)
}
