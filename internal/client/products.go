// ABOUTME: Product resource client
// ABOUTME: Paged listing, lookup by product code, create and full-replacement update

package client

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// Product status values
const (
	ProductActive   = "active"
	ProductInactive = "inactive"
)

// Product is a sellable account product
type Product struct {
	ID             int        `json:"id"`
	Code           string     `json:"code"`
	Slug           string     `json:"slug"`
	Name           string     `json:"name"`
	Price          Decimal    `json:"price"`
	CreatedAt      time.Time  `json:"createdAt"`
	CategoryID     int        `json:"categoryId"`
	UsernameLogAcc string     `json:"usernameLogAcc"`
	PasswordLogAcc string     `json:"passwordLogAcc"`
	ExtraInfo      *ExtraInfo `json:"extraInfo"`
	Status         string     `json:"status"`
	UpdatedAt      *time.Time `json:"updatedAt"`
}

// ProductPayload is the body of create and update
type ProductPayload struct {
	Code           string     `json:"code"`
	Slug           string     `json:"slug"`
	Name           string     `json:"name"`
	Price          float64    `json:"price"`
	CategoryID     int        `json:"category_id"`
	UsernameLogAcc string     `json:"username_log_acc"`
	PasswordLogAcc string     `json:"password_log_acc"`
	ExtraInfo      *ExtraInfo `json:"extra_info,omitempty"`
	Status         string     `json:"status"`
}

// ProductService talks to /products
type ProductService struct {
	c *Client
}

// List fetches one page of products
func (s *ProductService) List(ctx context.Context, f ListFilter) (*Page[Product], error) {
	return listPage[Product](ctx, s.c, "fetch products",
		endpoint(s.c.apiURL, "/products", f.values()))
}

// Find looks a product up by code. A missing product is (nil, nil), as is an
// empty code, which is never sent.
func (s *ProductService) Find(ctx context.Context, code string) (*Product, error) {
	const op = "find product"
	if code == "" {
		return nil, nil
	}

	q := url.Values{}
	q.Set("code", code)
	resp, err := s.c.send(ctx, op, http.MethodGet, endpoint(s.c.apiURL, "/products/find", q), nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, nil
	}
	if !isSuccess(resp) {
		return nil, handleErrorResponse(op, resp)
	}
	return decodeEnvelope[*Product](op, resp)
}

// Create adds a product
func (s *ProductService) Create(ctx context.Context, p ProductPayload) (*Product, error) {
	return call[*Product](ctx, s.c, "create product", http.MethodPost,
		endpoint(s.c.apiURL, "/products", nil), p)
}

// Update replaces the product with the given id
func (s *ProductService) Update(ctx context.Context, id int, p ProductPayload) (*Product, error) {
	return call[*Product](ctx, s.c, "update product", http.MethodPut,
		endpoint(s.c.apiURL, "/products/"+strconv.Itoa(id), nil), p)
}
