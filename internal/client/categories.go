// ABOUTME: Category (product type) resource client
// ABOUTME: The list endpoint returns a bare array, exposed here as one implicit page

package client

import (
	"context"
	"net/http"
	"net/url"
	"time"
)

// Category is a product type
type Category struct {
	ID          ID         `json:"id"`
	Code        string     `json:"code"`
	Name        string     `json:"name"`
	Description string     `json:"description,omitempty"`
	CreatedAt   *time.Time `json:"createdAt,omitempty"`
}

// CategoryPayload is the body of create and update
type CategoryPayload struct {
	Code        string `json:"code"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// CategoryService talks to /categories
type CategoryService struct {
	c *Client
}

// List fetches categories. The backend ignores paging on this endpoint and
// returns every match, so the result is always a single page.
func (s *CategoryService) List(ctx context.Context, f CategoryFilter) (*Page[Category], error) {
	items, err := call[[]Category](ctx, s.c, "fetch categories", http.MethodGet,
		endpoint(s.c.apiURL, "/categories", f.values()), nil)
	if err != nil {
		return nil, err
	}
	return SinglePage(items), nil
}

// Create adds a category
func (s *CategoryService) Create(ctx context.Context, p CategoryPayload) (*Category, error) {
	return call[*Category](ctx, s.c, "create category", http.MethodPost,
		endpoint(s.c.apiURL, "/categories", nil), p)
}

// Update replaces the category with the given id
func (s *CategoryService) Update(ctx context.Context, id ID, p CategoryPayload) (*Category, error) {
	return call[*Category](ctx, s.c, "update category", http.MethodPut,
		endpoint(s.c.apiURL, "/categories/"+url.PathEscape(id.String()), nil), p)
}
