// ABOUTME: Product image resource client
// ABOUTME: Paged listing, create and delete; images are never updated in place

package client

import (
	"context"
	"net/http"
	"strconv"
)

// ProductImage is one image attached to a product
type ProductImage struct {
	ID        int    `json:"id"`
	ImageURL  string `json:"imageUrl"`
	IsMain    bool   `json:"isMain"`
	SortOrder int    `json:"sortOrder"`
}

// ProductImagePayload is the body of create
type ProductImagePayload struct {
	ProductID int    `json:"product_id"`
	ImageURL  string `json:"image_url"`
	IsMain    bool   `json:"is_main"`
	SortOrder int    `json:"sort_order"`
}

// ProductImageService talks to /product-image
type ProductImageService struct {
	c *Client
}

// List fetches one page of product images
func (s *ProductImageService) List(ctx context.Context, f ListFilter) (*Page[ProductImage], error) {
	return listPage[ProductImage](ctx, s.c, "fetch product images",
		endpoint(s.c.apiURL, "/product-image", f.values()))
}

// Create attaches an image to a product
func (s *ProductImageService) Create(ctx context.Context, p ProductImagePayload) (*ProductImage, error) {
	return call[*ProductImage](ctx, s.c, "create product image", http.MethodPost,
		endpoint(s.c.apiURL, "/product-image", nil), p)
}

// Delete removes an image. Callers refetch their list afterwards.
func (s *ProductImageService) Delete(ctx context.Context, id int) (*ProductImage, error) {
	return call[*ProductImage](ctx, s.c, "delete product image", http.MethodDelete,
		endpoint(s.c.apiURL, "/product-image/"+strconv.Itoa(id), nil), nil)
}
