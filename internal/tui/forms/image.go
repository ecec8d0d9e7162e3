// ABOUTME: Product image create form and delete confirmation
// ABOUTME: Images are attached by product code, resolved to an ID when the write runs

package forms

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/igvshop/igv-admin/internal/client"
	"github.com/igvshop/igv-admin/internal/listing"
)

type imageValues struct {
	productCode string
	imageURL    string
	isMain      bool
	sortOrder   string
}

// NewProductImage returns a form attaching an image to a product
func NewProductImage() *Form {
	v := &imageValues{sortOrder: "0"}

	build := func() *huh.Form {
		return huh.NewForm(
			huh.NewGroup(
				huh.NewInput().
					Title("Product code").
					Value(&v.productCode).
					Validate(listing.Required("product_code")),
				huh.NewInput().
					Title("Image URL").
					Placeholder("https://").
					Value(&v.imageURL).
					Validate(listing.HTTPURL("image_url")),
				huh.NewConfirm().
					Title("Main image?").
					Value(&v.isMain),
				huh.NewInput().
					Title("Sort order").
					Value(&v.sortOrder).
					Validate(listing.NonNegativeInt("sort_order")),
			),
		).WithTheme(createTheme()).WithShowHelp(true)
	}

	return newForm("New product image", build, func() (*SubmittedMsg, error) {
		return imageSubmit(v)
	})
}

func imageSubmit(v *imageValues) (*SubmittedMsg, error) {
	code := strings.TrimSpace(v.productCode)
	if err := listing.Required("product_code")(code); err != nil {
		return nil, err
	}
	if err := listing.NonNegativeInt("sort_order")(v.sortOrder); err != nil {
		return nil, err
	}
	order, _ := strconv.Atoi(strings.TrimSpace(v.sortOrder))
	p := client.ProductImagePayload{
		ImageURL:  strings.TrimSpace(v.imageURL),
		IsMain:    v.isMain,
		SortOrder: order,
	}
	if err := listing.HTTPURL("image_url")(p.ImageURL); err != nil {
		return nil, err
	}

	return &SubmittedMsg{
		Success: "Image added",
		Write: func(ctx context.Context, c *client.Client) error {
			product, err := c.Products.Find(ctx, code)
			if err != nil {
				return err
			}
			if product == nil {
				return fmt.Errorf("product %q not found", code)
			}
			p.ProductID = product.ID
			if err := listing.ValidateProductImage(p); err != nil {
				return err
			}
			_, err = c.ProductImages.Create(ctx, p)
			return err
		},
	}, nil
}

// NewDeleteImage returns a confirmation that deletes img when accepted
func NewDeleteImage(img client.ProductImage) *Form {
	var confirmed bool
	title := fmt.Sprintf("Delete image #%d?", img.ID)

	build := func() *huh.Form {
		return huh.NewForm(
			huh.NewGroup(
				huh.NewConfirm().
					Title(title).
					Description(img.ImageURL).
					Affirmative("Delete").
					Negative("Cancel").
					Value(&confirmed),
			),
		).WithTheme(createTheme()).WithShowHelp(true)
	}

	return newForm("Delete product image", build, func() (*SubmittedMsg, error) {
		return deleteSubmit(img.ID, confirmed), nil
	})
}

func deleteSubmit(id int, confirmed bool) *SubmittedMsg {
	if !confirmed {
		return nil
	}
	return &SubmittedMsg{
		Success: "Image deleted",
		Write: func(ctx context.Context, c *client.Client) error {
			_, err := c.ProductImages.Delete(ctx, id)
			return err
		},
	}
}
