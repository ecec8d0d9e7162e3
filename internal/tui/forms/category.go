// ABOUTME: Product type create and edit form
// ABOUTME: Code and name are required; description is free text

package forms

import (
	"context"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/igvshop/igv-admin/internal/client"
	"github.com/igvshop/igv-admin/internal/listing"
)

type categoryValues struct {
	code        string
	name        string
	description string
}

func (v *categoryValues) payload() client.CategoryPayload {
	return client.CategoryPayload{
		Code:        strings.TrimSpace(v.code),
		Name:        strings.TrimSpace(v.name),
		Description: strings.TrimSpace(v.description),
	}
}

// NewCategory returns a form creating a product type, or editing existing
// when it is non-nil
func NewCategory(existing *client.Category) *Form {
	v := &categoryValues{}
	title := "New product type"
	if existing != nil {
		v.code = existing.Code
		v.name = existing.Name
		v.description = existing.Description
		title = "Edit product type " + existing.Code
	}

	build := func() *huh.Form {
		return huh.NewForm(
			huh.NewGroup(
				huh.NewInput().
					Title("Code").
					Value(&v.code).
					Validate(listing.Required("code")),
				huh.NewInput().
					Title("Name").
					Value(&v.name).
					Validate(listing.Required("name")),
				huh.NewText().
					Title("Description").
					Lines(3).
					Value(&v.description),
			),
		).WithTheme(createTheme()).WithShowHelp(true)
	}

	return newForm(title, build, func() (*SubmittedMsg, error) {
		return categorySubmit(existing, v)
	})
}

func categorySubmit(existing *client.Category, v *categoryValues) (*SubmittedMsg, error) {
	p := v.payload()
	if err := listing.ValidateCategory(p); err != nil {
		return nil, err
	}
	if existing == nil {
		return &SubmittedMsg{
			Success: "Product type created",
			Write: func(ctx context.Context, c *client.Client) error {
				_, err := c.Categories.Create(ctx, p)
				return err
			},
		}, nil
	}
	id := existing.ID
	return &SubmittedMsg{
		Success: "Product type updated",
		Write: func(ctx context.Context, c *client.Client) error {
			_, err := c.Categories.Update(ctx, id, p)
			return err
		},
	}, nil
}
