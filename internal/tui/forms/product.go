// ABOUTME: Product create and edit form
// ABOUTME: Two steps: catalog fields with a product type picker, then the delivered account

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

// Form field values (strings for huh)
type productValues struct {
	code       string
	slug       string
	name       string
	price      string
	categoryID int
	username   string
	password   string
	extraInfo  string
	status     string
}

func (v *productValues) payload() (client.ProductPayload, error) {
	p := client.ProductPayload{
		Code:           strings.TrimSpace(v.code),
		Slug:           strings.TrimSpace(v.slug),
		Name:           strings.TrimSpace(v.name),
		UsernameLogAcc: strings.TrimSpace(v.username),
		PasswordLogAcc: v.password,
		Status:         v.status,
	}

	if err := listing.NonNegativeNumber("price")(v.price); err != nil {
		return p, err
	}
	p.Price, _ = strconv.ParseFloat(strings.TrimSpace(v.price), 64)

	p.CategoryID = v.categoryID

	extra, err := client.ParseExtraInfo(v.extraInfo)
	if err != nil {
		return p, &listing.ValidationError{Field: "extra_info", Msg: "must be a JSON object"}
	}
	p.ExtraInfo = extra

	return p, listing.ValidateProduct(p)
}

// FetchCategories loads every product type for the product form's picker
func FetchCategories(ctx context.Context, c *client.Client) ([]client.Category, error) {
	page, err := c.Categories.List(ctx, client.CategoryFilter{})
	if err != nil {
		return nil, err
	}
	return page.Items, nil
}

// categoryOptions turns product types into picker options. Types without a
// numeric id cannot be referenced by a product and are left out. A current
// id missing from the list keeps an option of its own so editing does not
// silently move the product.
func categoryOptions(categories []client.Category, current int) []huh.Option[int] {
	var opts []huh.Option[int]
	found := false
	for _, cat := range categories {
		id := cat.ID.Int()
		if id <= 0 {
			continue
		}
		label := cat.Name
		if cat.Code != "" {
			label = fmt.Sprintf("%s (%s)", cat.Name, cat.Code)
		}
		opts = append(opts, huh.NewOption(label, id))
		found = found || id == current
	}
	if current > 0 && !found {
		opts = append(opts, huh.NewOption(fmt.Sprintf("#%d (not listed)", current), current))
	}
	return opts
}

// NewProduct returns a form creating a product, or editing existing when it
// is non-nil. categories feed the product type picker.
func NewProduct(existing *client.Product, categories []client.Category) *Form {
	v := &productValues{status: client.ProductActive}
	title := "New product"
	if existing != nil {
		v.code = existing.Code
		v.slug = existing.Slug
		v.name = existing.Name
		v.price = existing.Price.String()
		v.categoryID = existing.CategoryID
		v.username = existing.UsernameLogAcc
		v.password = existing.PasswordLogAcc
		if existing.ExtraInfo != nil && existing.ExtraInfo.Len() > 0 {
			v.extraInfo = existing.ExtraInfo.Indent()
		}
		if existing.Status != "" {
			v.status = existing.Status
		}
		title = "Edit product " + existing.Code
	}

	options := categoryOptions(categories, v.categoryID)
	if v.categoryID <= 0 && len(options) > 0 {
		v.categoryID = options[0].Value
	}
	typeDescription := ""
	if len(options) == 0 {
		typeDescription = "No product types yet, create one first"
	}

	build := func() *huh.Form {
		return huh.NewForm(
			huh.NewGroup(
				huh.NewInput().
					Title("Code").
					Value(&v.code).
					Validate(listing.Required("code")),
				huh.NewInput().
					Title("Slug").
					Value(&v.slug).
					Validate(listing.Required("slug")),
				huh.NewInput().
					Title("Name").
					Value(&v.name).
					Validate(listing.Required("name")),
				huh.NewInput().
					Title("Price (VND)").
					Value(&v.price).
					Validate(listing.NonNegativeNumber("price")),
				huh.NewSelect[int]().
					Title("Product type").
					Description(typeDescription).
					Options(options...).
					Value(&v.categoryID).
					Validate(func(id int) error {
						return listing.PositiveInt("category_id")(strconv.Itoa(id))
					}),
				huh.NewSelect[string]().
					Title("Status").
					Options(
						huh.NewOption("Active", client.ProductActive),
						huh.NewOption("Inactive", client.ProductInactive),
					).
					Value(&v.status),
			).Title("Catalog"),
			huh.NewGroup(
				huh.NewInput().
					Title("Account username").
					Value(&v.username).
					Validate(listing.Required("username_log_acc")),
				huh.NewInput().
					Title("Account password").
					EchoMode(huh.EchoModePassword).
					Value(&v.password).
					Validate(listing.Required("password_log_acc")),
				huh.NewText().
					Title("Extra info").
					Description("JSON object, leave blank for none").
					Lines(5).
					Value(&v.extraInfo).
					Validate(listing.JSONObject("extra_info")),
			).Title("Delivered account"),
		).WithTheme(createTheme()).WithShowHelp(true)
	}

	return newForm(title, build, func() (*SubmittedMsg, error) {
		return productSubmit(existing, v)
	})
}

func productSubmit(existing *client.Product, v *productValues) (*SubmittedMsg, error) {
	p, err := v.payload()
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return &SubmittedMsg{
			Success: "Product created",
			Write: func(ctx context.Context, c *client.Client) error {
				_, err := c.Products.Create(ctx, p)
				return err
			},
		}, nil
	}
	id := existing.ID
	return &SubmittedMsg{
		Success: "Product updated",
		Write: func(ctx context.Context, c *client.Client) error {
			_, err := c.Products.Update(ctx, id, p)
			return err
		},
	}, nil
}
