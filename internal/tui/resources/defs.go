// ABOUTME: Resource screen definitions: columns, row rendering and listers per resource
// ABOUTME: Binds each screen to its typed client, paging categories locally

package resources

import (
	"context"
	"strconv"

	"github.com/charmbracelet/bubbles/table"
	"github.com/igvshop/igv-admin/internal/client"
	"github.com/igvshop/igv-admin/internal/listing"
	"github.com/igvshop/igv-admin/internal/tui/icons"
	"github.com/igvshop/igv-admin/internal/tui/widgets"
)

func filter(q listing.Query) client.ListFilter {
	return client.ListFilter{Search: q.Search, Page: q.Page, PageSize: q.PageSize}
}

// Categories is the product type screen. The endpoint returns every match
// at once, so pages are cut locally.
func Categories(c *client.Client) Config[client.Category] {
	all := func(ctx context.Context, search string) ([]client.Category, error) {
		page, err := c.Categories.List(ctx, client.CategoryFilter{Search: search})
		if err != nil {
			return nil, err
		}
		return page.Items, nil
	}
	return Config[client.Category]{
		Title: "Product types",
		Icon:  icons.Category,
		Columns: []table.Column{
			{Title: "ID", Width: 6},
			{Title: "Code", Width: 14},
			{Title: "Name", Width: 28},
			{Title: "Description", Width: 40},
		},
		Row: func(cat client.Category) table.Row {
			return table.Row{cat.ID.String(), cat.Code, cat.Name, cat.Description}
		},
		List:      listing.LocalPages(all),
		CanCreate: true,
		CanEdit:   true,
	}
}

// Products is the product screen
func Products(c *client.Client) Config[client.Product] {
	return Config[client.Product]{
		Title: "Products",
		Icon:  icons.Product,
		Columns: []table.Column{
			{Title: "ID", Width: 6},
			{Title: "Code", Width: 12},
			{Title: "Name", Width: 28},
			{Title: "Price", Width: 14},
			{Title: "Status", Width: 12},
			{Title: "Type", Width: 6},
		},
		Row: func(p client.Product) table.Row {
			return table.Row{
				strconv.Itoa(p.ID),
				p.Code,
				p.Name,
				widgets.VND(p.Price),
				widgets.StatusText(p.Status, widgets.ProductStatusLevel(p.Status)),
				strconv.Itoa(p.CategoryID),
			}
		},
		List: func(ctx context.Context, q listing.Query) (*client.Page[client.Product], error) {
			return c.Products.List(ctx, filter(q))
		},
		CanCreate: true,
		CanEdit:   true,
	}
}

// ProductImages is the product image screen
func ProductImages(c *client.Client) Config[client.ProductImage] {
	return Config[client.ProductImage]{
		Title: "Product images",
		Icon:  icons.Image,
		Columns: []table.Column{
			{Title: "ID", Width: 6},
			{Title: "Image URL", Width: 50},
			{Title: "Main", Width: 6},
			{Title: "Order", Width: 6},
		},
		Row: func(img client.ProductImage) table.Row {
			main := ""
			if img.IsMain {
				main = icons.CheckOK.Fallback
			}
			return table.Row{strconv.Itoa(img.ID), img.ImageURL, main, strconv.Itoa(img.SortOrder)}
		},
		List: func(ctx context.Context, q listing.Query) (*client.Page[client.ProductImage], error) {
			return c.ProductImages.List(ctx, filter(q))
		},
		CanCreate: true,
		CanDelete: true,
	}
}

// Orders is the order screen; enter opens the order detail
func Orders(c *client.Client) Config[client.Order] {
	return Config[client.Order]{
		Title: "Orders",
		Icon:  icons.Order,
		Columns: []table.Column{
			{Title: "ID", Width: 6},
			{Title: "Total", Width: 14},
			{Title: "Status", Width: 12},
			{Title: "Customer", Width: 22},
			{Title: "Email", Width: 30},
		},
		Row: func(o client.Order) table.Row {
			return table.Row{
				strconv.Itoa(o.ID),
				widgets.VND(o.TotalAmount),
				widgets.StatusText(o.Status, widgets.OrderStatusLevel(o.Status)),
				o.UserName,
				o.UserEmail,
			}
		},
		List: func(ctx context.Context, q listing.Query) (*client.Page[client.Order], error) {
			return c.Orders.List(ctx, client.OrderFilter{ListFilter: filter(q)})
		},
		CanOpen: true,
	}
}

// Users is the read-only user screen
func Users(c *client.Client) Config[client.User] {
	return Config[client.User]{
		Title: "Users",
		Icon:  icons.User,
		Columns: []table.Column{
			{Title: "ID", Width: 8},
			{Title: "Name", Width: 24},
			{Title: "Email", Width: 30},
			{Title: "Google ID", Width: 24},
		},
		Row: func(u client.User) table.Row {
			return table.Row{u.ID.String(), u.Name, u.Email, u.GoogleID}
		},
		List: func(ctx context.Context, q listing.Query) (*client.Page[client.User], error) {
			return c.Users.List(ctx, filter(q))
		},
	}
}
