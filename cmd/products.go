// ABOUTME: Product commands: list, find, create and update
// ABOUTME: Extra info is passed as a JSON object and validated before sending

package cmd

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/igvshop/igv-admin/internal/client"
	"github.com/igvshop/igv-admin/internal/listing"
	"github.com/igvshop/igv-admin/internal/tui/widgets"
	"github.com/spf13/cobra"
)

var (
	productFilter  client.ListFilter
	productPayload client.ProductPayload
	productExtra   string
)

var productsCmd = &cobra.Command{
	Use:   "products",
	Short: "Manage products",
}

var productsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List products",
	Run: func(cmd *cobra.Command, args []string) {
		withClient(func(ctx context.Context, w io.Writer, c *client.Client) int {
			return runProductsList(ctx, w, c, productFilter)
		})
	},
}

var productsFindCmd = &cobra.Command{
	Use:   "find <code>",
	Short: "Look a product up by code",
	Long:  `Look a product up by code. Exits 1 when no product has that code.`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		withClient(func(ctx context.Context, w io.Writer, c *client.Client) int {
			return runProductFind(ctx, w, c, args[0])
		})
	},
}

var productsCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a product",
	Run: func(cmd *cobra.Command, args []string) {
		withClient(func(ctx context.Context, w io.Writer, c *client.Client) int {
			return runProductSave(ctx, w, c, 0, productPayload, productExtra)
		})
	},
}

var productsUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Replace a product",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		withClient(func(ctx context.Context, w io.Writer, c *client.Client) int {
			id, err := strconv.Atoi(args[0])
			if err != nil || id <= 0 {
				return fail(w, fmt.Errorf("invalid product id %q", args[0]))
			}
			return runProductSave(ctx, w, c, id, productPayload, productExtra)
		})
	},
}

func init() {
	addListFlags(productsListCmd, &productFilter)
	for _, c := range []*cobra.Command{productsCreateCmd, productsUpdateCmd} {
		f := c.Flags()
		f.StringVar(&productPayload.Code, "code", "", "Product code (required)")
		f.StringVar(&productPayload.Slug, "slug", "", "URL slug (required)")
		f.StringVar(&productPayload.Name, "name", "", "Display name (required)")
		f.Float64Var(&productPayload.Price, "price", 0, "Price in VND")
		f.IntVar(&productPayload.CategoryID, "category-id", 0, "Product type ID (required)")
		f.StringVar(&productPayload.UsernameLogAcc, "username", "", "Delivered account username (required)")
		f.StringVar(&productPayload.PasswordLogAcc, "password", "", "Delivered account password (required)")
		f.StringVar(&productExtra, "extra-info", "", "Extra info as a JSON object")
		f.StringVar(&productPayload.Status, "status", client.ProductActive, "active or inactive")
	}
	productsCmd.AddCommand(productsListCmd, productsFindCmd, productsCreateCmd, productsUpdateCmd)
	rootCmd.AddCommand(productsCmd)
}

func productRow(p client.Product) []string {
	return []string{
		strconv.Itoa(p.ID),
		p.Code,
		p.Name,
		widgets.VND(p.Price),
		widgets.StatusLabel(p.Status),
		strconv.Itoa(p.CategoryID),
	}
}

// runProductsList prints one page of products
func runProductsList(ctx context.Context, w io.Writer, c *client.Client, f client.ListFilter) int {
	page, err := c.Products.List(ctx, f)
	if err != nil {
		return fail(w, err)
	}
	return printPage(w, page, []string{"ID", "Code", "Name", "Price", "Status", "Type"}, productRow)
}

// runProductFind prints the product with code, or exits 1 when there is none
func runProductFind(ctx context.Context, w io.Writer, c *client.Client, code string) int {
	p, err := c.Products.Find(ctx, code)
	if err != nil {
		return fail(w, err)
	}
	if p == nil {
		if IsJSONOutput() {
			fmt.Fprintln(w, "null")
		} else {
			fmt.Fprintf(w, "No product with code %q\n", code)
		}
		return exitNotFound
	}

	if IsJSONOutput() {
		return printJSON(w, p)
	}
	fmt.Fprintf(w, `Product:    %s (id %d)
Name:       %s
Slug:       %s
Price:      %s
Status:     %s
Type:       %d
Account:    %s
Extra info: %s
`,
		p.Code, p.ID,
		p.Name,
		p.Slug,
		widgets.VND(p.Price),
		widgets.StatusLabel(p.Status),
		p.CategoryID,
		p.UsernameLogAcc,
		p.ExtraInfo.String())
	return exitOK
}

// runProductSave creates a product, or replaces id when it is set
func runProductSave(ctx context.Context, w io.Writer, c *client.Client, id int, p client.ProductPayload, extra string) int {
	info, err := client.ParseExtraInfo(extra)
	if err != nil {
		return fail(w, &listing.ValidationError{Field: "extra_info", Msg: "must be a JSON object"})
	}
	p.ExtraInfo = info
	if err := listing.ValidateProduct(p); err != nil {
		return fail(w, err)
	}

	var (
		saved *client.Product
		verb  = "Created"
	)
	if id == 0 {
		saved, err = c.Products.Create(ctx, p)
	} else {
		saved, err = c.Products.Update(ctx, id, p)
		verb = "Updated"
	}
	if err != nil {
		return fail(w, err)
	}

	if IsJSONOutput() {
		return printJSON(w, saved)
	}
	if saved != nil && saved.ID != 0 {
		id = saved.ID
	}
	if id == 0 {
		fmt.Fprintf(w, "%s product %s\n", verb, p.Code)
		return exitOK
	}
	fmt.Fprintf(w, "%s product %s (id %d)\n", verb, p.Code, id)
	return exitOK
}
