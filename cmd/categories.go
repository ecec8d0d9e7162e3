// ABOUTME: Product type commands: list, create and update
// ABOUTME: The backend returns every match at once, so paging happens here

package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/igvshop/igv-admin/internal/client"
	"github.com/igvshop/igv-admin/internal/listing"
	"github.com/spf13/cobra"
)

var (
	categoryFilter  client.ListFilter
	categoryPayload client.CategoryPayload
)

var categoriesCmd = &cobra.Command{
	Use:     "categories",
	Aliases: []string{"types"},
	Short:   "Manage product types",
}

var categoriesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List product types",
	Run: func(cmd *cobra.Command, args []string) {
		withClient(func(ctx context.Context, w io.Writer, c *client.Client) int {
			return runCategoriesList(ctx, w, c, categoryFilter)
		})
	},
}

var categoriesCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a product type",
	Run: func(cmd *cobra.Command, args []string) {
		withClient(func(ctx context.Context, w io.Writer, c *client.Client) int {
			return runCategorySave(ctx, w, c, "", categoryPayload)
		})
	},
}

var categoriesUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Replace a product type",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		withClient(func(ctx context.Context, w io.Writer, c *client.Client) int {
			return runCategorySave(ctx, w, c, client.ID(args[0]), categoryPayload)
		})
	},
}

func init() {
	addListFlags(categoriesListCmd, &categoryFilter)
	for _, c := range []*cobra.Command{categoriesCreateCmd, categoriesUpdateCmd} {
		c.Flags().StringVar(&categoryPayload.Code, "code", "", "Product type code (required)")
		c.Flags().StringVar(&categoryPayload.Name, "name", "", "Display name (required)")
		c.Flags().StringVar(&categoryPayload.Description, "description", "", "Description")
	}
	categoriesCmd.AddCommand(categoriesListCmd, categoriesCreateCmd, categoriesUpdateCmd)
	rootCmd.AddCommand(categoriesCmd)
}

// runCategoriesList prints one locally sliced page of product types
func runCategoriesList(ctx context.Context, w io.Writer, c *client.Client, f client.ListFilter) int {
	all, err := c.Categories.List(ctx, client.CategoryFilter{Search: f.Search})
	if err != nil {
		return fail(w, err)
	}
	page := client.Paginate(all.Items, f.Page, f.PageSize)

	return printPage(w, page, []string{"ID", "Code", "Name", "Description"}, func(cat client.Category) []string {
		return []string{cat.ID.String(), cat.Code, cat.Name, cat.Description}
	})
}

// runCategorySave creates a product type, or replaces id when it is set
func runCategorySave(ctx context.Context, w io.Writer, c *client.Client, id client.ID, p client.CategoryPayload) int {
	if err := listing.ValidateCategory(p); err != nil {
		return fail(w, err)
	}

	var (
		saved *client.Category
		err   error
		verb  = "Created"
	)
	if id == "" {
		saved, err = c.Categories.Create(ctx, p)
	} else {
		saved, err = c.Categories.Update(ctx, id, p)
		verb = "Updated"
	}
	if err != nil {
		return fail(w, err)
	}

	if IsJSONOutput() {
		return printJSON(w, saved)
	}
	if saved != nil && saved.ID != "" {
		id = saved.ID
	}
	if id == "" {
		fmt.Fprintf(w, "%s product type %s\n", verb, p.Code)
		return exitOK
	}
	fmt.Fprintf(w, "%s product type %s (id %s)\n", verb, p.Code, id)
	return exitOK
}
