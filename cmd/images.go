// ABOUTME: Product image commands: list, create and delete
// ABOUTME: Images are attached by product code, resolved to the product ID first

package cmd

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/igvshop/igv-admin/internal/client"
	"github.com/igvshop/igv-admin/internal/listing"
	"github.com/spf13/cobra"
)

var (
	imageFilter      client.ListFilter
	imagePayload     client.ProductImagePayload
	imageProductCode string
)

var imagesCmd = &cobra.Command{
	Use:   "images",
	Short: "Manage product images",
}

var imagesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List product images",
	Run: func(cmd *cobra.Command, args []string) {
		withClient(func(ctx context.Context, w io.Writer, c *client.Client) int {
			return runImagesList(ctx, w, c, imageFilter)
		})
	},
}

var imagesCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Attach an image to a product",
	Run: func(cmd *cobra.Command, args []string) {
		withClient(func(ctx context.Context, w io.Writer, c *client.Client) int {
			return runImageCreate(ctx, w, c, imageProductCode, imagePayload)
		})
	},
}

var imagesDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a product image",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		withClient(func(ctx context.Context, w io.Writer, c *client.Client) int {
			id, err := strconv.Atoi(args[0])
			if err != nil || id <= 0 {
				return fail(w, fmt.Errorf("invalid image id %q", args[0]))
			}
			return runImageDelete(ctx, w, c, id)
		})
	},
}

func init() {
	addListFlags(imagesListCmd, &imageFilter)
	f := imagesCreateCmd.Flags()
	f.StringVar(&imageProductCode, "product-code", "", "Code of the product the image belongs to")
	f.IntVar(&imagePayload.ProductID, "product-id", 0, "Product ID (skips the code lookup)")
	f.StringVar(&imagePayload.ImageURL, "url", "", "Image URL (required)")
	f.BoolVar(&imagePayload.IsMain, "main", false, "Use as the main image")
	f.IntVar(&imagePayload.SortOrder, "sort-order", 0, "Position among the product's images")
	imagesCmd.AddCommand(imagesListCmd, imagesCreateCmd, imagesDeleteCmd)
	rootCmd.AddCommand(imagesCmd)
}

// runImagesList prints one page of product images
func runImagesList(ctx context.Context, w io.Writer, c *client.Client, f client.ListFilter) int {
	page, err := c.ProductImages.List(ctx, f)
	if err != nil {
		return fail(w, err)
	}
	return printPage(w, page, []string{"ID", "URL", "Main", "Order"}, func(img client.ProductImage) []string {
		main := ""
		if img.IsMain {
			main = "yes"
		}
		return []string{strconv.Itoa(img.ID), img.ImageURL, main, strconv.Itoa(img.SortOrder)}
	})
}

// runImageCreate attaches an image, resolving code to a product ID when no
// ID was given
func runImageCreate(ctx context.Context, w io.Writer, c *client.Client, code string, p client.ProductImagePayload) int {
	if p.ProductID == 0 && code != "" {
		product, err := c.Products.Find(ctx, code)
		if err != nil {
			return fail(w, err)
		}
		if product == nil {
			fmt.Fprintf(w, "Error: product %q not found\n", code)
			return exitNotFound
		}
		p.ProductID = product.ID
	}
	if err := listing.ValidateProductImage(p); err != nil {
		return fail(w, err)
	}

	saved, err := c.ProductImages.Create(ctx, p)
	if err != nil {
		return fail(w, err)
	}
	if IsJSONOutput() {
		return printJSON(w, saved)
	}
	fmt.Fprintf(w, "Added image to product %d\n", p.ProductID)
	return exitOK
}

// runImageDelete removes an image
func runImageDelete(ctx context.Context, w io.Writer, c *client.Client, id int) int {
	deleted, err := c.ProductImages.Delete(ctx, id)
	if err != nil {
		return fail(w, err)
	}
	if IsJSONOutput() {
		return printJSON(w, deleted)
	}
	fmt.Fprintf(w, "Deleted image %d\n", id)
	return exitOK
}
