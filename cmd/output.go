// ABOUTME: Shared output helpers for list and detail commands
// ABOUTME: Renders JSON for scripts and bordered tables for people

package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/igvshop/igv-admin/internal/client"
	"github.com/spf13/cobra"
)

// printJSON writes v as indented JSON
func printJSON(w io.Writer, v any) int {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fail(w, fmt.Errorf("failed to encode output: %w", err))
	}
	if _, err := fmt.Fprintln(w, string(data)); err != nil {
		return exitError
	}
	return exitOK
}

// renderTable formats rows under headers
func renderTable(headers []string, rows [][]string) string {
	return table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...).
		Rows(rows...).
		String()
}

// printPage writes one page of items as JSON or as a table with a page footer
func printPage[T any](w io.Writer, page *client.Page[T], headers []string, row func(T) []string) int {
	if IsJSONOutput() {
		return printJSON(w, page)
	}
	if len(page.Items) == 0 {
		fmt.Fprintln(w, "No results found")
		return exitOK
	}

	rows := make([][]string, 0, len(page.Items))
	for _, item := range page.Items {
		rows = append(rows, row(item))
	}
	fmt.Fprintln(w, renderTable(headers, rows))
	fmt.Fprintf(w, "Page %d of %d (%d items)\n", page.Page, max(page.TotalPages, 1), page.TotalItems)
	return exitOK
}

// addListFlags registers --search, --page and --page-size
func addListFlags(cmd *cobra.Command, f *client.ListFilter) {
	cmd.Flags().StringVar(&f.Search, "search", "", "Filter by search text")
	cmd.Flags().IntVar(&f.Page, "page", 1, "Page number")
	cmd.Flags().IntVar(&f.PageSize, "page-size", 10, "Items per page (10, 20, 50 or 100)")
}
