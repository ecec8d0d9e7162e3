// ABOUTME: Entry point for the igv-admin console
// ABOUTME: Interactive catalog and order management for the IGV shop

package main

import (
	"fmt"
	"os"

	"github.com/igvshop/igv-admin/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
