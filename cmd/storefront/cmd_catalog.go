package main

import (
	"fmt"

	"github.com/erauner12/storefront/internal/pricing"
	"github.com/spf13/cobra"
)

func newProductsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "products",
		Short: "List the catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			products, err := a.client.Products(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(products) == 0 {
				fmt.Fprintln(out, "No products available")
				return nil
			}

			tw := newTable(out)
			fmt.Fprintln(tw, "ID\tTITLE\tPRICE\tSTOCK")
			for _, p := range products {
				stock := fmt.Sprintf("%d", p.Stock)
				if !p.InStock() {
					stock = "Out of stock"
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", p.ID, p.Title, pricing.FormatPrice(p.Price), stock)
			}
			return tw.Flush()
		},
	}
}
