package main

import (
	"fmt"

	"github.com/erauner12/storefront/internal/orders"
	"github.com/erauner12/storefront/internal/pricing"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

func newOrdersCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "orders",
		Short: "List past orders",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireSession(); err != nil {
				return err
			}

			raw, err := a.client.MyOrders(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to fetch orders: %w", err)
			}

			renderOrders(cmd.OutOrStdout(), orders.Normalize(raw))
			return nil
		},
	}
}

func newAccountCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "account",
		Short: "Show the account overview",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireSession(); err != nil {
				return err
			}

			var history []orders.Order
			g, ctx := errgroup.WithContext(cmd.Context())
			g.Go(func() error {
				a.cart.Load(ctx)
				return nil
			})
			g.Go(func() error {
				raw, err := a.client.MyOrders(ctx)
				if err != nil {
					return fmt.Errorf("failed to fetch orders: %w", err)
				}
				history = orders.Normalize(raw)
				return nil
			})
			if err := g.Wait(); err != nil {
				return err
			}

			id := a.session.Identity()
			out := cmd.OutOrStdout()

			spent := 0.0
			for _, o := range history {
				spent += o.Total
			}
			summary := a.rules.Summarize(a.cart.Items())

			fmt.Fprintf(out, "Username: %s\n", id.Username)
			if id.UserID != "" {
				fmt.Fprintf(out, "User ID:  %s\n", id.UserID)
			}
			fmt.Fprintf(out, "Cart:     %s, %s\n", summary.ItemsLabel(), pricing.FormatPrice(summary.Total))
			fmt.Fprintf(out, "Orders:   %d, %s total\n", len(history), pricing.FormatPrice(spent))
			return nil
		},
	}
}
