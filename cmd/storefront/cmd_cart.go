package main

import (
	"errors"
	"strconv"

	"github.com/erauner12/storefront/internal/cart"
	"github.com/spf13/cobra"
)

func newCartCmd(a *app) *cobra.Command {
	show := func(cmd *cobra.Command, args []string) error {
		if err := a.requireSession(); err != nil {
			return err
		}
		a.cart.Load(cmd.Context())
		renderCart(cmd.OutOrStdout(), a.cart.Items(), a.rules)
		return nil
	}

	cmd := &cobra.Command{
		Use:   "cart",
		Short: "Show or change the cart",
		Args:  cobra.NoArgs,
		RunE:  show,
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "show",
			Short: "Show the cart with its order summary",
			Args:  cobra.NoArgs,
			RunE:  show,
		},
		&cobra.Command{
			Use:   "add PRODUCT_ID",
			Short: "Add one unit of a product",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				a.cart.AddItem(cmd.Context(), args[0])
				return a.printCart(cmd)
			},
		},
		&cobra.Command{
			Use:   "update PRODUCT_ID QUANTITY",
			Short: "Set the quantity of a cart line",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				qty, err := strconv.Atoi(args[1])
				if err != nil {
					return errors.New(cart.MsgInvalidQuantity)
				}
				a.cart.UpdateQuantity(cmd.Context(), args[0], qty)
				return a.printCart(cmd)
			},
		},
		&cobra.Command{
			Use:   "remove PRODUCT_ID",
			Short: "Remove a product from the cart",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				a.cart.RemoveItem(cmd.Context(), args[0])
				return a.printCart(cmd)
			},
		},
		&cobra.Command{
			Use:   "clear",
			Short: "Remove everything from the cart",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				a.cart.Clear(cmd.Context())
				return a.printCart(cmd)
			},
		},
	)

	return cmd
}

// printCart reports the engine error state, or renders the new snapshot
func (a *app) printCart(cmd *cobra.Command) error {
	if err := a.cartError(); err != nil {
		return err
	}
	renderCart(cmd.OutOrStdout(), a.cart.Items(), a.rules)
	return nil
}
