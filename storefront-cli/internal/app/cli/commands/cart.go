package commands

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"lotusaroma/pkg/cart"
)

func newCartCommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cart",
		Short: "Manage the local cart",
	}

	cmd.AddCommand(
		newCartAddCommand(app),
		newCartRemoveCommand(app),
		newCartSetCommand(app),
		&cobra.Command{
			Use:   "clear",
			Short: "Empty the cart",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				if err := app.Cart.Clear(); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "Cart cleared")
				return nil
			},
		},
		&cobra.Command{
			Use:   "show",
			Short: "Show cart contents and totals",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				printCart(cmd.OutOrStdout(), app.Cart.Items(), app.Cart.Totals())
				return nil
			},
		},
	)

	return cmd
}

// newCartAddCommand снимает название, цену и картинку с товара в момент добавления
func newCartAddCommand(app *App) *cobra.Command {
	var (
		size     string
		quantity int
	)

	cmd := &cobra.Command{
		Use:   "add <product-id>",
		Short: "Add a product to the cart",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			product, err := app.Client.GetProduct(cmd.Context(), id)
			if err != nil {
				return err
			}

			if size == "" && len(product.Sizes) > 0 {
				size = product.Sizes[0]
			}
			if len(product.Sizes) > 0 && !product.HasSize(size) {
				return fmt.Errorf("%s is not available in %s", product.Name, size)
			}

			err = app.Cart.Add(cart.Item{
				ID:       product.ID,
				Name:     product.Name,
				Price:    product.Price,
				Image:    product.PrimaryImage(),
				Quantity: quantity,
				Size:     size,
			})
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Added %d x %s (%s)\n", quantity, product.Name, size)
			return nil
		},
	}

	cmd.Flags().StringVar(&size, "size", "", "bottle size, defaults to the first offered")
	cmd.Flags().IntVarP(&quantity, "quantity", "q", 1, "number of bottles")

	return cmd
}

func newCartRemoveCommand(app *App) *cobra.Command {
	var size string

	cmd := &cobra.Command{
		Use:   "remove <product-id>",
		Short: "Remove a product size from the cart",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return app.Cart.Remove(id, size)
		},
	}

	cmd.Flags().StringVar(&size, "size", "", "bottle size")
	_ = cmd.MarkFlagRequired("size")

	return cmd
}

// newCartSetCommand: количество 0 и меньше удаляет позицию
func newCartSetCommand(app *App) *cobra.Command {
	var size string

	cmd := &cobra.Command{
		Use:   "set <product-id> <quantity>",
		Short: "Change the quantity of a cart item",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			quantity, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid quantity %q", args[1])
			}
			return app.Cart.SetQuantity(id, size, quantity)
		},
	}

	cmd.Flags().StringVar(&size, "size", "", "bottle size")
	_ = cmd.MarkFlagRequired("size")

	return cmd
}
