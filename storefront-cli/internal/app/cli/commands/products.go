package commands

import (
	"strings"

	"github.com/spf13/cobra"
)

// MinQueryLength - более короткий запрос клиент не отправляет и ничего не показывает.
// Сервер при этом принимает любой запрос, пустой означает весь каталог.
const MinQueryLength = 2

func newProductsCommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "products",
		Aliases: []string{"p"},
		Short:   "Browse the catalog",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List every product",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				products, err := app.Client.ListProducts(cmd.Context(), "")
				if err != nil {
					return err
				}
				printProducts(cmd.OutOrStdout(), products)
				return nil
			},
		},
		&cobra.Command{
			Use:   "search <query>",
			Short: "Search by name, description or category",
			Args:  cobra.MinimumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				query := strings.TrimSpace(strings.Join(args, " "))
				if len([]rune(query)) < MinQueryLength {
					return nil
				}

				products, err := app.Client.ListProducts(cmd.Context(), query)
				if err != nil {
					return err
				}
				printProducts(cmd.OutOrStdout(), products)
				return nil
			},
		},
		&cobra.Command{
			Use:   "new",
			Short: "List new arrivals",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				products, err := app.Client.NewArrivals(cmd.Context())
				if err != nil {
					return err
				}
				printProducts(cmd.OutOrStdout(), products)
				return nil
			},
		},
		&cobra.Command{
			Use:   "bestsellers",
			Short: "List bestsellers",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				products, err := app.Client.Bestsellers(cmd.Context())
				if err != nil {
					return err
				}
				printProducts(cmd.OutOrStdout(), products)
				return nil
			},
		},
		&cobra.Command{
			Use:   "show <id>",
			Short: "Show one product",
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
				printProduct(cmd.OutOrStdout(), product)
				return nil
			},
		},
	)

	return cmd
}
