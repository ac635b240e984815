package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"lotusaroma/storefront-cli/internal/app/cli/client"
)

func newReviewsCommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reviews",
		Short: "Read and write product reviews",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "list <product-id>",
			Short: "List reviews of a product, oldest first",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				id, err := parseID(args[0])
				if err != nil {
					return err
				}

				reviews, err := app.Client.ListReviews(cmd.Context(), id)
				if err != nil {
					return err
				}
				printReviews(cmd.OutOrStdout(), reviews)
				return nil
			},
		},
		newReviewAddCommand(app),
	)

	return cmd
}

func newReviewAddCommand(app *App) *cobra.Command {
	var req client.ReviewRequest

	cmd := &cobra.Command{
		Use:   "add <product-id>",
		Short: "Post a review",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			review, err := app.Client.CreateReview(cmd.Context(), id, req)
			var apiErr *client.APIError
			if errors.As(err, &apiErr) && len(apiErr.Fields) > 0 {
				fmt.Fprintln(cmd.ErrOrStderr(), apiErr.Message)
				printFieldErrors(cmd.ErrOrStderr(), apiErr.Fields)
				return err
			}
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Review #%d posted\n", review.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&req.Username, "username", "", "display name")
	cmd.Flags().IntVar(&req.Rating, "rating", 0, "rating from 1 to 5")
	cmd.Flags().StringVar(&req.Comment, "comment", "", "review text, at least 10 characters")

	return cmd
}
