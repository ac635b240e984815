package commands

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"lotusaroma/pkg/cart"
	"lotusaroma/pkg/checkout"
	"lotusaroma/storefront-cli/internal/app/cli/client"
)

// formatPrice: 249900 -> ₹2499.00
func formatPrice(paisa int64) string {
	sign := ""
	if paisa < 0 {
		sign = "-"
		paisa = -paisa
	}
	return fmt.Sprintf("%s₹%d.%02d", sign, paisa/100, paisa%100)
}

func parseID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid product ID %q", arg)
	}
	return id, nil
}

func printProducts(w io.Writer, products []client.Product) {
	if len(products) == 0 {
		fmt.Fprintln(w, "No products found")
		return
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tCATEGORY\tPRICE\tRATING")
	for _, p := range products {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%.1f\n", p.ID, p.Name, p.Category, formatPrice(p.Price), p.AverageRating)
	}
	tw.Flush()
}

func printProduct(w io.Writer, p *client.Product) {
	fmt.Fprintf(w, "%s (#%d)\n", p.Name, p.ID)
	fmt.Fprintf(w, "%s\n\n", p.ShortDescription)
	fmt.Fprintf(w, "%s\n\n", p.Description)
	fmt.Fprintf(w, "Category: %s\n", p.Category)
	fmt.Fprintf(w, "Price:    %s\n", formatPrice(p.Price))
	fmt.Fprintf(w, "Sizes:    %s\n", strings.Join(p.Sizes, ", "))
	fmt.Fprintf(w, "Rating:   %.1f\n", p.AverageRating)

	stock := "in stock"
	if !p.InStock {
		stock = "out of stock"
	}
	fmt.Fprintf(w, "Stock:    %s\n", stock)
}

func printReviews(w io.Writer, reviews []client.Review) {
	if len(reviews) == 0 {
		fmt.Fprintln(w, "No reviews yet")
		return
	}
	for _, r := range reviews {
		fmt.Fprintf(w, "%s  %s  %s\n  %s\n", strings.Repeat("*", r.Rating), r.Username, r.CreatedAt.Format("2006-01-02"), r.Comment)
	}
}

func printCart(w io.Writer, items []cart.Item, totals cart.Totals) {
	if len(items) == 0 {
		fmt.Fprintln(w, "Your cart is empty")
		return
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tSIZE\tQTY\tPRICE\tLINE")
	for _, it := range items {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%d\t%s\t%s\n",
			it.ID, it.Name, it.Size, it.Quantity, formatPrice(it.Price), formatPrice(it.Price*int64(it.Quantity)))
	}
	tw.Flush()

	fmt.Fprintf(w, "Items: %d\n", totals.ItemCount)
	printTotals(w, checkout.ComputeTotals(totals.Subtotal, checkout.DefaultPolicy))
}

func printTotals(w io.Writer, t checkout.Totals) {
	fmt.Fprintf(w, "Subtotal: %s\n", formatPrice(t.Subtotal))
	fmt.Fprintf(w, "Shipping: %s\n", formatPrice(t.Shipping))
	fmt.Fprintf(w, "Tax:      %s\n", formatPrice(t.Tax))
	fmt.Fprintf(w, "Total:    %s\n", formatPrice(t.Total))
}

func printFieldErrors(w io.Writer, fields []client.FieldError) {
	for _, f := range fields {
		fmt.Fprintf(w, "  %s: %s\n", f.Field, f.Message)
	}
}
