package cli

import (
	"fmt"
	"strconv"

	"github.com/fastbillx/checkout/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newCatalogCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Inspect and adjust the price catalog",
	}

	cmd.AddCommand(
		newCatalogListCmd(app),
		newCatalogSetCmd(app),
		newCatalogGetCmd(app),
	)

	return cmd
}

func newCatalogListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all explicitly priced products",
		RunE: func(cmd *cobra.Command, args []string) error {
			rows := make([][]string, 0, app.Catalog.Len())
			for _, name := range app.Catalog.Names() {
				rows = append(rows, []string{name, formatter.Money(app.Catalog.PriceOf(name))})
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.RenderTable([]string{"Product", "Price"}, rows))
			fmt.Fprintf(cmd.OutOrStdout(), "\n%d products\n", app.Catalog.Len())
			return nil
		},
	}
}

func newCatalogGetCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "get <name>",
		Short: "Look up one product's price",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			price := app.Catalog.PriceOf(args[0])
			note := ""
			if !app.Catalog.Has(args[0]) {
				note = formatter.Dim("  (default price, not in catalog)")
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s%s\n", formatter.Money(price), note)
			return nil
		},
	}
}

func newCatalogSetCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "set <name> <price>",
		Short: "Set a product's unit price",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			price, err := strconv.ParseFloat(args[1], 64)
			if err != nil {
				return fmt.Errorf("invalid price %q: %w", args[1], err)
			}
			app.Catalog.SetPrice(args[0], price)
			fmt.Fprintf(cmd.OutOrStdout(), "%s = %s\n", args[0], formatter.Money(app.Catalog.PriceOf(args[0])))
			return nil
		},
	}
}
