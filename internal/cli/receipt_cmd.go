package cli

import (
	"context"
	"fmt"

	"github.com/fastbillx/checkout/internal/cart"
	"github.com/fastbillx/checkout/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newReceiptCmd(app *App) *cobra.Command {
	var fromFile string

	cmd := &cobra.Command{
		Use:   "receipt [session-id]",
		Short: "Render the receipt of a saved cart file or archived session",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			if fromFile != "" {
				doc, err := cart.Load(fromFile)
				if err != nil {
					return err
				}
				fmt.Fprintln(out, formatter.DocumentReceipt(doc))
				return nil
			}

			if len(args) == 0 {
				return fmt.Errorf("provide a session id or --from-file")
			}

			snap, err := app.Archive.Get(context.Background(), args[0])
			if err != nil {
				return err
			}

			fmt.Fprintln(out, formatter.Header("checkout receipt"))
			fmt.Fprintf(out, "%s %s\n", formatter.Dim("session:"), snap.ID)
			fmt.Fprintf(out, "%s %s\n\n", formatter.Dim("saved:"), snap.SavedAt.Format("2006-01-02 15:04:05"))
			fmt.Fprint(out, formatter.CartTable(snap.Lines))
			fmt.Fprintf(out, "\n%s\n", formatter.CartTotals(snap.TotalItems, snap.TotalAmount))
			return nil
		},
	}

	cmd.Flags().StringVar(&fromFile, "from-file", "", "Read from a saved cart JSON file instead of the archive")

	return cmd
}
