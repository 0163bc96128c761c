package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/fastbillx/checkout/internal/cart"
	"github.com/fastbillx/checkout/internal/cli/formatter"
	"github.com/fastbillx/checkout/internal/domain"
	"github.com/fastbillx/checkout/internal/service"
	"github.com/spf13/cobra"
)

func newRunCmd(app *App) *cobra.Command {
	var (
		src       sourceFlags
		cooldown  time.Duration
		maxFrames int
		saveCart  bool
		output    string
		archive   bool
		prices    string
		quiet     bool
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the checkout pipeline headless and print the receipt",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			out := cmd.OutOrStdout()

			if prices != "" {
				if err := app.Catalog.LoadFile(prices); err != nil {
					return err
				}
			}

			source, closeSource, err := src.open()
			if err != nil {
				return err
			}
			defer closeSource()

			agg := cart.New(cart.WithCooldown(cooldown))
			svc := service.NewCheckoutService(agg, app.Catalog)

			opts := service.RunOptions{MaxFrames: maxFrames}
			if !quiet {
				opts.FrameHook = func(frame int, detections []domain.Detection, accepted int) {
					if accepted == 0 {
						return
					}
					fmt.Fprintf(out, "frame %d: +%d item(s)  %s\n",
						frame, accepted, formatter.CartTotals(agg.ItemCount(), agg.Total()))
				}
			}

			result, err := svc.Run(ctx, source, opts)
			if err != nil {
				return err
			}

			fmt.Fprintf(out, "\n%d frames, %d accepted, %d deduplicated\n\n",
				result.Frames, result.Accepted, result.Rejected)
			fmt.Fprintln(out, agg.Receipt())

			if saveCart {
				path, err := agg.Save(output)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "\nCart saved to %s\n", path)
			}
			if archive {
				if err := app.Archive.Archive(ctx, agg.Snapshot()); err != nil {
					return err
				}
				fmt.Fprintf(out, "Session %s archived\n", agg.SessionID())
			}
			return nil
		},
	}

	src.register(cmd)
	cmd.Flags().DurationVar(&cooldown, "cooldown", cart.DefaultCooldown,
		"dedup window before the same product counts again (historic call sites used 2s and 5s)")
	cmd.Flags().IntVar(&maxFrames, "max-frames", 0, "Stop after N frames (0 = play the whole source)")
	cmd.Flags().BoolVar(&saveCart, "save", false, "Write the cart JSON file at the end of the run")
	cmd.Flags().StringVar(&output, "output", "", "Cart file path (default cart_<session>.json)")
	cmd.Flags().BoolVar(&archive, "archive", false, "Archive the session snapshot to the database")
	cmd.Flags().StringVar(&prices, "prices", "", "YAML price file merged over the built-in catalog")
	cmd.Flags().BoolVar(&quiet, "quiet", false, "Suppress per-frame progress lines")

	return cmd
}
