package cli

import (
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fastbillx/checkout/internal/cart"
	"github.com/fastbillx/checkout/internal/service"
	"github.com/fastbillx/checkout/internal/tui"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

func newWatchCmd(app *App) *cobra.Command {
	var (
		src      sourceFlags
		cooldown time.Duration
		interval time.Duration
		archive  bool
	)

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Watch a detection source live in a full-screen dashboard",
		Long: `Watch plays a detection source frame by frame and renders the cart
as it fills. Keys: q quits, c clears the cart, s saves it to disk.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
				return fmt.Errorf("watch requires a terminal; use 'checkout run' for scripted output")
			}

			source, closeSource, err := src.open()
			if err != nil {
				return err
			}
			defer closeSource()

			agg := cart.New(cart.WithCooldown(cooldown))
			svc := service.NewCheckoutService(agg, app.Catalog)

			model := tui.NewWatch(svc, agg, source, interval)
			program := tea.NewProgram(model, tea.WithAltScreen())
			if _, err := program.Run(); err != nil {
				return fmt.Errorf("running dashboard: %w", err)
			}

			// The alternate screen is gone at this point, so print the
			// receipt to the regular terminal for a lasting record.
			fmt.Fprintln(cmd.OutOrStdout(), agg.Receipt())

			if archive {
				snap := agg.Snapshot()
				if err := app.Archive.Archive(cmd.Context(), snap); err != nil {
					return fmt.Errorf("archiving session: %w", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Archived session %s\n", snap.ID)
			}
			return nil
		},
	}

	src.register(cmd)
	cmd.Flags().DurationVar(&cooldown, "cooldown", cart.DefaultCooldown, "per-item deduplication window")
	cmd.Flags().DurationVar(&interval, "interval", tui.DefaultFrameInterval, "delay between frames")
	cmd.Flags().BoolVar(&archive, "archive", false, "archive the session on exit")
	return cmd
}
