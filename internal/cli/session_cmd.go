package cli

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/fastbillx/checkout/internal/cart"
	"github.com/fastbillx/checkout/internal/cli/formatter"
	"github.com/fastbillx/checkout/internal/domain"
	"github.com/fastbillx/checkout/internal/export"
	"github.com/spf13/cobra"
)

func newSessionCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "session",
		Short: "Manage archived checkout sessions",
	}

	cmd.AddCommand(
		newSessionListCmd(app),
		newSessionShowCmd(app),
		newSessionDeleteCmd(app),
		newSessionExportCmd(app),
	)

	return cmd
}

func newSessionListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List archived sessions, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			sessions, err := app.Archive.List(context.Background())
			if err != nil {
				return err
			}
			if len(sessions) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No archived sessions.")
				return nil
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.SessionTable(sessions))
			return nil
		},
	}
}

func newSessionShowCmd(app *App) *cobra.Command {
	var withHistory bool

	cmd := &cobra.Command{
		Use:   "show <session-id>",
		Short: "Show one archived session's cart and audit log",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			snap, err := app.Archive.Get(context.Background(), args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			fmt.Fprintln(out, formatter.Header(snap.ID))
			fmt.Fprint(out, formatter.CartTable(snap.Lines))
			fmt.Fprintf(out, "\n%s\n", formatter.CartTotals(snap.TotalItems, snap.TotalAmount))

			if withHistory {
				fmt.Fprintf(out, "\n%s\n", formatter.Header("history"))
				fmt.Fprint(out, formatter.HistoryTable(snap.History))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&withHistory, "history", false, "Include the audit log")

	return cmd
}

func newSessionDeleteCmd(app *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete <session-id>",
		Short: "Delete an archived session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				var confirmed bool
				form := huh.NewForm(huh.NewGroup(
					huh.NewConfirm().
						Title(fmt.Sprintf("Delete session %s and its history?", args[0])).
						Value(&confirmed),
				))
				if err := form.Run(); err != nil {
					return err
				}
				if !confirmed {
					fmt.Fprintln(cmd.OutOrStdout(), "Aborted.")
					return nil
				}
			}
			if err := app.Archive.Delete(context.Background(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", args[0])
			return nil
		},
	}

	cmd.Flags().BoolVar(&yes, "yes", false, "Skip the confirmation prompt")

	return cmd
}

func newSessionExportCmd(app *App) *cobra.Command {
	var amqpURL, queue string

	cmd := &cobra.Command{
		Use:   "export <session-id>",
		Short: "Export a session as per-unit records (JSON, or AMQP with --amqp)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			snap, err := app.Archive.Get(ctx, args[0])
			if err != nil {
				return err
			}
			records := exportRecords(snap)

			if amqpURL == "" {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(records)
			}

			pub, err := export.NewAMQPPublisher(amqpURL, queue)
			if err != nil {
				return err
			}
			defer pub.Close()

			if err := pub.Publish(ctx, records); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Published %d record(s)\n", len(records))
			return nil
		},
	}

	cmd.Flags().StringVar(&amqpURL, "amqp", "", "AMQP broker URL (prints JSON when unset)")
	cmd.Flags().StringVar(&queue, "queue", export.DefaultQueue, "AMQP queue name")

	return cmd
}

// exportRecords expands an archived snapshot into per-unit records, the same
// shape a live aggregator's ExportForAPI produces.
func exportRecords(snap *domain.Session) []cart.ExportRecord {
	var records []cart.ExportRecord
	for _, line := range snap.Lines {
		for i := 0; i < line.Quantity; i++ {
			records = append(records, cart.ExportRecord{
				SessionID:  snap.ID,
				ItemName:   line.Name,
				Price:      line.UnitPrice,
				Confidence: line.LastConfidence,
				Timestamp:  snap.SavedAt,
			})
		}
	}
	return records
}
