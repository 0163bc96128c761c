package cli

import (
	"github.com/fastbillx/checkout/internal/catalog"
	"github.com/fastbillx/checkout/internal/service"
	"github.com/spf13/cobra"
)

// App holds the collaborators CLI commands work against.
type App struct {
	Catalog *catalog.Catalog
	Archive service.ArchiveService
}

// NewRootCmd creates the top-level "checkout" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "checkout",
		Short: "Smart checkout: detection-driven shopping cart",
	}

	root.AddCommand(
		newRunCmd(app),
		newWatchCmd(app),
		newReceiptCmd(app),
		newCatalogCmd(app),
		newSessionCmd(app),
	)

	return root
}
