package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/fastbillx/checkout/internal/catalog"
	"github.com/fastbillx/checkout/internal/cli"
	"github.com/fastbillx/checkout/internal/db"
	"github.com/fastbillx/checkout/internal/repository"
	"github.com/fastbillx/checkout/internal/service"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Determine DB path: env var or default ~/.checkout/checkout.db
	dbPath := os.Getenv("CHECKOUT_DB")
	if dbPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("finding home directory: %w", err)
		}
		dbPath = filepath.Join(home, ".checkout", "checkout.db")
	}

	database, err := db.OpenDB(dbPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	sessionRepo := repository.NewSQLiteSessionRepo(database)
	historyRepo := repository.NewSQLiteHistoryRepo(database)
	txRunner := db.NewTxRunner(database)

	cat := catalog.New()
	if path := os.Getenv("CHECKOUT_CATALOG"); path != "" {
		if err := cat.LoadFile(path); err != nil {
			return fmt.Errorf("loading catalog: %w", err)
		}
	}

	app := &cli.App{
		Catalog: cat,
		Archive: service.NewArchiveService(sessionRepo, historyRepo, txRunner),
	}

	rootCmd := cli.NewRootCmd(app)
	return rootCmd.Execute()
}
