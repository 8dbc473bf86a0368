package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/academic-tracker/internal/config"
	"github.com/jonathan/academic-tracker/internal/db"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply PostgreSQL schema migrations",
	Long: `Applies the embedded migrations to the database named by --db-url or
TRACKER_DATABASE_URL. Only meaningful with --store postgres.`,
	Args: cobra.NoArgs,
	RunE: runMigrate,
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}

func runMigrate(cmd *cobra.Command, _ []string) error {
	database, ok := app.store.(*db.DB)
	if !ok {
		return fmt.Errorf("migrate requires --store %s (current store: %s)", config.StorePostgres, app.cfg.Store)
	}
	if err := database.Migrate(app.logger); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Migrations applied")
	return nil
}
