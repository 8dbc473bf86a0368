package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/academic-tracker/internal/config"
	"github.com/jonathan/academic-tracker/internal/db"
	"github.com/jonathan/academic-tracker/internal/logging"
	"github.com/jonathan/academic-tracker/internal/observability"
	"github.com/jonathan/academic-tracker/internal/store"
	"github.com/jonathan/academic-tracker/internal/tracker"
)

// Persistent flags shared by every command
var (
	cfgFile     string
	dataDir     string
	storeKind   string
	databaseURL string
	verbose     bool
	jsonOutput  bool
)

// app holds the dependencies built for the running command.
var app *application

type application struct {
	cfg     *config.Config
	logger  *zap.Logger
	store   store.Store
	tracker *tracker.Tracker
	printer *observability.Printer
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "Path to config file (default: academic-tracker.{yaml,json} in . or ~/.academic-tracker)")
	flags.StringVar(&dataDir, "data-dir", "", "Directory holding semesters.json and settings.json (overrides TRACKER_DATA_DIR)")
	flags.StringVar(&storeKind, "store", "", "Storage backend: file, memory or postgres (overrides TRACKER_STORE)")
	flags.StringVar(&databaseURL, "db-url", "", "PostgreSQL URL for --store postgres (overrides TRACKER_DATABASE_URL)")
	flags.BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	flags.BoolVar(&jsonOutput, "json", false, "Print results as JSON")
}

// setupApp loads configuration, applies flag overrides and opens the store.
func setupApp(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("data-dir") {
		cfg.DataDir = dataDir
	}
	if flags.Changed("store") {
		cfg.Store = storeKind
	}
	if flags.Changed("db-url") {
		cfg.DatabaseURL = databaseURL
	}
	if verbose {
		cfg.Log.Level = "debug"
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger, err := logging.NewLogger(cfg.Log)
	if err != nil {
		return err
	}

	st, err := openStore(cmd.Context(), cfg)
	if err != nil {
		_ = logger.Sync()
		return err
	}
	logger.Debug("store opened", zap.String("kind", cfg.Store), zap.String("data_dir", cfg.DataDir))

	app = &application{
		cfg:     cfg,
		logger:  logger,
		store:   st,
		tracker: tracker.New(st, logger),
		printer: observability.NewPrinter(cmd.OutOrStdout()),
	}
	return nil
}

func openStore(ctx context.Context, cfg *config.Config) (store.Store, error) {
	switch cfg.Store {
	case config.StoreMemory:
		return store.NewMemoryStore(), nil
	case config.StorePostgres:
		return db.Connect(ctx, cfg.DatabaseURL)
	default:
		return store.NewFileStore(cfg.DataDir)
	}
}

func teardownApp(_ *cobra.Command, _ []string) error {
	if app == nil {
		return nil
	}
	err := app.store.Close()
	_ = app.logger.Sync()
	app = nil
	if err != nil {
		return fmt.Errorf("failed to close store: %w", err)
	}
	return nil
}

// render prints v as JSON when --json is set and falls back to the formatted view otherwise.
func render(v any, formatted func()) error {
	if jsonOutput {
		return app.printer.PrintJSON(v)
	}
	formatted()
	return nil
}
