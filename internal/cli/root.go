// Package cli defines the cobra command tree for wordcap.
package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/emilythestrangee/wordcap/backend/internal/config"
	"github.com/emilythestrangee/wordcap/backend/internal/database"
	"github.com/emilythestrangee/wordcap/backend/internal/logging"
)

var flagDev bool

// NewRootCmd creates the root cobra command with global flags.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "wordcap",
		Short:         "Anonymous long-form posts with capped comment threads",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().BoolVar(&flagDev, "dev", false, "human-readable debug logging (overrides LOG_DEV)")

	root.AddCommand(
		newServeCmd(),
		newMigrateCmd(),
	)

	return root
}

// setup loads configuration and installs the process logger.
func setup() (config.Config, *slog.Logger) {
	cfg := config.Load()
	if flagDev {
		cfg.DevLogging = true
	}
	logger := logging.Setup(cfg.DevLogging)
	cfg.WarnDefaultSecrets(logger)
	return cfg, logger
}

// openDB connects and migrates.
func openDB(ctx context.Context, cfg config.Config) (database.Service, error) {
	db, err := database.New(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}
	if err := database.Migrate(ctx, db.GetDB()); err != nil {
		closeDB(db)
		return nil, err
	}
	return db, nil
}

// closeDB closes the database, logging any error.
func closeDB(db database.Service) {
	if err := db.Close(); err != nil {
		slog.Warn("closing database", "error", err)
	}
}

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the schema and comment guards",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _ := setup()
			db, err := openDB(cmd.Context(), cfg)
			if err != nil {
				return fmt.Errorf("migrating: %w", err)
			}
			closeDB(db)
			slog.Info("schema up to date")
			return nil
		},
	}
}
