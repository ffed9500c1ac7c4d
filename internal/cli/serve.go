package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/emilythestrangee/wordcap/backend/internal/auth"
	"github.com/emilythestrangee/wordcap/backend/internal/config"
	"github.com/emilythestrangee/wordcap/backend/internal/database"
	"github.com/emilythestrangee/wordcap/backend/internal/handlers"
	"github.com/emilythestrangee/wordcap/backend/internal/lock"
	"github.com/emilythestrangee/wordcap/backend/internal/server"
	"github.com/emilythestrangee/wordcap/backend/internal/thread"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd() *cobra.Command {
	var port string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		Long:  "Migrate the database and serve the HTTP API until interrupted.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger := setup()
			if port != "" {
				cfg.Port = port
			}
			return runServe(cmd.Context(), cfg, logger)
		},
	}

	cmd.Flags().StringVar(&port, "port", "", "port to listen on (overrides PORT)")

	return cmd
}

func runServe(ctx context.Context, cfg config.Config, logger *slog.Logger) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := openDB(ctx, cfg)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer closeDB(db)

	opts := []thread.Option{thread.WithLogger(logger)}
	var pinger server.Pinger
	if cfg.RedisURL != "" {
		locker, err := lock.NewRedisLocker(cfg.RedisURL, cfg.LockTTL)
		if err != nil {
			return fmt.Errorf("connecting to redis: %w", err)
		}
		defer func() {
			if err := locker.Close(); err != nil {
				logger.Warn("closing redis", "error", err)
			}
		}()
		opts = append(opts, thread.WithLocker(locker))
		pinger = locker
		logger.Info("per-thread redis lock enabled")
	}

	gormDB := db.GetDB()
	store := database.NewStore(gormDB)
	tokens := auth.NewTokens(cfg.JWTSecret, cfg.TokenTTL)
	handler := handlers.NewHandler(database.NewUserRepository(gormDB), store, thread.NewService(store, opts...), tokens)

	srv := server.New(cfg, db, pinger, handler, tokens, logger).HTTPServer()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("serving: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down: %w", err)
	}
	return nil
}
