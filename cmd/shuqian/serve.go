package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/yusi/shuqian/internal/config"
	"github.com/yusi/shuqian/internal/logger"
	"github.com/yusi/shuqian/internal/server"
	"github.com/yusi/shuqian/internal/storage"
)

func newServeCmd(flags *globalFlags) *cobra.Command {
	var listen, dbPath string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the bookmark API server",
		Long: `Serve the bookmark REST API from a SQLite database:

  GET    /api/bookmarks
  POST   /api/bookmarks
  PUT    /api/bookmarks/{id}
  DELETE /api/bookmarks/{id}`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.load()
			if err != nil {
				return err
			}
			if listen != "" {
				cfg.Server.Listen = listen
			}
			if dbPath != "" {
				cfg.Server.DBPath = dbPath
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runServe(ctx, cfg)
		},
	}

	cmd.Flags().StringVarP(&listen, "listen", "l", "", "Address to listen on (overrides config)")
	cmd.Flags().StringVarP(&dbPath, "db", "d", "", "Path to the SQLite database file (overrides config)")
	return cmd
}

// runServe serves the API until ctx is done, then shuts down gracefully.
func runServe(ctx context.Context, cfg *config.Config) error {
	log, err := newStderrLogger(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	if cfg.Server.DBPath != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(cfg.Server.DBPath), 0755); err != nil {
			return fmt.Errorf("create database directory: %w", err)
		}
	}
	repo, err := storage.NewSQLiteStorage(cfg.Server.DBPath)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer func() {
		if err := repo.Close(); err != nil {
			log.Error("failed to close database", logger.Error(err))
		}
	}()
	log.Info("database ready", logger.String("path", cfg.Server.DBPath))

	srv := server.New(cfg.Server, repo, log)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	select {
	case <-ctx.Done():
		log.Info("shutting down gracefully", logger.Duration("timeout", cfg.Server.ShutdownTimeout))
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server error: %w", err)
		}
		return nil
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Stop(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return <-errCh
}
