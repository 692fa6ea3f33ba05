package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lmittmann/tint"
	"github.com/spf13/cobra"

	"github.com/dmfalke/trendline/internal/config"
	"github.com/dmfalke/trendline/internal/server"
	"github.com/dmfalke/trendline/internal/service"
	"github.com/dmfalke/trendline/internal/store"
)

// NewServeCommand creates the serve command: open the store, warm the
// caches, and run the HTTP server until interrupted.
func NewServeCommand(rootOpts *RootOptions) *cobra.Command {
	var listen, dbPath string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), rootOpts, listen, dbPath)
		},
	}

	cmd.Flags().StringVar(&listen, "listen", "", "listen address (overrides config)")
	cmd.Flags().StringVar(&dbPath, "db", "", "path to SQLite database (overrides config)")

	return cmd
}

func runServe(ctx context.Context, rootOpts *RootOptions, listen, dbPath string) error {
	cfg, log, err := setup(rootOpts)
	if err != nil {
		return err
	}
	if listen != "" {
		cfg.Server.Listen = listen
	}
	if dbPath != "" {
		cfg.Database.Path = dbPath
	}

	st, err := store.Open(cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()

	svc := service.NewSized(st, log, service.CacheSizing{
		SnapshotSize: cfg.Cache.UpcomingSize,
		SnapshotTTL:  cfg.Cache.UpcomingTTL(),
		ResultsSize:  cfg.Cache.ResultsSize,
	})
	if err := svc.WarmUp(ctx); err != nil {
		// The server is still useful with cold caches.
		log.Warn("cache warm-up failed", "error", err)
	}

	srv := &http.Server{
		Addr:         cfg.Server.Listen,
		Handler:      server.New(svc, log).Handler(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Info("listening", "addr", cfg.Server.Listen)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serve: %w", err)
		}
	case <-ctx.Done():
		log.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
	}
	return nil
}

// setup loads configuration and builds the logger.
func setup(rootOpts *RootOptions) (config.Config, *slog.Logger, error) {
	cfg, err := config.Load(rootOpts.ConfigPath)
	if err != nil {
		return config.Config{}, nil, err
	}

	level := parseLevel(cfg.Log.Level)
	if rootOpts.Verbose {
		level = slog.LevelDebug
	}
	log := slog.New(tint.NewHandler(os.Stderr, &tint.Options{
		Level:      level,
		TimeFormat: time.TimeOnly,
	}))
	return cfg, log, nil
}

func parseLevel(s string) slog.Level {
	switch s {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
