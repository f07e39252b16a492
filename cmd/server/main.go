// Package main implements the entry point for the quiz player server,
// which assembles question packs into a working bank, runs the quiz
// session state machine, and persists history, bookmarks and settings to
// a local SQLite file.
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/COOKiEMONstaur/cbcn-study-quiz/internal/api"
	"github.com/COOKiEMONstaur/cbcn-study-quiz/internal/config"
	"github.com/COOKiEMONstaur/cbcn-study-quiz/internal/packstore"
	"github.com/COOKiEMONstaur/cbcn-study-quiz/internal/platform/logger"
	"github.com/COOKiEMONstaur/cbcn-study-quiz/internal/platform/sqlite"
	"github.com/COOKiEMONstaur/cbcn-study-quiz/internal/service"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("Failed to start quiz server: %v", err)
	}
}

// run wires configuration, logging, persistence, pack loading and the
// HTTP server, then blocks until shutdown.
func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	appLogger, err := logger.Setup(cfg.Server.LogLevel)
	if err != nil {
		return fmt.Errorf("failed to set up logger: %w", err)
	}

	appLogger.Info("configuration loaded",
		slog.Int("port", cfg.Server.Port),
		slog.String("log_level", cfg.Server.LogLevel),
		slog.Int("packs", len(cfg.Packs)))

	stateStore, err := sqlite.Open(cfg.Store.Path, appLogger)
	if err != nil {
		return fmt.Errorf("failed to open state store: %w", err)
	}
	defer func() {
		if err := stateStore.Close(); err != nil {
			appLogger.Error("failed to close state store", slog.String("error", err.Error()))
		}
	}()

	registry := make([]packstore.Pack, len(cfg.Packs))
	for i, p := range cfg.Packs {
		registry[i] = packstore.Pack{ID: p.ID, Label: p.Label, URL: p.URL}
	}
	packs := packstore.New(registry, nil, appLogger)

	svc := service.New(
		packs,
		stateStore,
		time.Duration(cfg.Quiz.TagDebounceMs)*time.Millisecond,
		nil,
		appLogger,
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := svc.Init(ctx); err != nil {
		return fmt.Errorf("failed to initialize quiz session: %w", err)
	}

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           api.NewRouter(svc, appLogger, cfg.Server.AllowedOrigins),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		appLogger.Info("quiz server listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
	}

	appLogger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown failed: %w", err)
	}

	return nil
}
