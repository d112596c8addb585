// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

// Package server wires configuration, database, interpreters and HTTP
// routes into a running service.
package server

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

	"codeberg.org/oliverandrich/bpvoice/internal/config"
	"codeberg.org/oliverandrich/bpvoice/internal/database"
	"codeberg.org/oliverandrich/bpvoice/internal/dispatch"
	"codeberg.org/oliverandrich/bpvoice/internal/handlers"
	"codeberg.org/oliverandrich/bpvoice/internal/i18n"
	"codeberg.org/oliverandrich/bpvoice/internal/linking"
	"codeberg.org/oliverandrich/bpvoice/internal/repository"
	"github.com/labstack/echo/v4"
	"github.com/urfave/cli/v3"
)

// Run starts the server with the given CLI command.
func Run(ctx context.Context, cmd *cli.Command) error {
	cfg := config.NewFromCLI(cmd)
	if err := cfg.Validate(); err != nil {
		return err
	}
	setupLogger(cfg.Log.Level, cfg.Log.Format)

	slog.Info("starting server",
		"host", cfg.Server.Host,
		"port", cfg.Server.Port,
		"database", cfg.Database.DSN,
	)

	// Database; migrations run inside Open
	db, err := database.Open(cfg.Database.DSN)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() {
		if closeErr := db.Close(); closeErr != nil {
			slog.Error("failed to close database", "error", closeErr)
		}
	}()

	// i18n
	if initErr := i18n.Init(); initErr != nil {
		return fmt.Errorf("failed to init i18n: %w", initErr)
	}

	// Core services
	repo := repository.New(db)
	hasher := linking.NewHasher(cfg.Link.Secret)
	issuer := linking.NewIssuer(repo, hasher, cfg.Link.RateLimit, cfg.Link.TokenLifetime)
	matcher := linking.NewMatcher(repo, hasher)

	// Interpreter chain, ordered: the first non-empty answer wins.
	dispatcher := dispatch.New(
		dispatch.Greeting{},
		dispatch.NewLink(matcher, cfg.Link.BotUsername),
		dispatch.NewRecord(repo),
		dispatch.NewRecall(repo),
		dispatch.Fallback{},
	)

	// Echo
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	setupMiddleware(e, cfg)
	setupRoutes(e, cfg, handlers.New(repo, dispatcher, issuer, hasher, cfg.Webhook.Secret))

	cleanupCtx, cancelCleanup := context.WithCancel(ctx)
	defer cancelCleanup()
	go tokenCleanupLoop(cleanupCtx, repo, cfg.Link.TokenLifetime)

	return startWithGracefulShutdown(ctx, e, cfg)
}

// tokenCleanupLoop periodically removes expired and consumed link
// tokens so the table does not grow without bound.
func tokenCleanupLoop(ctx context.Context, repo *repository.Repository, lifetime time.Duration) {
	ticker := time.NewTicker(lifetime)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			deleted, err := repo.DeleteExpiredLinkTokens(ctx, time.Now().UTC())
			if err != nil {
				slog.Warn("link token cleanup failed", "error", err)
				continue
			}
			if deleted > 0 {
				slog.Debug("link tokens cleaned up", "deleted", deleted)
			}
		}
	}
}

func setupRoutes(e *echo.Echo, cfg *config.Config, h *handlers.Handlers) {
	e.GET("/health", h.Health)
	e.POST("/webhook", h.Webhook)

	api := e.Group("/api", apiTokenAuth(cfg.API.Token))
	api.POST("/link/token", h.IssueToken)
	api.POST("/link/status", h.LinkStatus)
	api.POST("/link/unlink", h.Unlink)
	api.GET("/measurements", h.Measurements)
}

func startWithGracefulShutdown(ctx context.Context, e *echo.Echo, cfg *config.Config) error {
	errChan := make(chan error, 1)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	go func() {
		slog.Info("server running", "addr", addr)
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-quit:
		slog.Info("shutting down server")
	case <-ctx.Done():
		slog.Info("shutting down server")
	case err := <-errChan:
		slog.Error("server error", "error", err)
		return err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		slog.Error("failed to shutdown server", "error", err)
	}

	slog.Info("server stopped")
	return nil
}
