// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

// Package handlers contains all HTTP handlers: the voice webhook, the
// messaging-bot API and the health check.
package handlers

import (
	"net/http"

	"codeberg.org/oliverandrich/bpvoice/internal/dispatch"
	"codeberg.org/oliverandrich/bpvoice/internal/linking"
	"codeberg.org/oliverandrich/bpvoice/internal/repository"
	"github.com/labstack/echo/v4"
)

// Handlers contains all HTTP handlers.
type Handlers struct {
	repo          *repository.Repository
	dispatcher    *dispatch.Dispatcher
	issuer        *linking.Issuer
	hasher        *linking.Hasher
	webhookSecret string
}

// New creates a new Handlers instance.
func New(repo *repository.Repository, dispatcher *dispatch.Dispatcher, issuer *linking.Issuer, hasher *linking.Hasher, webhookSecret string) *Handlers {
	return &Handlers{
		repo:          repo,
		dispatcher:    dispatcher,
		issuer:        issuer,
		hasher:        hasher,
		webhookSecret: webhookSecret,
	}
}

// Health reports service and database health.
func (h *Handlers) Health(c echo.Context) error {
	if err := h.repo.Ping(c.Request().Context()); err != nil {
		return c.JSON(http.StatusServiceUnavailable, map[string]string{
			"status":   "unhealthy",
			"database": "disconnected",
		})
	}
	return c.JSON(http.StatusOK, map[string]string{
		"status":   "healthy",
		"database": "connected",
	})
}
