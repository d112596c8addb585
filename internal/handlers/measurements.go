// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"codeberg.org/oliverandrich/bpvoice/internal/models"
	"codeberg.org/oliverandrich/bpvoice/internal/repository"
	"github.com/labstack/echo/v4"
)

// Measurements lists stored readings for a voice user, newest first.
func (h *Handlers) Measurements(c echo.Context) error {
	voiceUserID := c.QueryParam("user_id")
	if voiceUserID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "user_id is required")
	}

	limit := intQueryParam(c, "limit", 20)
	offset := intQueryParam(c, "offset", 0)

	ctx := c.Request().Context()
	identity, err := h.repo.GetIdentityByVoiceID(ctx, voiceUserID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusOK, map[string]any{
				"measurements": []models.Measurement{},
			})
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "could not load measurements")
	}

	measurements, err := h.repo.ListMeasurementsForIdentity(ctx, identity.ID, limit, offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "could not load measurements")
	}
	if measurements == nil {
		measurements = []models.Measurement{}
	}

	return c.JSON(http.StatusOK, map[string]any{
		"measurements": measurements,
	})
}

func intQueryParam(c echo.Context, name string, fallback int) int {
	raw := c.QueryParam(name)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value < 0 {
		return fallback
	}
	return value
}
