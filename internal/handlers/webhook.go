// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package handlers

import (
	"log/slog"
	"net/http"

	"codeberg.org/oliverandrich/bpvoice/internal/dispatch"
	"codeberg.org/oliverandrich/bpvoice/internal/speech"
	"codeberg.org/oliverandrich/bpvoice/internal/webhook"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// Webhook handles one voice-platform request: verify the shared
// secret, normalize the utterance, run the interpreter chain and wrap
// the answer. The dispatcher guarantees a non-empty response text, so
// this handler always answers 200 for well-formed payloads.
func (h *Handlers) Webhook(c echo.Context) error {
	if c.QueryParam("token") != h.webhookSecret {
		return echo.NewHTTPError(http.StatusForbidden, "invalid secret token")
	}

	var payload webhook.Request
	if err := c.Bind(&payload); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	req := &dispatch.Request{
		Utterance:   speech.NormalizeText(payload.Utterance()),
		Tokens:      speech.NormalizeTokens(payload.Tokens()),
		VoiceUserID: payload.Session.UserID,
		SessionID:   payload.Session.SessionID,
		NewSession:  payload.Session.New,
		Timezone:    payload.Timezone(),
	}

	requestID := uuid.NewString()
	slog.Debug("webhook request",
		"request_id", requestID,
		"session_id", req.SessionID,
		"new_session", req.NewSession,
		"tokens", len(req.Tokens),
	)

	text := h.dispatcher.Dispatch(c.Request().Context(), req)

	slog.Debug("webhook response", "request_id", requestID)
	return c.JSON(http.StatusOK, webhook.NewResponse(text, &payload))
}
