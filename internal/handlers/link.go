// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package handlers

import (
	"errors"
	"net/http"

	"codeberg.org/oliverandrich/bpvoice/internal/i18n"
	"codeberg.org/oliverandrich/bpvoice/internal/linking"
	"codeberg.org/oliverandrich/bpvoice/internal/models"
	"codeberg.org/oliverandrich/bpvoice/internal/repository"
	"github.com/labstack/echo/v4"
)

type issueTokenRequest struct {
	MessagingUserID string `json:"messaging_user_id"`
}

type linkPartyRequest struct {
	UserID          string `json:"user_id,omitempty"`
	MessagingUserID string `json:"messaging_user_id,omitempty"`
}

// IssueToken creates a fresh link token for a messaging-bot user. The
// plaintext token is returned exactly once; only its hash is stored.
func (h *Handlers) IssueToken(c echo.Context) error {
	var req issueTokenRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if req.MessagingUserID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "messaging_user_id is required")
	}

	token, err := h.issuer.Issue(c.Request().Context(), req.MessagingUserID)
	if err != nil {
		if errors.Is(err, linking.ErrRateLimited) {
			return c.JSON(http.StatusTooManyRequests, map[string]string{
				"status":  "error",
				"message": i18n.T("RateLimited"),
			})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"status":  "error",
			"message": i18n.T("StoreError"),
		})
	}

	return c.JSON(http.StatusCreated, map[string]string{
		"status":  "success",
		"token":   token,
		"message": i18n.T("TokenIssued"),
	})
}

// LinkStatus reports whether a pairing exists, looked up from either
// side: the voice user id or the messaging user id.
func (h *Handlers) LinkStatus(c echo.Context) error {
	var req linkPartyRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	identity, err := h.lookupParty(c, &req)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusOK, map[string]string{
				"status":  "not_linked",
				"message": i18n.T("LinkStatusNotLinked"),
			})
		}
		return err
	}
	if !identity.Linked() {
		return c.JSON(http.StatusOK, map[string]string{
			"status":  "not_linked",
			"message": i18n.T("LinkStatusNotLinked"),
		})
	}

	return c.JSON(http.StatusOK, map[string]string{
		"status":  "linked",
		"message": i18n.T("LinkStatusLinked"),
	})
}

// Unlink removes an existing pairing. Either side of the pairing may
// request it.
func (h *Handlers) Unlink(c echo.Context) error {
	var req linkPartyRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	identity, err := h.lookupParty(c, &req)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusOK, map[string]string{
				"status":  "not_linked",
				"message": i18n.T("UnlinkNotLinked"),
			})
		}
		return err
	}

	cleared, err := h.repo.ClearMessagingHash(c.Request().Context(), identity.ID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "could not unlink")
	}
	if !cleared {
		return c.JSON(http.StatusOK, map[string]string{
			"status":  "not_linked",
			"message": i18n.T("UnlinkNotLinked"),
		})
	}

	return c.JSON(http.StatusOK, map[string]string{
		"status":  "unlinked",
		"message": i18n.T("UnlinkSuccess"),
	})
}

func (h *Handlers) lookupParty(c echo.Context, req *linkPartyRequest) (*models.Identity, error) {
	ctx := c.Request().Context()
	switch {
	case req.UserID != "":
		return h.repo.GetIdentityByVoiceID(ctx, req.UserID)
	case req.MessagingUserID != "":
		return h.repo.GetIdentityByMessagingHash(ctx, h.hasher.Sum(req.MessagingUserID))
	default:
		return nil, echo.NewHTTPError(http.StatusBadRequest, i18n.T("UserNotIdentified"))
	}
}
