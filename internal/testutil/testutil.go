// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

// Package testutil provides test helpers and fixtures.
package testutil

import (
	"context"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"codeberg.org/oliverandrich/bpvoice/internal/database"
	"codeberg.org/oliverandrich/bpvoice/internal/models"
	"codeberg.org/oliverandrich/bpvoice/internal/repository"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"github.com/vinovest/sqlx"
)

// NewTestDB creates an in-memory SQLite database for tests.
// Returns both the database connection and the repository for convenience.
func NewTestDB(t *testing.T) (*sqlx.DB, *repository.Repository) {
	t.Helper()
	db, err := database.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = db.Close()
	})
	repo := repository.New(db)
	return db, repo
}

// NewTestIdentity creates an identity for the given voice user id.
func NewTestIdentity(t *testing.T, repo *repository.Repository, voiceUserID string) *models.Identity {
	t.Helper()
	identity, err := repo.GetOrCreateIdentity(context.Background(), voiceUserID)
	require.NoError(t, err)
	return identity
}

// NewTestLinkToken stores a link token with the given hashes and lifetime.
func NewTestLinkToken(t *testing.T, repo *repository.Repository, tokenHash, targetIDHash string, lifetime time.Duration) *models.LinkToken {
	t.Helper()
	now := time.Now().UTC()
	token := &models.LinkToken{
		TokenHash:    tokenHash,
		TargetIDHash: targetIDHash,
		CreatedAt:    now,
		ExpiresAt:    now.Add(lifetime),
	}
	err := repo.CreateLinkToken(context.Background(), token)
	require.NoError(t, err)
	return token
}

// NewEchoContext creates an Echo context for handler tests.
func NewEchoContext(e *echo.Echo, method, path string, body io.Reader) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(method, path, body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	return c, rec
}
