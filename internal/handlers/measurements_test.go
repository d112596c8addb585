// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package handlers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"codeberg.org/oliverandrich/bpvoice/internal/models"
	"codeberg.org/oliverandrich/bpvoice/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type measurementsResponse struct {
	Measurements []models.Measurement `json:"measurements"`
}

func TestMeasurements(t *testing.T) {
	h, repo, _, e := newFixture(t)
	ctx := context.Background()

	identity := testutil.NewTestIdentity(t, repo, "voice-1")
	now := time.Now().UTC()
	for i := range 3 {
		m := &models.Measurement{
			IdentityID: identity.ID,
			Systolic:   120 + i,
			Diastolic:  80,
			MeasuredAt: now.Add(time.Duration(i) * time.Minute),
		}
		require.NoError(t, repo.CreateMeasurement(ctx, m))
	}

	c, rec := testutil.NewEchoContext(e, http.MethodGet, "/api/measurements?user_id=voice-1", nil)
	require.NoError(t, h.Measurements(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	var resp measurementsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Measurements, 3)
	assert.Equal(t, 122, resp.Measurements[0].Systolic)
}

func TestMeasurements_Limit(t *testing.T) {
	h, repo, _, e := newFixture(t)
	ctx := context.Background()

	identity := testutil.NewTestIdentity(t, repo, "voice-1")
	for i := range 5 {
		m := &models.Measurement{
			IdentityID: identity.ID,
			Systolic:   120,
			Diastolic:  80,
			MeasuredAt: time.Now().UTC().Add(time.Duration(i) * time.Minute),
		}
		require.NoError(t, repo.CreateMeasurement(ctx, m))
	}

	c, rec := testutil.NewEchoContext(e, http.MethodGet, "/api/measurements?user_id=voice-1&limit=2", nil)
	require.NoError(t, h.Measurements(c))

	var resp measurementsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Len(t, resp.Measurements, 2)
}

func TestMeasurements_UnknownUser(t *testing.T) {
	h, _, _, e := newFixture(t)

	c, rec := testutil.NewEchoContext(e, http.MethodGet, "/api/measurements?user_id=nonexistent", nil)
	require.NoError(t, h.Measurements(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	var resp measurementsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Empty(t, resp.Measurements)
}

func TestMeasurements_MissingUserID(t *testing.T) {
	h, _, _, e := newFixture(t)

	c, _ := testutil.NewEchoContext(e, http.MethodGet, "/api/measurements", nil)
	err := h.Measurements(c)

	assertHTTPStatus(t, err, http.StatusBadRequest)
}
