// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package repository

import (
	"context"

	"codeberg.org/oliverandrich/bpvoice/internal/models"
)

// CreateMeasurement persists a validated measurement.
func (r *Repository) CreateMeasurement(ctx context.Context, m *models.Measurement) error {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO measurements (identity_id, systolic, diastolic, pulse, measured_at)
		 VALUES (?, ?, ?, ?, ?)`,
		m.IdentityID, m.Systolic, m.Diastolic, m.Pulse, m.MeasuredAt)
	if err != nil {
		return err
	}
	m.ID, err = res.LastInsertId()
	return err
}

// LastMeasurementForIdentity returns the newest measurement of the identity.
func (r *Repository) LastMeasurementForIdentity(ctx context.Context, identityID int64) (*models.Measurement, error) {
	var m models.Measurement
	err := r.db.GetContext(ctx, &m,
		`SELECT * FROM measurements WHERE identity_id = ? ORDER BY measured_at DESC, id DESC LIMIT 1`,
		identityID)
	if err != nil {
		return nil, wrapError(err)
	}
	return &m, nil
}

// ListMeasurementsForIdentity returns measurements newest first.
func (r *Repository) ListMeasurementsForIdentity(ctx context.Context, identityID int64, limit, offset int) ([]models.Measurement, error) {
	if limit <= 0 || limit > 100 {
		limit = 100
	}
	measurements := []models.Measurement{}
	err := r.db.SelectContext(ctx, &measurements,
		`SELECT * FROM measurements WHERE identity_id = ?
		 ORDER BY measured_at DESC, id DESC LIMIT ? OFFSET ?`,
		identityID, limit, offset)
	if err != nil {
		return nil, err
	}
	return measurements, nil
}
