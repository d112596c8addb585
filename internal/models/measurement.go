// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package models

import (
	"fmt"
	"time"
)

// Physiological bounds enforced before a measurement is persisted.
const (
	MinSystolic  = 50
	MaxSystolic  = 300
	MinDiastolic = 30
	MaxDiastolic = 200
	MinPulse     = 20
	MaxPulse     = 300
)

// Measurement is one recorded blood-pressure reading.
type Measurement struct { //nolint:govet // fieldalignment: readability over optimization
	ID         int64     `db:"id" json:"id"`
	IdentityID int64     `db:"identity_id" json:"-"`
	Systolic   int       `db:"systolic" json:"systolic"`
	Diastolic  int       `db:"diastolic" json:"diastolic"`
	Pulse      *int      `db:"pulse" json:"pulse,omitempty"`
	MeasuredAt time.Time `db:"measured_at" json:"measured_at"`
}

// Validate checks the physiological invariants. Extraction is purely
// syntactic, so this is the last gate before storage.
func (m *Measurement) Validate() error {
	if m.Systolic < MinSystolic || m.Systolic > MaxSystolic {
		return fmt.Errorf("systolic must be between %d and %d", MinSystolic, MaxSystolic)
	}
	if m.Diastolic < MinDiastolic || m.Diastolic > MaxDiastolic {
		return fmt.Errorf("diastolic must be between %d and %d", MinDiastolic, MaxDiastolic)
	}
	if m.Systolic <= m.Diastolic {
		return fmt.Errorf("systolic must be greater than diastolic")
	}
	if m.Pulse != nil && (*m.Pulse < MinPulse || *m.Pulse > MaxPulse) {
		return fmt.Errorf("pulse must be between %d and %d", MinPulse, MaxPulse)
	}
	return nil
}
