// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package dispatch

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"codeberg.org/oliverandrich/bpvoice/internal/i18n"
	"codeberg.org/oliverandrich/bpvoice/internal/models"
	"codeberg.org/oliverandrich/bpvoice/internal/pressure"
	"codeberg.org/oliverandrich/bpvoice/internal/repository"
)

// Record extracts a blood-pressure reading from the utterance and
// persists it for the voice identity.
type Record struct {
	repo *repository.Repository
}

// NewRecord creates the recording interpreter.
func NewRecord(repo *repository.Repository) *Record {
	return &Record{repo: repo}
}

func (*Record) Name() string { return "record" }

func (r *Record) Handle(ctx context.Context, req *Request) (string, error) {
	reading, ok := pressure.Parse(req.Utterance)
	if !ok && len(req.Tokens) > 0 {
		// The token stream sometimes carries digits the utterance lost.
		reading, ok = pressure.Parse(strings.Join(req.Tokens, " "))
	}
	if !ok {
		return "", nil
	}
	if req.VoiceUserID == "" {
		return "", nil
	}

	m := models.Measurement{
		Systolic:   reading.Systolic,
		Diastolic:  reading.Diastolic,
		Pulse:      reading.Pulse,
		MeasuredAt: time.Now().UTC(),
	}
	if err := m.Validate(); err != nil {
		return i18n.T("RecordInvalid"), nil
	}

	identity, err := r.repo.GetOrCreateIdentity(ctx, req.VoiceUserID)
	if err != nil {
		return "", err
	}

	// Timezone is updated opportunistically on every recording.
	if req.Timezone != "" && req.Timezone != identity.Timezone {
		if err := r.repo.UpdateIdentityTimezone(ctx, identity.ID, req.Timezone); err != nil {
			slog.Warn("failed to update identity timezone", "error", err)
		}
	}

	m.IdentityID = identity.ID
	if err := r.repo.CreateMeasurement(ctx, &m); err != nil {
		return "", err
	}

	data := map[string]any{"Systolic": m.Systolic, "Diastolic": m.Diastolic}
	if m.Pulse != nil {
		data["Pulse"] = *m.Pulse
		return i18n.TData("RecordSuccessPulse", data), nil
	}
	return i18n.TData("RecordSuccess", data), nil
}
