// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package dispatch

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"codeberg.org/oliverandrich/bpvoice/internal/i18n"
	"codeberg.org/oliverandrich/bpvoice/internal/repository"
)

// Stems that mark a request for the last recorded measurement.
var recallKeywords = []string{"последн", "покажи", "давлен"}

// Recall answers "show me my last reading" style requests.
type Recall struct {
	repo *repository.Repository
}

// NewRecall creates the recall interpreter.
func NewRecall(repo *repository.Repository) *Recall {
	return &Recall{repo: repo}
}

func (*Recall) Name() string { return "recall" }

func (r *Recall) Handle(ctx context.Context, req *Request) (string, error) {
	found := false
	for _, k := range recallKeywords {
		if strings.Contains(req.Utterance, k) {
			found = true
			break
		}
	}
	if !found || req.VoiceUserID == "" {
		return "", nil
	}

	identity, err := r.repo.GetIdentityByVoiceID(ctx, req.VoiceUserID)
	if errors.Is(err, repository.ErrNotFound) {
		return i18n.T("RecallEmpty"), nil
	}
	if err != nil {
		return "", err
	}

	last, err := r.repo.LastMeasurementForIdentity(ctx, identity.ID)
	if errors.Is(err, repository.ErrNotFound) {
		return i18n.T("RecallEmpty"), nil
	}
	if err != nil {
		return "", err
	}

	reply := i18n.TData("RecallReply", map[string]any{
		"Systolic":  last.Systolic,
		"Diastolic": last.Diastolic,
	})
	if last.Pulse != nil {
		reply += i18n.TData("RecallPulse", map[string]any{"Pulse": *last.Pulse})
	}
	reply += " (" + spokenTime(last.MeasuredAt, identity.Timezone) + ")"
	return reply, nil
}

// spokenTime renders a timestamp the way a person would say it:
// relative day words for the last three days, a plain date otherwise,
// in the identity's zone.
func spokenTime(t time.Time, timezone string) string {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		loc = time.UTC
	}
	local := t.In(loc)
	now := time.Now().In(loc)

	dayStart := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
	nowStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)
	clock := local.Format("15:04")

	switch int(nowStart.Sub(dayStart).Hours() / 24) {
	case 0:
		return fmt.Sprintf("%s %s %s", i18n.T("DateToday"), i18n.T("DateAt"), clock)
	case 1:
		return fmt.Sprintf("%s %s %s", i18n.T("DateYesterday"), i18n.T("DateAt"), clock)
	case 2:
		return fmt.Sprintf("%s %s %s", i18n.T("DateDayBeforeYesterday"), i18n.T("DateAt"), clock)
	default:
		return fmt.Sprintf("%s %s %s", local.Format("02.01.2006"), i18n.T("DateAt"), clock)
	}
}
