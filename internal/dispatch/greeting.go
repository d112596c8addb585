// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package dispatch

import (
	"context"

	"codeberg.org/oliverandrich/bpvoice/internal/i18n"
)

// Greeting answers the opening of a new session, when the platform
// delivers an empty utterance.
type Greeting struct{}

func (Greeting) Name() string { return "greeting" }

func (Greeting) Handle(_ context.Context, req *Request) (string, error) {
	if req.Utterance == "" && req.NewSession {
		return i18n.T("Greeting"), nil
	}
	return "", nil
}
