// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package dispatch

import (
	"context"

	"codeberg.org/oliverandrich/bpvoice/internal/i18n"
)

// Fallback closes the chain. It never abstains and never fails.
type Fallback struct{}

func (Fallback) Name() string { return "fallback" }

func (Fallback) Handle(_ context.Context, _ *Request) (string, error) {
	return i18n.T("Fallback"), nil
}
