// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

// Package dispatch runs one normalized utterance through an ordered
// chain of interpreters. The chain is injected at construction, the
// first non-empty answer wins, and one interpreter's failure never
// aborts the chain.
package dispatch

import (
	"context"
	"fmt"
	"log/slog"

	"codeberg.org/oliverandrich/bpvoice/internal/i18n"
)

// Request is one dispatch cycle's input, already normalized.
type Request struct { //nolint:govet // fieldalignment: readability over optimization
	Utterance   string   // normalized utterance text
	Tokens      []string // normalized NLU tokens
	VoiceUserID string
	SessionID   string
	NewSession  bool
	Timezone    string // IANA zone from the request metadata, may be empty
}

// Interpreter is one link of the chain. An empty result means the
// interpreter found nothing relevant and the next one should run; an
// error is logged and likewise skipped.
type Interpreter interface {
	Name() string
	Handle(ctx context.Context, req *Request) (string, error)
}

// Dispatcher holds the immutable interpreter chain.
type Dispatcher struct {
	interpreters []Interpreter
}

// New creates a Dispatcher trying the given interpreters in order.
func New(interpreters ...Interpreter) *Dispatcher {
	return &Dispatcher{interpreters: interpreters}
}

// Dispatch runs the chain and always returns a non-empty response text.
// Even if every interpreter fails or abstains, the caller gets the
// fixed fallback message.
func (d *Dispatcher) Dispatch(ctx context.Context, req *Request) string {
	for _, in := range d.interpreters {
		text, err := d.try(ctx, in, req)
		if err != nil {
			slog.Error("interpreter failed, continuing chain",
				"interpreter", in.Name(), "error", err)
			continue
		}
		if text != "" {
			return text
		}
	}
	return i18n.T("Fallback")
}

// try invokes a single interpreter, converting panics into errors so a
// broken interpreter cannot take the chain down.
func (d *Dispatcher) try(ctx context.Context, in Interpreter, req *Request) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("interpreter panicked: %v", r)
		}
	}()
	return in.Handle(ctx, req)
}
