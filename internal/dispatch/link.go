// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package dispatch

import (
	"context"
	"strings"

	"codeberg.org/oliverandrich/bpvoice/internal/i18n"
	"codeberg.org/oliverandrich/bpvoice/internal/linking"
)

// Spoken phrases that signal a linking intent. A code can also arrive
// without any trigger; the matcher only needs the tokens.
var linkTriggers = []string{
	"связать аккаунт",
	"привязать телеграм",
	"свяжи аккаунт",
	"привяжи телеграм",
}

// Link tries to complete account linking from the utterance tokens.
type Link struct {
	matcher     *linking.Matcher
	botUsername string
}

// NewLink creates the linking interpreter.
func NewLink(matcher *linking.Matcher, botUsername string) *Link {
	return &Link{matcher: matcher, botUsername: botUsername}
}

func (*Link) Name() string { return "link" }

func (l *Link) Handle(ctx context.Context, req *Request) (string, error) {
	hasTrigger := false
	for _, t := range linkTriggers {
		if strings.Contains(req.Utterance, t) {
			hasTrigger = true
			break
		}
	}

	if req.VoiceUserID == "" {
		if hasTrigger {
			return i18n.T("LinkNoID"), nil
		}
		return "", nil
	}

	res, err := l.matcher.Match(ctx, req.VoiceUserID, req.Tokens)
	if err != nil {
		return "", err
	}

	switch res.Outcome {
	case linking.OutcomeLinked:
		return i18n.T("LinkSuccess"), nil
	case linking.OutcomeAlreadyUsed, linking.OutcomeNotFound:
		return i18n.T("LinkFail"), nil
	default: // no candidates in the utterance
		if hasTrigger {
			return i18n.TData("LinkInstructions", map[string]any{"Bot": l.botUsername}), nil
		}
		return "", nil
	}
}
