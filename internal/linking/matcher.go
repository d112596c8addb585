// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package linking

import (
	"context"
	"errors"
	"regexp"
	"time"

	"codeberg.org/oliverandrich/bpvoice/internal/repository"
)

// Outcome classifies a match attempt. Expected outcomes are values, not
// errors; only store failures surface as errors.
type Outcome int

const (
	// OutcomeNoCandidates means the tokens contained nothing that
	// could be a code; the caller should fall through.
	OutcomeNoCandidates Outcome = iota
	// OutcomeNotFound means candidate phrases were present but none
	// matched a live token.
	OutcomeNotFound
	// OutcomeAlreadyUsed means a matching token exists but was
	// consumed before, a distinct failure from no-match.
	OutcomeAlreadyUsed
	// OutcomeLinked means the identities were bound.
	OutcomeLinked
)

// Result is the outcome of a match attempt. TargetIDHash is set only
// for OutcomeLinked.
type Result struct {
	Outcome      Outcome
	TargetIDHash string
}

var (
	wordNumberRe = regexp.MustCompile(`^[а-я]+-\d{3}$`)
	threeDigitRe = regexp.MustCompile(`^\d{3}$`)
	oneDigitRe   = regexp.MustCompile(`^\d$`)
)

// Matcher reconstructs spoken codes out of normalized NLU tokens and,
// on a hit, consumes the token and binds the two identities.
type Matcher struct {
	repo   *repository.Repository
	hasher *Hasher
}

// NewMatcher creates a Matcher sharing the issuer's hasher and store.
func NewMatcher(repo *repository.Repository, hasher *Hasher) *Matcher {
	return &Matcher{repo: repo, hasher: hasher}
}

// Candidates rebuilds possible code phrases from a normalized token
// list. The ASR engine may deliver a code verbatim ("мост-627"), split
// into word and number ("мост", "627"), or with the number spelled
// digit by digit ("мост", "6", "2", "7"). Surrounding noise words are
// irrelevant; only adjacency to a wordlist word matters.
func Candidates(tokens []string) []string {
	var out []string
	seen := make(map[string]struct{})
	add := func(c string) {
		if _, ok := seen[c]; !ok {
			seen[c] = struct{}{}
			out = append(out, c)
		}
	}

	for i, tok := range tokens {
		if wordNumberRe.MatchString(tok) {
			add(tok)
			continue
		}
		if !IsWord(tok) {
			continue
		}
		if i+1 < len(tokens) && threeDigitRe.MatchString(tokens[i+1]) {
			add(tok + "-" + tokens[i+1])
		} else if i+3 < len(tokens) &&
			oneDigitRe.MatchString(tokens[i+1]) &&
			oneDigitRe.MatchString(tokens[i+2]) &&
			oneDigitRe.MatchString(tokens[i+3]) {
			add(tok + "-" + tokens[i+1] + tokens[i+2] + tokens[i+3])
		}
	}
	return out
}

// Match looks for a live token among the candidate phrases and, when
// found unused, consumes it and binds the voice identity to the token's
// target. When several candidates match, the oldest-created token wins.
func (m *Matcher) Match(ctx context.Context, voiceUserID string, tokens []string) (Result, error) {
	candidates := Candidates(tokens)
	if len(candidates) == 0 {
		return Result{Outcome: OutcomeNoCandidates}, nil
	}

	hashes := make([]string, len(candidates))
	for i, c := range candidates {
		hashes[i] = m.hasher.Sum(c)
	}

	token, err := m.repo.FindLiveLinkToken(ctx, hashes, time.Now().UTC())
	if errors.Is(err, repository.ErrNotFound) {
		return Result{Outcome: OutcomeNotFound}, nil
	}
	if err != nil {
		return Result{}, err
	}

	if token.Used {
		return Result{Outcome: OutcomeAlreadyUsed}, nil
	}

	// The conditional update is the serialization point: of two
	// concurrent matches on the same row, exactly one flips used.
	consumed, err := m.repo.ConsumeLinkToken(ctx, token.ID)
	if err != nil {
		return Result{}, err
	}
	if !consumed {
		return Result{Outcome: OutcomeAlreadyUsed}, nil
	}

	if _, err := m.repo.BindMessagingHash(ctx, voiceUserID, token.TargetIDHash); err != nil {
		return Result{}, err
	}

	return Result{Outcome: OutcomeLinked, TargetIDHash: token.TargetIDHash}, nil
}
