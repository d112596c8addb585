// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package linking

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"codeberg.org/oliverandrich/bpvoice/internal/models"
	"codeberg.org/oliverandrich/bpvoice/internal/repository"
)

// ErrRateLimited is returned when a target requests codes faster than
// the configured window allows.
var ErrRateLimited = errors.New("linking: too many token requests for this target")

const (
	defaultRateLimit = time.Minute
	defaultLifetime  = 10 * time.Minute
)

// Issuer generates speakable one-time link codes for the messaging side
// and stores only their keyed hashes.
type Issuer struct {
	repo      *repository.Repository
	hasher    *Hasher
	rateLimit time.Duration
	lifetime  time.Duration
}

// NewIssuer creates an Issuer. Zero durations fall back to the defaults
// (60s rate-limit window, 10 minute token lifetime).
func NewIssuer(repo *repository.Repository, hasher *Hasher, rateLimit, lifetime time.Duration) *Issuer {
	if rateLimit <= 0 {
		rateLimit = defaultRateLimit
	}
	if lifetime <= 0 {
		lifetime = defaultLifetime
	}
	return &Issuer{repo: repo, hasher: hasher, rateLimit: rateLimit, lifetime: lifetime}
}

// Issue creates a fresh code for the messaging identity and returns its
// plaintext, which is never stored. The rate-limit check reads the
// latest token without a lock; near-simultaneous calls may both pass,
// which is accepted as a soft limit.
func (i *Issuer) Issue(ctx context.Context, messagingID string) (string, error) {
	target := i.hasher.Sum(messagingID)
	now := time.Now().UTC()

	last, err := i.repo.LatestLinkTokenForTarget(ctx, target)
	switch {
	case err == nil:
		if now.Sub(last.CreatedAt) < i.rateLimit {
			return "", ErrRateLimited
		}
	case errors.Is(err, repository.ErrNotFound):
		// first token for this target
	default:
		return "", err
	}

	word, err := randomWord()
	if err != nil {
		return "", err
	}
	number, err := randomNumber()
	if err != nil {
		return "", err
	}

	plaintext := fmt.Sprintf("%s-%d", word, number)

	token := &models.LinkToken{
		TokenHash:    i.hasher.Sum(strings.ToLower(plaintext)),
		TargetIDHash: target,
		CreatedAt:    now,
		ExpiresAt:    now.Add(i.lifetime),
	}
	if err := i.repo.CreateLinkToken(ctx, token); err != nil {
		return "", err
	}

	return plaintext, nil
}

func randomWord() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(int64(len(Wordlist))))
	if err != nil {
		return "", err
	}
	return Wordlist[n.Int64()], nil
}

// randomNumber draws a number in [100, 999] so codes always carry
// exactly three digits.
func randomNumber() (int, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900))
	if err != nil {
		return 0, err
	}
	return int(n.Int64()) + 100, nil
}
