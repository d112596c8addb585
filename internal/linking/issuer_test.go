// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package linking_test

import (
	"context"
	"regexp"
	"strings"
	"testing"
	"time"

	"codeberg.org/oliverandrich/bpvoice/internal/linking"
	"codeberg.org/oliverandrich/bpvoice/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var codeShape = regexp.MustCompile(`^[а-яё]+-\d{3}$`)

func TestIssue_CodeShape(t *testing.T) {
	_, repo := testutil.NewTestDB(t)
	issuer := linking.NewIssuer(repo, linking.NewHasher("secret"), time.Minute, 10*time.Minute)

	code, err := issuer.Issue(context.Background(), "tg-1")

	require.NoError(t, err)
	assert.Regexp(t, codeShape, code)

	word := strings.SplitN(code, "-", 2)[0]
	assert.True(t, linking.IsWord(word))
}

func TestIssue_StoresOnlyHash(t *testing.T) {
	db, repo := testutil.NewTestDB(t)
	hasher := linking.NewHasher("secret")
	issuer := linking.NewIssuer(repo, hasher, time.Minute, 10*time.Minute)

	code, err := issuer.Issue(context.Background(), "tg-1")
	require.NoError(t, err)

	var stored string
	err = db.Get(&stored, `SELECT token_hash FROM link_tokens LIMIT 1`)
	require.NoError(t, err)
	assert.NotEqual(t, code, stored)
	assert.Equal(t, hasher.Sum(strings.ToLower(code)), stored)
}

func TestIssue_RateLimited(t *testing.T) {
	_, repo := testutil.NewTestDB(t)
	issuer := linking.NewIssuer(repo, linking.NewHasher("secret"), time.Minute, 10*time.Minute)
	ctx := context.Background()

	_, err := issuer.Issue(ctx, "tg-1")
	require.NoError(t, err)

	_, err = issuer.Issue(ctx, "tg-1")
	assert.ErrorIs(t, err, linking.ErrRateLimited)
}

func TestIssue_RateLimitPerTarget(t *testing.T) {
	_, repo := testutil.NewTestDB(t)
	issuer := linking.NewIssuer(repo, linking.NewHasher("secret"), time.Minute, 10*time.Minute)
	ctx := context.Background()

	_, err := issuer.Issue(ctx, "tg-1")
	require.NoError(t, err)

	_, err = issuer.Issue(ctx, "tg-2")
	assert.NoError(t, err)
}

func TestIssue_AfterWindow(t *testing.T) {
	_, repo := testutil.NewTestDB(t)
	issuer := linking.NewIssuer(repo, linking.NewHasher("secret"), 10*time.Millisecond, 10*time.Minute)
	ctx := context.Background()

	_, err := issuer.Issue(ctx, "tg-1")
	require.NoError(t, err)

	time.Sleep(20 * time.Millisecond)

	_, err = issuer.Issue(ctx, "tg-1")
	assert.NoError(t, err)
}
