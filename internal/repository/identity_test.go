// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package repository_test

import (
	"context"
	"testing"

	"codeberg.org/oliverandrich/bpvoice/internal/repository"
	"codeberg.org/oliverandrich/bpvoice/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetOrCreateIdentity(t *testing.T) {
	_, repo := testutil.NewTestDB(t)
	ctx := context.Background()

	identity, err := repo.GetOrCreateIdentity(ctx, "voice-1")

	require.NoError(t, err)
	assert.NotZero(t, identity.ID)
	assert.Equal(t, "voice-1", identity.VoiceUserID)
	assert.Equal(t, "UTC", identity.Timezone)
	assert.False(t, identity.Linked())
}

func TestGetOrCreateIdentity_Existing(t *testing.T) {
	_, repo := testutil.NewTestDB(t)
	ctx := context.Background()

	first, err := repo.GetOrCreateIdentity(ctx, "voice-1")
	require.NoError(t, err)

	second, err := repo.GetOrCreateIdentity(ctx, "voice-1")

	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
}

func TestGetIdentityByVoiceID_NotFound(t *testing.T) {
	_, repo := testutil.NewTestDB(t)

	_, err := repo.GetIdentityByVoiceID(context.Background(), "nonexistent")

	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestUpdateIdentityTimezone(t *testing.T) {
	_, repo := testutil.NewTestDB(t)
	ctx := context.Background()

	identity := testutil.NewTestIdentity(t, repo, "voice-1")

	err := repo.UpdateIdentityTimezone(ctx, identity.ID, "Europe/Moscow")
	require.NoError(t, err)

	updated, err := repo.GetIdentityByVoiceID(ctx, "voice-1")
	require.NoError(t, err)
	assert.Equal(t, "Europe/Moscow", updated.Timezone)
}

func TestBindMessagingHash(t *testing.T) {
	_, repo := testutil.NewTestDB(t)
	ctx := context.Background()

	identity, err := repo.BindMessagingHash(ctx, "voice-1", "hash-a")

	require.NoError(t, err)
	assert.True(t, identity.Linked())

	found, err := repo.GetIdentityByMessagingHash(ctx, "hash-a")
	require.NoError(t, err)
	assert.Equal(t, "voice-1", found.VoiceUserID)
}

func TestBindMessagingHash_ExistingIdentity(t *testing.T) {
	_, repo := testutil.NewTestDB(t)
	ctx := context.Background()

	created := testutil.NewTestIdentity(t, repo, "voice-1")

	bound, err := repo.BindMessagingHash(ctx, "voice-1", "hash-a")

	require.NoError(t, err)
	assert.Equal(t, created.ID, bound.ID)
	assert.True(t, bound.Linked())
}

func TestBindMessagingHash_MovesPairing(t *testing.T) {
	_, repo := testutil.NewTestDB(t)
	ctx := context.Background()

	_, err := repo.BindMessagingHash(ctx, "voice-1", "hash-a")
	require.NoError(t, err)

	// The same messaging account links to a second voice user. The
	// first pairing must be cleared, not duplicated.
	_, err = repo.BindMessagingHash(ctx, "voice-2", "hash-a")
	require.NoError(t, err)

	owner, err := repo.GetIdentityByMessagingHash(ctx, "hash-a")
	require.NoError(t, err)
	assert.Equal(t, "voice-2", owner.VoiceUserID)

	previous, err := repo.GetIdentityByVoiceID(ctx, "voice-1")
	require.NoError(t, err)
	assert.False(t, previous.Linked())
}

func TestClearMessagingHash(t *testing.T) {
	_, repo := testutil.NewTestDB(t)
	ctx := context.Background()

	identity, err := repo.BindMessagingHash(ctx, "voice-1", "hash-a")
	require.NoError(t, err)

	cleared, err := repo.ClearMessagingHash(ctx, identity.ID)
	require.NoError(t, err)
	assert.True(t, cleared)

	cleared, err = repo.ClearMessagingHash(ctx, identity.ID)
	require.NoError(t, err)
	assert.False(t, cleared)
}
