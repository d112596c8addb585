// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package database_test

import (
	"testing"

	"codeberg.org/oliverandrich/bpvoice/internal/database"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpen_RunsMigrations(t *testing.T) {
	db, err := database.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	var count int
	err = db.Get(&count,
		`SELECT count(*) FROM sqlite_master WHERE type = 'table'
		 AND name IN ('identities', 'link_tokens', 'measurements')`)
	require.NoError(t, err)
	assert.Equal(t, 3, count)
}

func TestMigrateDown(t *testing.T) {
	db, err := database.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, database.MigrateDown(db.DB))

	var count int
	err = db.Get(&count,
		`SELECT count(*) FROM sqlite_master WHERE type = 'table' AND name = 'identities'`)
	require.NoError(t, err)
	assert.Zero(t, count)
}
