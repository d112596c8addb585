// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package repository

import (
	"context"
	"time"

	"codeberg.org/oliverandrich/bpvoice/internal/models"
)

// GetIdentityByVoiceID retrieves an identity by its voice-platform user id.
func (r *Repository) GetIdentityByVoiceID(ctx context.Context, voiceUserID string) (*models.Identity, error) {
	var identity models.Identity
	err := r.db.GetContext(ctx, &identity,
		`SELECT * FROM identities WHERE voice_user_id = ?`, voiceUserID)
	if err != nil {
		return nil, wrapError(err)
	}
	return &identity, nil
}

// GetIdentityByMessagingHash retrieves an identity by its messaging id hash.
func (r *Repository) GetIdentityByMessagingHash(ctx context.Context, hash string) (*models.Identity, error) {
	var identity models.Identity
	err := r.db.GetContext(ctx, &identity,
		`SELECT * FROM identities WHERE messaging_id_hash = ?`, hash)
	if err != nil {
		return nil, wrapError(err)
	}
	return &identity, nil
}

// CreateIdentity creates a new identity row.
func (r *Repository) CreateIdentity(ctx context.Context, identity *models.Identity) error {
	now := time.Now().UTC()
	if identity.Timezone == "" {
		identity.Timezone = "UTC"
	}
	identity.CreatedAt = now
	identity.UpdatedAt = now

	res, err := r.db.ExecContext(ctx,
		`INSERT INTO identities (voice_user_id, messaging_id_hash, timezone, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?)`,
		identity.VoiceUserID, identity.MessagingIDHash, identity.Timezone, now, now)
	if err != nil {
		return err
	}
	identity.ID, err = res.LastInsertId()
	return err
}

// GetOrCreateIdentity returns the identity for the voice user, creating
// it on first contact.
func (r *Repository) GetOrCreateIdentity(ctx context.Context, voiceUserID string) (*models.Identity, error) {
	identity, err := r.GetIdentityByVoiceID(ctx, voiceUserID)
	if err == nil {
		return identity, nil
	}
	if err != ErrNotFound {
		return nil, err
	}

	identity = &models.Identity{VoiceUserID: voiceUserID}
	if err := r.CreateIdentity(ctx, identity); err != nil {
		return nil, err
	}
	return identity, nil
}

// UpdateIdentityTimezone stores the timezone reported by the voice platform.
func (r *Repository) UpdateIdentityTimezone(ctx context.Context, id int64, timezone string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE identities SET timezone = ?, updated_at = ? WHERE id = ?`,
		timezone, time.Now().UTC(), id)
	return err
}

// BindMessagingHash pairs the voice user with a messaging id hash. If a
// different identity currently owns the hash, its pairing is cleared in
// the same transaction: the most recent link always wins.
func (r *Repository) BindMessagingHash(ctx context.Context, voiceUserID, hash string) (*models.Identity, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback() }()

	now := time.Now().UTC()

	// Silently unlink the previous owner, if any.
	if _, err := tx.ExecContext(ctx,
		`UPDATE identities SET messaging_id_hash = NULL, updated_at = ? WHERE messaging_id_hash = ?`,
		now, hash); err != nil {
		return nil, err
	}

	var identity models.Identity
	err = tx.GetContext(ctx, &identity,
		`SELECT * FROM identities WHERE voice_user_id = ?`, voiceUserID)
	switch wrapError(err) {
	case nil:
		if _, err := tx.ExecContext(ctx,
			`UPDATE identities SET messaging_id_hash = ?, updated_at = ? WHERE id = ?`,
			hash, now, identity.ID); err != nil {
			return nil, err
		}
	case ErrNotFound:
		res, err := tx.ExecContext(ctx,
			`INSERT INTO identities (voice_user_id, messaging_id_hash, timezone, created_at, updated_at)
			 VALUES (?, ?, 'UTC', ?, ?)`,
			voiceUserID, hash, now, now)
		if err != nil {
			return nil, err
		}
		identity = models.Identity{VoiceUserID: voiceUserID, Timezone: "UTC", CreatedAt: now}
		if identity.ID, err = res.LastInsertId(); err != nil {
			return nil, err
		}
	default:
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	identity.MessagingIDHash = &hash
	identity.UpdatedAt = now
	return &identity, nil
}

// ClearMessagingHash removes the pairing of the given identity. It
// reports whether a pairing existed.
func (r *Repository) ClearMessagingHash(ctx context.Context, id int64) (bool, error) {
	res, err := r.db.ExecContext(ctx,
		`UPDATE identities SET messaging_id_hash = NULL, updated_at = ?
		 WHERE id = ? AND messaging_id_hash IS NOT NULL`,
		time.Now().UTC(), id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}
