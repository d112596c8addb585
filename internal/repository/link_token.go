// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package repository

import (
	"context"
	"time"

	"codeberg.org/oliverandrich/bpvoice/internal/models"
	"github.com/vinovest/sqlx"
)

// CreateLinkToken stores a freshly issued token. Only the hash ever
// reaches this layer.
func (r *Repository) CreateLinkToken(ctx context.Context, token *models.LinkToken) error {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO link_tokens (token_hash, target_id_hash, created_at, expires_at, used)
		 VALUES (?, ?, ?, ?, 0)`,
		token.TokenHash, token.TargetIDHash, token.CreatedAt, token.ExpiresAt)
	if err != nil {
		return err
	}
	token.ID, err = res.LastInsertId()
	return err
}

// LatestLinkTokenForTarget returns the most recently created token for
// the given target hash, used for the issuance rate limit.
func (r *Repository) LatestLinkTokenForTarget(ctx context.Context, targetIDHash string) (*models.LinkToken, error) {
	var token models.LinkToken
	err := r.db.GetContext(ctx, &token,
		`SELECT * FROM link_tokens WHERE target_id_hash = ? ORDER BY created_at DESC LIMIT 1`,
		targetIDHash)
	if err != nil {
		return nil, wrapError(err)
	}
	return &token, nil
}

// FindLiveLinkToken returns the unexpired token whose hash is in the
// candidate set, preferring the earliest-created row when several
// candidates match. Used rows are returned too so the caller can tell
// "already consumed" apart from "no such token".
func (r *Repository) FindLiveLinkToken(ctx context.Context, hashes []string, now time.Time) (*models.LinkToken, error) {
	if len(hashes) == 0 {
		return nil, ErrNotFound
	}

	query, args, err := sqlx.In(
		`SELECT * FROM link_tokens WHERE token_hash IN (?) AND expires_at > ?
		 ORDER BY created_at ASC LIMIT 1`,
		hashes, now)
	if err != nil {
		return nil, err
	}

	var token models.LinkToken
	if err := r.db.GetContext(ctx, &token, r.db.Rebind(query), args...); err != nil {
		return nil, wrapError(err)
	}
	return &token, nil
}

// ConsumeLinkToken marks a token as used. The conditional update is the
// only guard against two concurrent matches on the same row, so the
// caller must treat a false return as "someone else won".
func (r *Repository) ConsumeLinkToken(ctx context.Context, id int64) (bool, error) {
	res, err := r.db.ExecContext(ctx,
		`UPDATE link_tokens SET used = 1 WHERE id = ? AND used = 0`, id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

// DeleteExpiredLinkTokens removes expired and consumed rows. Meant for
// a periodic maintenance job, not the request path.
func (r *Repository) DeleteExpiredLinkTokens(ctx context.Context, now time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM link_tokens WHERE expires_at <= ? OR used = 1`, now)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
