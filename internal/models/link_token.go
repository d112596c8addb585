// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package models

import "time"

// LinkToken is a single pending account-linking attempt. Only the keyed
// hash of the spoken code is stored, never the plaintext. Used is set
// exactly once and never cleared.
type LinkToken struct { //nolint:govet // fieldalignment: readability over optimization
	ID           int64     `db:"id" json:"id"`
	TokenHash    string    `db:"token_hash" json:"-"`
	TargetIDHash string    `db:"target_id_hash" json:"-"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	ExpiresAt    time.Time `db:"expires_at" json:"expires_at"`
	Used         bool      `db:"used" json:"used"`
}

// Live reports whether the token can still be matched at the given time.
func (t *LinkToken) Live(now time.Time) bool {
	return !t.Used && now.Before(t.ExpiresAt)
}
