// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package models

import "time"

// Identity is one end user across both identity spaces. VoiceUserID
// comes from the voice platform; MessagingIDHash is the keyed hash of
// the messaging-channel id and is nil until the accounts are linked.
// At most one identity owns a given messaging hash at any time.
type Identity struct { //nolint:govet // fieldalignment: readability over optimization
	ID              int64     `db:"id" json:"id"`
	VoiceUserID     string    `db:"voice_user_id" json:"voice_user_id"`
	MessagingIDHash *string   `db:"messaging_id_hash" json:"-"`
	Timezone        string    `db:"timezone" json:"timezone"`
	CreatedAt       time.Time `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time `db:"updated_at" json:"updated_at"`
}

// Linked reports whether the identity is paired with a messaging id.
func (i *Identity) Linked() bool {
	return i.MessagingIDHash != nil && *i.MessagingIDHash != ""
}
