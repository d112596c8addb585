// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

// Package linking implements the account-linking protocol: issuing
// human-speakable one-time codes on the messaging side, and matching
// them back out of noisy, fragmented voice utterances. Codes and
// messaging ids are only ever stored as keyed hashes.
package linking

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
)

// Hasher computes hex-encoded HMAC-SHA256 digests with the shared link
// secret. The same keying is used for token plaintexts and for
// messaging-channel ids, so stored values can be neither reversed nor
// forged without the key.
type Hasher struct {
	secret []byte
}

// NewHasher creates a Hasher for the given secret.
func NewHasher(secret string) *Hasher {
	return &Hasher{secret: []byte(secret)}
}

// Sum returns the hex-encoded keyed hash of value.
func (h *Hasher) Sum(value string) string {
	mac := hmac.New(sha256.New, h.secret)
	mac.Write([]byte(value))
	return hex.EncodeToString(mac.Sum(nil))
}
