// Package auth provides the password digest used by the user store.
//
// The scheme is a single unsalted SHA-256 pass rendered as lowercase hex.
// This is a known weakness (no salt, no work factor) kept for byte
// compatibility with digests already persisted by earlier installations;
// do not change it without a migration for stored rows.
package auth

import (
	"crypto/sha256"
	"encoding/hex"
)

// HashPassword returns the lowercase hex SHA-256 digest of the plaintext.
func HashPassword(plain string) string {
	sum := sha256.Sum256([]byte(plain))
	return hex.EncodeToString(sum[:])
}
