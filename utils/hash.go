package utils

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"

	"Habitual/config"
)

// HashPassword returns the salted sha256 hex digest stored for a user.
// The salt comes from configuration so digests are not portable across
// deployments.
func HashPassword(password string) string {
	salt := config.Cfg.PasswordHashSalt
	sum := sha256.Sum256([]byte(salt + ":" + password))
	return hex.EncodeToString(sum[:])
}

// VerifyPassword compares a candidate password against a stored digest
// in constant time.
func VerifyPassword(password, digest string) bool {
	candidate := HashPassword(password)
	return subtle.ConstantTimeCompare([]byte(candidate), []byte(digest)) == 1
}
