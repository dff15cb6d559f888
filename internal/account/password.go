package account

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
)

// HashPassword returns the lower-case hex SHA-256 digest of the raw
// password. The stored hash is compared by exact string equality; the raw
// password is never persisted.
func HashPassword(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}

// CheckPassword reports whether raw hashes to the stored digest.
func CheckPassword(raw, storedHash string) bool {
	h := HashPassword(raw)
	return subtle.ConstantTimeCompare([]byte(h), []byte(storedHash)) == 1
}
