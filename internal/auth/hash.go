package auth

import (
	"crypto/sha256"
	"encoding/hex"
)

// QuickHash returns a truncated SHA256 hash of the input for cache key
// derivation. This is NOT for password storage.
func QuickHash(input string) string {
	hash := sha256.Sum256([]byte(input))
	return hex.EncodeToString(hash[:16])
}
