package security

import (
	"crypto/sha256"
	"encoding/hex"
)

// HashSensitive returns the lowercase hex SHA-256 digest of value. Raw
// card material is only ever stored through this.
func HashSensitive(value string) string {
	digest := sha256.Sum256([]byte(value))
	return hex.EncodeToString(digest[:])
}
