package util

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// HashKey returns a stable hex digest of parts. Parts are joined with a NUL
// byte so ("ab", "c") and ("a", "bc") never collide.
func HashKey(parts ...string) string {
	sum := sha256.Sum256([]byte(strings.Join(parts, "\x00")))
	return hex.EncodeToString(sum[:])
}
