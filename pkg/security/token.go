package security

import (
	"crypto/rand"
	"encoding/hex"
)

// NewToken returns 24 bytes of crypto/rand entropy, hex-encoded.
// Used for per-session CSRF tokens and nowhere else.
func NewToken() string {
	b := make([]byte, 24)
	if _, err := rand.Read(b); err != nil {
		// crypto/rand never fails on supported platforms
		panic("security: rand.Read: " + err.Error())
	}
	return hex.EncodeToString(b)
}
