package helpers

import (
	"crypto/rand"
	"encoding/hex"
)

// GenVerificationToken generates the opaque single-use token mailed out for
// email verification: 32 random bytes, hex encoded.
func GenVerificationToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

// KeyOAuthState is the Redis key for a pending OAuth state nonce.
func KeyOAuthState(state string) string {
	return "oauth:state:" + state
}

// KeyHomepageSections is the Redis key caching the homepage payload.
func KeyHomepageSections() string {
	return "products:homepage"
}
