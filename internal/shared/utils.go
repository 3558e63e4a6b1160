package shared

import (
	"crypto/rand"
	"encoding/hex"
)

// MakeRandHexString returns size random bytes, hex encoded. The dev server
// uses it for a signing secret when none is configured.
func MakeRandHexString(size int) (string, error) {
	b := make([]byte, size)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

// WipeByteArray zeroes b. Password prompts call it on the terminal buffer
// once the secret has been handed to the coordinator. Strings already built
// from b are not affected.
func WipeByteArray(b []byte) {
	clear(b)
}
