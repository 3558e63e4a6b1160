// Package cryptox isolates credential handling for the local store:
// verification of stored secrets, the optional argon2id storage format,
// and minting of locally issued session tokens.
package cryptox

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/argon2"
)

const (
	argonPrefix  = "argon2id$"
	argonTime    = 1
	argonMemory  = 64 * 1024
	argonThreads = 4
	argonKeyLen  = 32
	saltLen      = 16

	// LocalTokenPrefix marks tokens synthesized by local sign-in.
	LocalTokenPrefix = "local_"
)

// VerifyCredential reports whether candidate matches the stored secret.
// Stored secrets are either plaintext or in the argon2id format produced by
// HashCredential.
func VerifyCredential(stored, candidate string) bool {
	if strings.HasPrefix(stored, argonPrefix) {
		salt, key, err := decodeArgon(stored)
		if err != nil {
			return false
		}
		got := deriveKey([]byte(candidate), salt)
		return subtle.ConstantTimeCompare(key, got) == 1
	}
	return subtle.ConstantTimeCompare([]byte(stored), []byte(candidate)) == 1
}

// HashCredential returns secret in the argon2id storage format
// "argon2id$<salt>$<key>" (raw base64url).
func HashCredential(secret string) (string, error) {
	salt := make([]byte, saltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("generate salt: %w", err)
	}
	key := deriveKey([]byte(secret), salt)
	enc := base64.RawURLEncoding
	return argonPrefix + enc.EncodeToString(salt) + "$" + enc.EncodeToString(key), nil
}

// IsHashed reports whether stored is in the argon2id format.
func IsHashed(stored string) bool {
	return strings.HasPrefix(stored, argonPrefix)
}

// NewLocalToken mints an opaque token for a session established without the remote service.
func NewLocalToken() string {
	return LocalTokenPrefix + uuid.NewString()
}

// IsLocalToken reports whether token was minted by NewLocalToken.
func IsLocalToken(token string) bool {
	return strings.HasPrefix(token, LocalTokenPrefix)
}

func deriveKey(secret, salt []byte) []byte {
	return argon2.IDKey(secret, salt, argonTime, argonMemory, argonThreads, argonKeyLen)
}

func decodeArgon(stored string) (salt, key []byte, err error) {
	parts := strings.Split(strings.TrimPrefix(stored, argonPrefix), "$")
	if len(parts) != 2 {
		return nil, nil, fmt.Errorf("malformed argon2id credential")
	}
	enc := base64.RawURLEncoding
	if salt, err = enc.DecodeString(parts[0]); err != nil {
		return nil, nil, err
	}
	if key, err = enc.DecodeString(parts[1]); err != nil {
		return nil, nil, err
	}
	return salt, key, nil
}
