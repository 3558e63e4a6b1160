package cryptox

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVerifyCredential_Plaintext(t *testing.T) {
	assert.True(t, VerifyCredential("admin123", "admin123"))
	assert.False(t, VerifyCredential("admin123", "admin124"))
	assert.False(t, VerifyCredential("admin123", ""))
	assert.False(t, VerifyCredential("", "x"))
}

func TestHashCredential_RoundTrip(t *testing.T) {
	h, err := HashCredential("staff123")
	require.NoError(t, err)
	require.True(t, IsHashed(h))
	require.NotContains(t, h, "staff123")

	assert.True(t, VerifyCredential(h, "staff123"))
	assert.False(t, VerifyCredential(h, "staff124"))
}

func TestHashCredential_SaltsDiffer(t *testing.T) {
	a, err := HashCredential("same")
	require.NoError(t, err)
	b, err := HashCredential("same")
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestVerifyCredential_MalformedHash(t *testing.T) {
	assert.False(t, VerifyCredential("argon2id$onlyonepart", "x"))
	assert.False(t, VerifyCredential("argon2id$!!$!!", "x"))
}

func TestNewLocalToken(t *testing.T) {
	a := NewLocalToken()
	b := NewLocalToken()
	assert.True(t, strings.HasPrefix(a, "local_"))
	assert.True(t, IsLocalToken(a))
	assert.False(t, IsLocalToken("eyJhbGciOi"))
	assert.NotEqual(t, a, b)
}
