package helpers

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHashPassword(t *testing.T) {
	hash, err := HashPassword("Secret123", 0)
	require.NoError(t, err)

	assert.NotEqual(t, "Secret123", hash)
	cost, err := bcrypt.Cost([]byte(hash))
	require.NoError(t, err)
	assert.Equal(t, PasswordCost, cost)

	assert.True(t, CompareHashAndPassword(hash, "Secret123"))
	assert.False(t, CompareHashAndPassword(hash, "secret123"))
}

func TestHashPassword_SaltedPerCall(t *testing.T) {
	a, err := HashPassword("same", PasswordCost)
	require.NoError(t, err)
	b, err := HashPassword("same", PasswordCost)
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestHashPassword_LengthLimit(t *testing.T) {
	_, err := HashPassword(strings.Repeat("p", MaxPasswordBytes), PasswordCost)
	require.NoError(t, err)

	_, err = HashPassword(strings.Repeat("p", MaxPasswordBytes+1), PasswordCost)
	assert.ErrorIs(t, err, bcrypt.ErrPasswordTooLong)
}

func TestCompareHashAndPassword_GarbageHash(t *testing.T) {
	assert.False(t, CompareHashAndPassword("not-a-hash", "whatever"))
	assert.False(t, CompareHashAndPassword("", ""))
}
