package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("toomanysecrets", bcrypt.MinCost)
	require.NoError(t, err)
	assert.NotEqual(t, "toomanysecrets", hash)

	assert.True(t, VerifyPassword(hash, "toomanysecrets"))
	assert.False(t, VerifyPassword(hash, "wrong"))
	assert.False(t, VerifyPassword("not-a-hash", "toomanysecrets"))
}

func TestHashPasswordDefaultCost(t *testing.T) {
	hash, err := HashPassword("a", 0)
	require.NoError(t, err)

	cost, err := bcrypt.Cost([]byte(hash))
	require.NoError(t, err)
	assert.Equal(t, DefaultBcryptCost, cost)
}
