package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword(t *testing.T) {
	hash, err := HashPassword("senhasecreta1")
	require.NoError(t, err)
	assert.NotEmpty(t, hash)
	assert.NotEqual(t, "senhasecreta1", hash)

	// fresh salt per call
	again, err := HashPassword("senhasecreta1")
	require.NoError(t, err)
	assert.NotEqual(t, hash, again)
}

func TestCheckPassword(t *testing.T) {
	hash, err := HashPassword("senhasecreta1")
	require.NoError(t, err)

	assert.True(t, CheckPassword("senhasecreta1", hash))
	assert.False(t, CheckPassword("senhaerrada", hash))
	assert.False(t, CheckPassword("", hash))
}

func TestCheckPasswordMalformedHash(t *testing.T) {
	// a broken stored hash is a mismatch, never a panic or error
	assert.False(t, CheckPassword("senhasecreta1", "not-a-bcrypt-hash"))
	assert.False(t, CheckPassword("senhasecreta1", ""))
}
