package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadRequiresSecret(t *testing.T) {
	t.Setenv("JWT_SECRET_KEY", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_SECRET_KEY")
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET_KEY", "s3cret")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "s3cret", cfg.JWTSecret)
	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, "db_users.db", cfg.DBPath)
	assert.Equal(t, "HS256", cfg.JWTAlgorithm)
	assert.Equal(t, "alea-lumen-auth", cfg.JWTIssuer)
	assert.Equal(t, 8, cfg.TokenTTLHours)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("JWT_SECRET_KEY", "s3cret")
	t.Setenv("SERVER_PORT", "9000")
	t.Setenv("JWT_TOKEN_TTL_HOURS", "2")
	t.Setenv("JWT_ISSUER", "other-issuer")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9000", cfg.ServerPort)
	assert.Equal(t, 2, cfg.TokenTTLHours)
	assert.Equal(t, "other-issuer", cfg.JWTIssuer)
}

func TestGetEnvIntIgnoresGarbage(t *testing.T) {
	t.Setenv("JWT_TOKEN_TTL_HOURS", "not-a-number")
	assert.Equal(t, 8, getEnvInt("JWT_TOKEN_TTL_HOURS", 8))
}
