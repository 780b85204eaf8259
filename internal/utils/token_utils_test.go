package utils_test

import (
	"testing"
	"time"

	"github.com/carrentpro/crp_backend/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndParseJWT(t *testing.T) {
	token, err := utils.GenerateJWT("user-1", "CUSTOMER", "test-secret", time.Hour, "crp-backend")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := utils.ParseAndValidateJWT(token, "test-secret")
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.Subject)
	assert.Equal(t, "CUSTOMER", claims.Role)
	assert.Equal(t, "crp-backend", claims.Issuer)
}

func TestParseJWT_WrongSecret(t *testing.T) {
	token, err := utils.GenerateJWT("user-1", "CUSTOMER", "test-secret", time.Hour, "crp-backend")
	require.NoError(t, err)

	_, err = utils.ParseAndValidateJWT(token, "other-secret")
	assert.Error(t, err)
}

func TestParseJWT_Expired(t *testing.T) {
	token, err := utils.GenerateJWT("user-1", "CUSTOMER", "test-secret", -time.Minute, "crp-backend")
	require.NoError(t, err)

	_, err = utils.ParseAndValidateJWT(token, "test-secret")
	assert.Error(t, err)
}

func TestPasswordHashRoundTrip(t *testing.T) {
	hash, err := utils.HashPassword("s3cret-pass")
	require.NoError(t, err)
	require.NotEqual(t, "s3cret-pass", hash)

	assert.True(t, utils.CheckPasswordHash("s3cret-pass", hash))
	assert.False(t, utils.CheckPasswordHash("wrong", hash))
}

func TestRefreshTokenHash(t *testing.T) {
	raw, err := utils.GenerateSecureRandomString(32)
	require.NoError(t, err)

	hash := utils.HashRefreshToken(raw)
	assert.True(t, utils.CompareRefreshTokenHash(raw, hash))
	assert.False(t, utils.CompareRefreshTokenHash("tampered", hash))
}
