package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndParseToken(t *testing.T) {
	Init("test-secret", time.Minute)

	token, err := GenerateToken("user-1", "talent")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "talent", claims.Role)
}

func TestParseTokenTampered(t *testing.T) {
	Init("test-secret", time.Minute)

	token, err := GenerateToken("user-1", "talent")
	require.NoError(t, err)

	_, err = ParseToken(token + "broken")
	assert.ErrorIs(t, err, ErrTokenInvalid)

	_, err = ParseToken("not-a-token")
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestParseTokenExpired(t *testing.T) {
	Init("test-secret", -time.Minute)

	token, err := GenerateToken("user-1", "talent")
	require.NoError(t, err)

	_, err = ParseToken(token)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("secret1")
	require.NoError(t, err)
	assert.True(t, CheckPasswordHash("secret1", hash))
	assert.False(t, CheckPasswordHash("wrong", hash))
}

func TestValidatePassword(t *testing.T) {
	assert.ErrorIs(t, ValidatePassword("12345"), ErrPasswordTooShort)
	assert.NoError(t, ValidatePassword("123456"))
}
