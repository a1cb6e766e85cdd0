package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ankit705yadav/skillCircle/internal/config"
)

func init() {
	config.AppConfig = &config.Config{JWTSecret: "test_secret_key_12345"}
}

func TestTokenRoundTrip(t *testing.T) {
	token, err := GenerateDevToken("subj_alice")
	require.NoError(t, err)

	claims, err := ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "subj_alice", claims.Subject)
}

func TestValidateTokenRejectsBadInput(t *testing.T) {
	_, err := ValidateToken("not.a.token")
	assert.Error(t, err)

	// Wrong key.
	other := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "subj_alice",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})
	signed, err := other.SignedString([]byte("some_other_secret"))
	require.NoError(t, err)
	_, err = ValidateToken(signed)
	assert.Error(t, err)

	// Expired.
	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "subj_alice",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
	})
	signed, err = expired.SignedString([]byte(config.AppConfig.JWTSecret))
	require.NoError(t, err)
	_, err = ValidateToken(signed)
	assert.Error(t, err)

	// No subject.
	anonymous := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})
	signed, err = anonymous.SignedString([]byte(config.AppConfig.JWTSecret))
	require.NoError(t, err)
	_, err = ValidateToken(signed)
	assert.Error(t, err)
}
