package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndValidateTokens(t *testing.T) {
	a := NewJWTAuthenticator("access-secret", "refresh-secret", "easypack", "easypack")

	access, refresh, err := a.GenerateTokens(42)
	require.NoError(t, err)
	require.NotEmpty(t, access)
	require.NotEmpty(t, refresh)

	parsed, err := a.ValidateAccessToken(access)
	require.NoError(t, err)
	require.True(t, parsed.Valid)

	claims, ok := parsed.Claims.(jwt.MapClaims)
	require.True(t, ok)
	assert.EqualValues(t, 42, claims["sub"])
	assert.Equal(t, "easypack", claims["iss"])

	// access tokens live for one hour
	exp, err := claims.GetExpirationTime()
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(AccessTokenExp), exp.Time, time.Minute)
}

func TestRefreshTokenCarriesJTI(t *testing.T) {
	a := NewJWTAuthenticator("access-secret", "refresh-secret", "easypack", "easypack")

	_, refresh, err := a.GenerateTokens(7)
	require.NoError(t, err)

	parsed, err := a.ValidateRefreshToken(refresh)
	require.NoError(t, err)

	claims := parsed.Claims.(jwt.MapClaims)
	assert.NotEmpty(t, claims["jti"])
}

func TestTokensRejectWrongSecret(t *testing.T) {
	a := NewJWTAuthenticator("access-secret", "refresh-secret", "easypack", "easypack")
	other := NewJWTAuthenticator("different", "different", "easypack", "easypack")

	access, refresh, err := a.GenerateTokens(1)
	require.NoError(t, err)

	_, err = other.ValidateAccessToken(access)
	assert.Error(t, err)

	_, err = other.ValidateRefreshToken(refresh)
	assert.Error(t, err)

	// access and refresh secrets are not interchangeable
	_, err = a.ValidateAccessToken(refresh)
	assert.Error(t, err)
}
