package auth

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestJWTService_AccessTokenRoundTrip(t *testing.T) {
	service := NewJWTService("test-secret")

	token, err := service.GenerateAccessToken(42, "user@example.com", "ADMIN")
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := service.ValidateToken(token)
	assert.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, "user@example.com", claims.Email)
	assert.Equal(t, "ADMIN", claims.Role)
}

func TestJWTService_RefreshTokenCarriesNoRole(t *testing.T) {
	service := NewJWTService("test-secret")

	token, err := service.GenerateRefreshToken(42, "user@example.com")
	assert.NoError(t, err)

	claims, err := service.ValidateToken(token)
	assert.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Empty(t, claims.Role)
	assert.NotEmpty(t, claims.ID)
}

func TestJWTService_RejectsForeignSignature(t *testing.T) {
	token, err := NewJWTService("secret-a").GenerateAccessToken(1, "user@example.com", "USER")
	assert.NoError(t, err)

	_, err = NewJWTService("secret-b").ValidateToken(token)
	assert.Error(t, err)
}

func TestJWTService_ParseUnverified(t *testing.T) {
	// Decoding must work even when the signing key is unknown.
	token, err := NewJWTService("secret-a").GenerateRefreshToken(7, "user@example.com")
	assert.NoError(t, err)

	claims, err := NewJWTService("secret-b").ParseUnverified(token)
	assert.NoError(t, err)
	assert.Equal(t, uint(7), claims.UserID)

	_, err = NewJWTService("secret-b").ParseUnverified("not-a-token")
	assert.Error(t, err)
}

func TestHashToken(t *testing.T) {
	a := HashToken("token-one")
	b := HashToken("token-one")
	c := HashToken("token-two")

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.Len(t, a, 64)
}

func TestGenerateOTP(t *testing.T) {
	for i := 0; i < 50; i++ {
		code, err := GenerateOTP()
		assert.NoError(t, err)
		assert.Len(t, code, 6)

		n, err := strconv.Atoi(code)
		assert.NoError(t, err)
		assert.GreaterOrEqual(t, n, 100000)
		assert.LessOrEqual(t, n, 999999)
	}
}
