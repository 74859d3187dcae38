package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func TestGenerateJWT(t *testing.T) {
	jwtService := NewJWTService(testSecret)

	token, err := jwtService.GenerateJWT(123, true, time.Now().Add(time.Hour))
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := jwtService.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, 123, claims.UserID)
	assert.True(t, claims.IsAdmin)
	assert.Equal(t, issuer, claims.Issuer)
}

func TestValidateToken(t *testing.T) {
	jwtService := NewJWTService(testSecret)

	sign := func(claims jwt.Claims, secret string) string {
		token, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
		return token
	}

	tests := []struct {
		name        string
		setup       func() string
		expectError error
	}{
		{
			name: "Valid Token",
			setup: func() string {
				token, _ := jwtService.GenerateJWT(123, false, time.Now().Add(time.Hour))
				return token
			},
		},
		{
			name:        "Malformed Token",
			setup:       func() string { return "invalid.token.string" },
			expectError: ErrInvalidToken,
		},
		{
			name: "Expired Token",
			setup: func() string {
				token, _ := jwtService.GenerateJWT(123, false, time.Now().Add(-time.Hour))
				return token
			},
			expectError: ErrInvalidToken,
		},
		{
			name: "Other Secret",
			setup: func() string {
				token, _ := NewJWTService("another").GenerateJWT(123, true, time.Now().Add(time.Hour))
				return token
			},
			expectError: ErrInvalidToken,
		},
		{
			name: "Missing User",
			setup: func() string {
				return sign(jwt.StandardClaims{
					ExpiresAt: time.Now().Add(time.Hour).Unix(),
					Issuer:    issuer,
				}, testSecret)
			},
			expectError: ErrInvalidTokenClaims,
		},
		{
			name: "Foreign Issuer",
			setup: func() string {
				return sign(Claims{
					UserID:         1,
					StandardClaims: jwt.StandardClaims{ExpiresAt: time.Now().Add(time.Hour).Unix(), Issuer: "someone-else"},
				}, testSecret)
			},
			expectError: ErrInvalidTokenClaims,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, err := jwtService.ValidateToken(tt.setup())

			if tt.expectError != nil {
				assert.ErrorIs(t, err, tt.expectError)
				assert.Nil(t, claims)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, claims)
			}
		})
	}
}
