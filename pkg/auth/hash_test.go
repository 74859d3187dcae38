package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"
)

func TestHashPassword(t *testing.T) {
	hashService := &HashService{Cost: bcrypt.MinCost}

	tests := []struct {
		name        string
		password    string
		expectError error
	}{
		{
			name:     "Valid Password",
			password: "securepassword",
		},
		{
			name:        "Empty Password",
			password:    "",
			expectError: ErrEmptyPassword,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hashedPassword, err := hashService.HashPassword(tt.password)

			if tt.expectError != nil {
				assert.ErrorIs(t, err, tt.expectError)
				assert.Empty(t, hashedPassword)
			} else {
				assert.NoError(t, err)
				assert.NotEmpty(t, hashedPassword)
				cost, err := bcrypt.Cost([]byte(hashedPassword))
				assert.NoError(t, err)
				assert.Equal(t, bcrypt.MinCost, cost)
			}
		})
	}
}

func TestHashService_DefaultCost(t *testing.T) {
	assert.Equal(t, bcrypt.DefaultCost, (&HashService{}).cost())
}

func TestComparePassword(t *testing.T) {
	hashService := &HashService{Cost: bcrypt.MinCost}
	hashedPassword, err := hashService.HashPassword("securepassword")
	assert.NoError(t, err)

	tests := []struct {
		name        string
		password    string
		expectMatch bool
	}{
		{name: "Matching Password", password: "securepassword", expectMatch: true},
		{name: "Non-Matching Password", password: "wrongpassword", expectMatch: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expectMatch, hashService.ComparePassword(hashedPassword, tt.password))
		})
	}
}
