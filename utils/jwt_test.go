package utils

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	userID := uuid.New()
	token, err := GenerateToken(userID, "specialist")
	require.NoError(t, err)

	claims, err := ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, "specialist", claims.Role)
}

func TestValidateTokenRejectsWrongSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "first-secret")
	token, err := GenerateToken(uuid.New(), "user")
	require.NoError(t, err)

	t.Setenv("JWT_SECRET", "second-secret")
	_, err = ValidateToken(token)
	assert.Error(t, err)
}

func TestGenerateTokenWithoutSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	_, err := GenerateToken(uuid.New(), "user")
	assert.Error(t, err)
}
