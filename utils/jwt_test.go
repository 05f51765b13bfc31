package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndParseToken(t *testing.T) {
	tok, err := GenerateToken(42, "cashier", "s3cret", time.Hour)
	require.NoError(t, err)

	claims, err := ParseToken(tok, "s3cret")
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, "cashier", claims.Role)
}

func TestParseTokenRejects(t *testing.T) {
	tok, err := GenerateToken(42, "cashier", "s3cret", time.Hour)
	require.NoError(t, err)

	_, err = ParseToken(tok, "other")
	assert.ErrorIs(t, err, ErrInvalidToken)

	expired, err := GenerateToken(42, "cashier", "s3cret", -time.Minute)
	require.NoError(t, err)
	_, err = ParseToken(expired, "s3cret")
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = ParseToken("not-a-token", "s3cret")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
