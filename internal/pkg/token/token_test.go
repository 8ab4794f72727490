package token

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signed(t *testing.T, exp *time.Time) string {
	t.Helper()
	claims := jwt.RegisteredClaims{Subject: "42"}
	if exp != nil {
		claims.ExpiresAt = jwt.NewNumericDate(*exp)
	}
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("secret"))
	require.NoError(t, err)
	return s
}

func TestExpired(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)

	assert.True(t, Expired(signed(t, &past), now))
	assert.False(t, Expired(signed(t, &future), now))
	assert.False(t, Expired(signed(t, nil), now))
	assert.False(t, Expired("opaque-session-token", now))
}

func TestExpiresAt_Opaque(t *testing.T) {
	_, err := ExpiresAt("abc")
	assert.ErrorIs(t, err, ErrOpaqueToken)

	_, err = ExpiresAt("a.b.c")
	assert.ErrorIs(t, err, ErrOpaqueToken)
}
