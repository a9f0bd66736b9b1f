package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManagerRoundTrip(t *testing.T) {
	m := NewManager("secret", "yatube")

	token, err := m.Generate("user-1", "leo", []string{"admin"}, time.Hour)
	require.NoError(t, err)

	claims, err := m.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "leo", claims.Username)
	assert.True(t, claims.HasRole("admin"))
	assert.False(t, claims.HasRole("editor"))
}

func TestManagerRejectsExpiredToken(t *testing.T) {
	m := NewManager("secret", "yatube")

	token, err := m.Generate("user-1", "leo", nil, -time.Minute)
	require.NoError(t, err)

	_, err = m.Validate(token)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestManagerRejectsWrongSecret(t *testing.T) {
	issuer := NewManager("secret-a", "yatube")
	verifier := NewManager("secret-b", "yatube")

	token, err := issuer.Generate("user-1", "leo", nil, time.Hour)
	require.NoError(t, err)

	_, err = verifier.Validate(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestManagerRejectsGarbage(t *testing.T) {
	m := NewManager("secret", "yatube")

	_, err := m.Validate("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
