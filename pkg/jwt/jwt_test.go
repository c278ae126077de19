package jwt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManager_AccessTokenRoundTrip(t *testing.T) {
	m := NewManager("test-secret", 15, 72)

	token, err := m.GenerateAccessToken("user-1", "user@example.com", "admin")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := m.ValidateToken(token)
	require.NoError(t, err)

	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "user@example.com", claims.Email)
	assert.Equal(t, "admin", claims.Role)
	assert.Equal(t, "access", claims.Type)
}

func TestManager_RefreshTokenHasNoRole(t *testing.T) {
	m := NewManager("test-secret", 15, 72)

	token, err := m.GenerateRefreshToken("user-1")
	require.NoError(t, err)

	claims, err := m.ValidateToken(token)
	require.NoError(t, err)

	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "refresh", claims.Type)
	assert.Empty(t, claims.Role)
}

func TestManager_RejectsWrongSecret(t *testing.T) {
	token, err := NewManager("secret-a", 15, 72).GenerateAccessToken("u", "e@x.com", "staff")
	require.NoError(t, err)

	_, err = NewManager("secret-b", 15, 72).ValidateToken(token)
	assert.Error(t, err)
}

func TestManager_RejectsExpiredToken(t *testing.T) {
	// Zero-minute TTL expires the token immediately
	m := NewManager("test-secret", 0, 72)

	token, err := m.GenerateAccessToken("u", "e@x.com", "staff")
	require.NoError(t, err)

	_, err = m.ValidateToken(token)
	assert.Error(t, err)
}

func TestManager_RejectsGarbage(t *testing.T) {
	m := NewManager("test-secret", 15, 72)
	_, err := m.ValidateToken("not.a.token")
	assert.Error(t, err)
}
