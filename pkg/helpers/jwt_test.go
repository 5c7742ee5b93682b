package helpers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestJWTRoundTrip(t *testing.T) {
	m := NewJWTManager("access-secret", "refresh-secret", time.Hour, 24*time.Hour)

	token, exp, err := m.GenerateAccessToken("ramu", "sid-1")
	require.NoError(t, err)
	require.True(t, exp.After(time.Now()))

	claims, err := m.ParseAccessToken(token)
	require.NoError(t, err)
	require.Equal(t, "ramu", claims.Username)
	require.Equal(t, "sid-1", claims.SessionID)
}

func TestJWTAccessAndRefreshSecretsAreSeparate(t *testing.T) {
	m := NewJWTManager("access-secret", "refresh-secret", time.Hour, 24*time.Hour)

	refresh, _, err := m.GenerateRefreshToken("ramu", "sid-1")
	require.NoError(t, err)

	_, err = m.ParseAccessToken(refresh)
	require.Error(t, err, "refresh token must not validate as access token")

	claims, err := m.ParseRefreshToken(refresh)
	require.NoError(t, err)
	require.Equal(t, "ramu", claims.Username)
}

func TestJWTRejectsTampering(t *testing.T) {
	m := NewJWTManager("access-secret", "refresh-secret", time.Hour, 24*time.Hour)
	token, _, err := m.GenerateAccessToken("ramu", "sid-1")
	require.NoError(t, err)

	other := NewJWTManager("different", "different", time.Hour, 24*time.Hour)
	_, err = other.ParseAccessToken(token)
	require.Error(t, err)
}
