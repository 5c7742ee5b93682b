package entity

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/chinmayajanata/backend/internal/domain/rank"
)

func TestUserJSONRoundTrip(t *testing.T) {
	u := NewUser("ramu")
	u.ID = "5c0d8f3a"
	u.Email = "ramu@example.org"
	u.Center = 7
	u.Points = 108
	u.IsVerified = true
	u.VerificationLevel = rank.Sevak
	u.IsActive = true
	u.AvatarURL = "https://storage.example.org/avatars/ramu.png"
	u.Events = []int64{3, 9}

	b, err := json.Marshal(u)
	require.NoError(t, err)

	var got User
	require.NoError(t, json.Unmarshal(b, &got))
	require.Equal(t, *u, got)
}

func TestNewUserDefaults(t *testing.T) {
	u := NewUser("ramu")
	require.Equal(t, "ramu", u.Username)
	require.Equal(t, rank.NormalUser, u.VerificationLevel)
	require.False(t, u.IsVerified)
	require.False(t, u.IsActive)
	require.Zero(t, u.Points)
	require.NotNil(t, u.Events)
	require.Empty(t, u.Events)
}

func TestAddPointsRejectsNegative(t *testing.T) {
	u := NewUser("ramu")
	require.False(t, u.AddPoints(-5))
	require.Zero(t, u.Points)
	require.True(t, u.AddPoints(54))
	require.True(t, u.AddPoints(0))
	require.Equal(t, int64(54), u.Points)
}

func TestAttendsEvent(t *testing.T) {
	u := NewUser("ramu")
	require.False(t, u.AttendsEvent(9))
	u.Events = append(u.Events, 9)
	require.True(t, u.AttendsEvent(9))
	require.False(t, u.AttendsEvent(10))
}
