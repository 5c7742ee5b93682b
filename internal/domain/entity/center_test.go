package entity

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCenterJSONRoundTrip(t *testing.T) {
	c := NewCenter(Location{Latitude: 32.1453, Longitude: 76.3229}, "Sidhbari")
	c.CenterID = 9108
	c.MemberCount = 12
	c.IsVerified = true

	b, err := json.Marshal(c)
	require.NoError(t, err)

	var got Center
	require.NoError(t, json.Unmarshal(b, &got))
	require.Equal(t, *c, got)
}

func TestNewCenterDefaults(t *testing.T) {
	c := NewCenter(Location{Latitude: 1, Longitude: 2}, "Tara")
	require.Equal(t, int64(UnassignedCenterID), c.CenterID)
	require.Equal(t, "Tara", c.Name)
	require.Zero(t, c.MemberCount)
	require.False(t, c.IsVerified)
}
