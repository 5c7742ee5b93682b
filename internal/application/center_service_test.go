package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/chinmayajanata/backend/internal/domain/entity"
	"github.com/chinmayajanata/backend/internal/domain/identity"
	"github.com/chinmayajanata/backend/internal/domain/rank"
)

func newCenterFixture(t *testing.T) (*CenterService, *memCenterRepo) {
	t.Helper()
	centers := newMemCenterRepo()
	svc := &CenterService{
		Repo:      centers,
		Authority: NewAuthority("Brahman", newMemUserRepo(), centers, nil),
		Allocator: identity.NewWithSeed(7),
	}
	return svc, centers
}

var admin = CallerContext{Principal: "Brahman"}

func TestCreateCenterIsAdminGated(t *testing.T) {
	svc, _ := newCenterFixture(t)
	_, err := svc.Create(context.Background(), CallerContext{Principal: "ramu"}, "Sidhbari", entity.Location{})
	require.ErrorIs(t, err, ErrNotAuthorized)
}

func TestCreateCenterAllocatesID(t *testing.T) {
	svc, _ := newCenterFixture(t)
	seen := map[int64]bool{}
	for i := 0; i < 10; i++ {
		c, err := svc.Create(context.Background(), admin, "Sidhbari", entity.Location{Latitude: 32.1, Longitude: 76.3})
		require.NoError(t, err)
		require.GreaterOrEqual(t, c.CenterID, int64(0))
		require.LessOrEqual(t, c.CenterID, rank.CenterIDSpace)
		require.False(t, seen[c.CenterID])
		seen[c.CenterID] = true
		require.False(t, c.IsVerified)
		require.Zero(t, c.MemberCount)
	}
}

func TestCenterLifecycle(t *testing.T) {
	svc, _ := newCenterFixture(t)
	c, err := svc.Create(context.Background(), admin, "Sidhbari", entity.Location{})
	require.NoError(t, err)

	got, err := svc.Get(context.Background(), c.CenterID)
	require.NoError(t, err)
	require.Equal(t, "Sidhbari", got.Name)

	require.NoError(t, svc.Verify(context.Background(), admin, c.CenterID))
	got, err = svc.Get(context.Background(), c.CenterID)
	require.NoError(t, err)
	require.True(t, got.IsVerified)

	all, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, all, 1)

	require.ErrorIs(t, svc.Remove(context.Background(), CallerContext{Principal: "x"}, c.CenterID), ErrNotAuthorized)
	require.NoError(t, svc.Remove(context.Background(), admin, c.CenterID))
	_, err = svc.Get(context.Background(), c.CenterID)
	require.ErrorIs(t, err, ErrCenterNotFound)
}

func TestCenterGetUnknown(t *testing.T) {
	svc, _ := newCenterFixture(t)
	_, err := svc.Get(context.Background(), 42)
	require.ErrorIs(t, err, ErrCenterNotFound)
}
