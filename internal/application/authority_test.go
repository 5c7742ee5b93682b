package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/chinmayajanata/backend/internal/domain/entity"
	"github.com/chinmayajanata/backend/internal/domain/rank"
)

func newAuthorityFixture(t *testing.T) (*Authority, *memUserRepo, *memCenterRepo) {
	t.Helper()
	users := newMemUserRepo()
	centers := newMemCenterRepo()
	return NewAuthority("Brahman", users, centers, nil), users, centers
}

func TestAuthorizeAdminOnly(t *testing.T) {
	a, _, _ := newAuthorityFixture(t)
	require.NoError(t, a.Authorize(CallerContext{Principal: "Brahman"}))
	require.ErrorIs(t, a.Authorize(CallerContext{Principal: "someone"}), ErrNotAuthorized)
	require.ErrorIs(t, a.Authorize(CallerContext{}), ErrNotAuthorized)
}

func TestVerifyUserSetsLevel(t *testing.T) {
	a, users, _ := newAuthorityFixture(t)
	u := entity.NewUser("ramu")
	require.NoError(t, users.Create(context.Background(), u, "hash"))

	err := a.VerifyUser(context.Background(), CallerContext{Principal: "Brahman"}, "ramu", rank.Sevak)
	require.NoError(t, err)

	got, err := users.GetByUsername(context.Background(), "ramu")
	require.NoError(t, err)
	require.True(t, got.IsVerified)
	require.Equal(t, rank.Sevak, got.VerificationLevel)
}

func TestVerifyUserRejectsNonAdmin(t *testing.T) {
	a, users, _ := newAuthorityFixture(t)
	u := entity.NewUser("ramu")
	require.NoError(t, users.Create(context.Background(), u, "hash"))

	err := a.VerifyUser(context.Background(), CallerContext{Principal: "ramu"}, "ramu", rank.Swami)
	require.ErrorIs(t, err, ErrNotAuthorized)

	// Target untouched on authorization failure.
	got, err := users.GetByUsername(context.Background(), "ramu")
	require.NoError(t, err)
	require.False(t, got.IsVerified)
	require.Equal(t, rank.NormalUser, got.VerificationLevel)
}

func TestVerifyUserUnknownTarget(t *testing.T) {
	a, _, _ := newAuthorityFixture(t)
	err := a.VerifyUser(context.Background(), CallerContext{Principal: "Brahman"}, "ghost", rank.Sevak)
	require.ErrorIs(t, err, ErrUserNotFound)
}

func TestVerifyCenter(t *testing.T) {
	a, _, centers := newAuthorityFixture(t)
	require.NoError(t, centers.Create(context.Background(), &entity.Center{CenterID: 3, Name: "Sidhbari"}))

	require.ErrorIs(t, a.VerifyCenter(context.Background(), CallerContext{Principal: "x"}, 3), ErrNotAuthorized)
	require.NoError(t, a.VerifyCenter(context.Background(), CallerContext{Principal: "Brahman"}, 3))

	c, err := centers.GetByCenterID(context.Background(), 3)
	require.NoError(t, err)
	require.True(t, c.IsVerified)
}

func TestVerifyCenterUnknownTarget(t *testing.T) {
	a, _, _ := newAuthorityFixture(t)
	err := a.VerifyCenter(context.Background(), CallerContext{Principal: "Brahman"}, 404)
	require.ErrorIs(t, err, ErrCenterNotFound)
}
