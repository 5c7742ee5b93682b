package repository

import (
	"context"

	"github.com/chinmayajanata/backend/internal/domain/entity"
)

// CenterRepository is the persistence gateway for the center aggregate,
// keyed by the allocated center id. Create is the atomic conditional write
// the identity allocator builds on: it returns ErrConflict when the id is
// already taken, and the caller retries with a fresh candidate.
type CenterRepository interface {
	Create(ctx context.Context, c *entity.Center) error
	GetByCenterID(ctx context.Context, centerID int64) (*entity.Center, error)
	Exists(ctx context.Context, centerID int64) (bool, error)
	List(ctx context.Context) ([]*entity.Center, error)
	Update(ctx context.Context, c *entity.Center) error
	Delete(ctx context.Context, centerID int64) error

	SetVerified(ctx context.Context, centerID int64) error
	AddMembers(ctx context.Context, centerID int64, delta int64) error
}
