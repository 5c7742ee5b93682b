package repository

import (
	"context"

	"github.com/chinmayajanata/backend/internal/domain/entity"
)

// UserRepository is the persistence gateway for the user aggregate. Username
// is the uniqueness key; Create must be a single conditional write that
// returns ErrConflict when the username is taken.
//
// AddAttendedEvent and the other delta methods apply field-level patches in
// one statement each, so concurrent updates to the same user never clobber
// each other. They are idempotent: re-applying a delta that already holds
// reports added=false and changes nothing.
type UserRepository interface {
	Create(ctx context.Context, u *entity.User, passwordHash string) error
	GetByUsername(ctx context.Context, username string) (*entity.User, error)
	GetCredentials(ctx context.Context, username string) (passwordHash string, err error)
	Exists(ctx context.Context, username string) (bool, error)
	Update(ctx context.Context, u *entity.User) error
	Delete(ctx context.Context, username string) error

	AddAttendedEvent(ctx context.Context, username string, eventID int64) (added bool, err error)
	RemoveAttendedEvent(ctx context.Context, username string, eventID int64) (removed bool, err error)
	AddPoints(ctx context.Context, username string, amount int64) error
	SetVerification(ctx context.Context, username string, level int) error
	SetActive(ctx context.Context, username string, active bool) error
	SetCenter(ctx context.Context, username string, centerID int64) error
}
