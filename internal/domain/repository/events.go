package repository

import (
	"context"

	"github.com/chinmayajanata/backend/internal/domain/entity"
)

// EventRepository is the persistence gateway for the event aggregate.
//
// AddAttendee appends the username and bumps the attendance counter in one
// conditional statement, keeping peopleAttending equal to the attendee list
// length under concurrent writers. AddEndorser is the same shape for the
// endorser list. SetTier stores a recomputed score; the tier is never
// written any other way.
type EventRepository interface {
	Create(ctx context.Context, e *entity.Event) error
	GetByID(ctx context.Context, id int64) (*entity.Event, error)
	Exists(ctx context.Context, id int64) (bool, error)
	ListByCenter(ctx context.Context, centerID int64) ([]*entity.Event, error)
	Update(ctx context.Context, e *entity.Event) error
	Delete(ctx context.Context, id int64) error

	AddAttendee(ctx context.Context, eventID int64, username string) (added bool, err error)
	RemoveAttendee(ctx context.Context, eventID int64, username string) (removed bool, err error)
	AddEndorser(ctx context.Context, eventID int64, endorser entity.Endorser) (added bool, err error)
	SetTier(ctx context.Context, eventID int64, tier float64) error
	SetDescription(ctx context.Context, eventID int64, description string) error
}
