package postgres

import (
	"context"
	"encoding/json"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/chinmayajanata/backend/internal/domain/entity"
	"github.com/chinmayajanata/backend/internal/domain/repository"
)

// EventRepository implements the event gateway on Postgres. Endorsers are
// stored as a JSONB array; attendees as a text array kept in lockstep with
// the people_attending counter inside single conditional statements.
type EventRepository struct {
	pool *pgxpool.Pool
}

func NewEventRepository(pool *pgxpool.Pool) *EventRepository {
	return &EventRepository{pool: pool}
}

const eventColumns = `id, latitude, longitude, event_date, category, center_id, endorsers, tier, people_attending, users_attending, description`

func scanEvent(row pgx.Row) (*entity.Event, error) {
	e := &entity.Event{}
	var endorsers []byte
	if err := row.Scan(&e.ID, &e.Location.Latitude, &e.Location.Longitude, &e.Date, &e.Category, &e.Center,
		&endorsers, &e.Tier, &e.PeopleAttending, &e.UsersAttending, &e.Description); err != nil {
		return nil, mapError(err)
	}
	if err := json.Unmarshal(endorsers, &e.Endorsers); err != nil {
		return nil, err
	}
	if e.UsersAttending == nil {
		e.UsersAttending = []string{}
	}
	if e.Endorsers == nil {
		e.Endorsers = []entity.Endorser{}
	}
	return e, nil
}

// Create reserves the event id with a conditional insert; a conflict sends
// the allocator back for a new candidate.
func (r *EventRepository) Create(ctx context.Context, e *entity.Event) error {
	endorsers, err := json.Marshal(e.Endorsers)
	if err != nil {
		return err
	}
	tag, err := r.pool.Exec(ctx, `
		INSERT INTO events (id, latitude, longitude, event_date, category, center_id, endorsers, tier, people_attending, users_attending, description)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (id) DO NOTHING
	`, e.ID, e.Location.Latitude, e.Location.Longitude, e.Date, e.Category, e.Center,
		endorsers, e.Tier, e.PeopleAttending, e.UsersAttending, e.Description)
	if err != nil {
		return mapError(err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrConflict
	}
	return nil
}

func (r *EventRepository) GetByID(ctx context.Context, id int64) (*entity.Event, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+eventColumns+` FROM events WHERE id = $1`, id)
	return scanEvent(row)
}

func (r *EventRepository) Exists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	row := r.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM events WHERE id = $1)`, id)
	if err := row.Scan(&exists); err != nil {
		return false, mapError(err)
	}
	return exists, nil
}

func (r *EventRepository) ListByCenter(ctx context.Context, centerID int64) ([]*entity.Event, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+eventColumns+` FROM events WHERE center_id = $1 ORDER BY event_date
	`, centerID)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	events := []*entity.Event{}
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError(err)
	}
	return events, nil
}

// Update rewrites the mutable descriptive fields. Relationship fields
// (attendees, endorsers, tier) go through their delta methods instead, so a
// stale read here cannot clobber a concurrent attach.
func (r *EventRepository) Update(ctx context.Context, e *entity.Event) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE events
		SET latitude = $2, longitude = $3, event_date = $4, description = $5, updated_at = now()
		WHERE id = $1
	`, e.ID, e.Location.Latitude, e.Location.Longitude, e.Date, e.Description)
	if err != nil {
		return mapError(err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *EventRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM events WHERE id = $1`, id)
	if err != nil {
		return mapError(err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// AddAttendee appends the username and bumps the counter in one statement,
// guarded by the membership check, so peopleAttending always equals the
// attendee list length.
func (r *EventRepository) AddAttendee(ctx context.Context, eventID int64, username string) (bool, error) {
	tag, err := r.pool.Exec(ctx, `
		UPDATE events
		SET users_attending = array_append(users_attending, $2),
		    people_attending = people_attending + 1,
		    updated_at = now()
		WHERE id = $1 AND NOT ($2 = ANY(users_attending))
	`, eventID, username)
	if err != nil {
		return false, mapError(err)
	}
	if tag.RowsAffected() > 0 {
		return true, nil
	}
	exists, err := r.Exists(ctx, eventID)
	if err != nil {
		return false, err
	}
	if !exists {
		return false, repository.ErrNotFound
	}
	return false, nil
}

func (r *EventRepository) RemoveAttendee(ctx context.Context, eventID int64, username string) (bool, error) {
	tag, err := r.pool.Exec(ctx, `
		UPDATE events
		SET users_attending = array_remove(users_attending, $2),
		    people_attending = GREATEST(people_attending - 1, 0),
		    updated_at = now()
		WHERE id = $1 AND $2 = ANY(users_attending)
	`, eventID, username)
	if err != nil {
		return false, mapError(err)
	}
	return tag.RowsAffected() > 0, nil
}

// AddEndorser appends to the JSONB endorser list unless the username already
// endorses the event.
func (r *EventRepository) AddEndorser(ctx context.Context, eventID int64, endorser entity.Endorser) (bool, error) {
	doc, err := json.Marshal(endorser)
	if err != nil {
		return false, err
	}
	tag, err := r.pool.Exec(ctx, `
		UPDATE events
		SET endorsers = endorsers || $2::jsonb, updated_at = now()
		WHERE id = $1 AND NOT EXISTS (
			SELECT 1 FROM jsonb_array_elements(endorsers) AS existing
			WHERE existing->>'username' = $3
		)
	`, eventID, doc, endorser.Username)
	if err != nil {
		return false, mapError(err)
	}
	if tag.RowsAffected() > 0 {
		return true, nil
	}
	exists, err := r.Exists(ctx, eventID)
	if err != nil {
		return false, err
	}
	if !exists {
		return false, repository.ErrNotFound
	}
	return false, nil
}

func (r *EventRepository) SetTier(ctx context.Context, eventID int64, tier float64) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE events SET tier = $2, updated_at = now() WHERE id = $1
	`, eventID, tier)
	if err != nil {
		return mapError(err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *EventRepository) SetDescription(ctx context.Context, eventID int64, description string) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE events SET description = $2, updated_at = now() WHERE id = $1
	`, eventID, description)
	if err != nil {
		return mapError(err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

var _ repository.EventRepository = (*EventRepository)(nil)
