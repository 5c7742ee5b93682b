package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/chinmayajanata/backend/internal/domain/entity"
	"github.com/chinmayajanata/backend/internal/domain/repository"
)

// UserRepository implements the user gateway on Postgres. The username
// uniqueness constraint makes Create a single conditional write, and every
// relationship delta is one statement so concurrent writers cannot clobber
// each other's changes.
type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

func (r *UserRepository) Create(ctx context.Context, u *entity.User, passwordHash string) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO users (username, email, password_hash, center_id, points, is_verified, verification_level, is_active, avatar_url, events)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (username) DO NOTHING
		RETURNING id
	`, u.Username, u.Email, passwordHash, u.Center, u.Points, u.IsVerified, u.VerificationLevel, u.IsActive, u.AvatarURL, u.Events)

	if err := row.Scan(&u.ID); err != nil {
		// No row back from a DO NOTHING insert means the username is taken.
		mapped := mapError(err)
		if errors.Is(mapped, repository.ErrNotFound) {
			return repository.ErrConflict
		}
		return mapped
	}
	return nil
}

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*entity.User, error) {
	u := &entity.User{}
	row := r.pool.QueryRow(ctx, `
		SELECT id, username, email, center_id, points, is_verified, verification_level, is_active, avatar_url, events
		FROM users
		WHERE username = $1
	`, username)
	if err := row.Scan(&u.ID, &u.Username, &u.Email, &u.Center, &u.Points, &u.IsVerified,
		&u.VerificationLevel, &u.IsActive, &u.AvatarURL, &u.Events); err != nil {
		return nil, mapError(err)
	}
	if u.Events == nil {
		u.Events = []int64{}
	}
	return u, nil
}

func (r *UserRepository) GetCredentials(ctx context.Context, username string) (string, error) {
	var hash string
	row := r.pool.QueryRow(ctx, `SELECT password_hash FROM users WHERE username = $1`, username)
	if err := row.Scan(&hash); err != nil {
		return "", mapError(err)
	}
	return hash, nil
}

func (r *UserRepository) Exists(ctx context.Context, username string) (bool, error) {
	var exists bool
	row := r.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM users WHERE username = $1)`, username)
	if err := row.Scan(&exists); err != nil {
		return false, mapError(err)
	}
	return exists, nil
}

func (r *UserRepository) Update(ctx context.Context, u *entity.User) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE users
		SET center_id = $2, points = $3, is_verified = $4, verification_level = $5,
		    is_active = $6, avatar_url = $7, updated_at = now()
		WHERE username = $1
	`, u.Username, u.Center, u.Points, u.IsVerified, u.VerificationLevel, u.IsActive, u.AvatarURL)
	if err != nil {
		return mapError(err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *UserRepository) Delete(ctx context.Context, username string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM users WHERE username = $1`, username)
	if err != nil {
		return mapError(err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// AddAttendedEvent appends the event id to the user's set unless it is
// already present. The append and the membership check happen in one
// statement, so two concurrent attaches for different events both land.
func (r *UserRepository) AddAttendedEvent(ctx context.Context, username string, eventID int64) (bool, error) {
	tag, err := r.pool.Exec(ctx, `
		UPDATE users
		SET events = array_append(events, $2), updated_at = now()
		WHERE username = $1 AND NOT ($2 = ANY(events))
	`, username, eventID)
	if err != nil {
		return false, mapError(err)
	}
	if tag.RowsAffected() > 0 {
		return true, nil
	}
	// Zero rows: either the event was already attached or the user is gone.
	exists, err := r.Exists(ctx, username)
	if err != nil {
		return false, err
	}
	if !exists {
		return false, repository.ErrNotFound
	}
	return false, nil
}

func (r *UserRepository) RemoveAttendedEvent(ctx context.Context, username string, eventID int64) (bool, error) {
	tag, err := r.pool.Exec(ctx, `
		UPDATE users
		SET events = array_remove(events, $2), updated_at = now()
		WHERE username = $1 AND $2 = ANY(events)
	`, username, eventID)
	if err != nil {
		return false, mapError(err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *UserRepository) AddPoints(ctx context.Context, username string, amount int64) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE users SET points = points + $2, updated_at = now() WHERE username = $1
	`, username, amount)
	if err != nil {
		return mapError(err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *UserRepository) SetVerification(ctx context.Context, username string, level int) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE users SET verification_level = $2, is_verified = TRUE, updated_at = now()
		WHERE username = $1
	`, username, level)
	if err != nil {
		return mapError(err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *UserRepository) SetActive(ctx context.Context, username string, active bool) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE users SET is_active = $2, updated_at = now() WHERE username = $1
	`, username, active)
	if err != nil {
		return mapError(err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *UserRepository) SetCenter(ctx context.Context, username string, centerID int64) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE users SET center_id = $2, updated_at = now() WHERE username = $1
	`, username, centerID)
	if err != nil {
		return mapError(err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

var _ repository.UserRepository = (*UserRepository)(nil)
