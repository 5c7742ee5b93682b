package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/chinmayajanata/backend/internal/domain/entity"
	"github.com/chinmayajanata/backend/internal/domain/repository"
)

// CenterRepository implements the center gateway on Postgres, keyed by the
// allocated center id.
type CenterRepository struct {
	pool *pgxpool.Pool
}

func NewCenterRepository(pool *pgxpool.Pool) *CenterRepository {
	return &CenterRepository{pool: pool}
}

// Create reserves the center id with a conditional insert. A zero row count
// means another writer holds the id; the allocator retries on the conflict.
func (r *CenterRepository) Create(ctx context.Context, c *entity.Center) error {
	tag, err := r.pool.Exec(ctx, `
		INSERT INTO centers (center_id, name, latitude, longitude, member_count, is_verified)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (center_id) DO NOTHING
	`, c.CenterID, c.Name, c.Location.Latitude, c.Location.Longitude, c.MemberCount, c.IsVerified)
	if err != nil {
		return mapError(err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrConflict
	}
	return nil
}

func (r *CenterRepository) GetByCenterID(ctx context.Context, centerID int64) (*entity.Center, error) {
	c := &entity.Center{}
	row := r.pool.QueryRow(ctx, `
		SELECT center_id, name, latitude, longitude, member_count, is_verified
		FROM centers
		WHERE center_id = $1
	`, centerID)
	if err := row.Scan(&c.CenterID, &c.Name, &c.Location.Latitude, &c.Location.Longitude,
		&c.MemberCount, &c.IsVerified); err != nil {
		return nil, mapError(err)
	}
	return c, nil
}

func (r *CenterRepository) Exists(ctx context.Context, centerID int64) (bool, error) {
	var exists bool
	row := r.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM centers WHERE center_id = $1)`, centerID)
	if err := row.Scan(&exists); err != nil {
		return false, mapError(err)
	}
	return exists, nil
}

func (r *CenterRepository) List(ctx context.Context) ([]*entity.Center, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT center_id, name, latitude, longitude, member_count, is_verified
		FROM centers
		ORDER BY center_id
	`)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	centers := []*entity.Center{}
	for rows.Next() {
		c := &entity.Center{}
		if err := rows.Scan(&c.CenterID, &c.Name, &c.Location.Latitude, &c.Location.Longitude,
			&c.MemberCount, &c.IsVerified); err != nil {
			return nil, mapError(err)
		}
		centers = append(centers, c)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError(err)
	}
	return centers, nil
}

func (r *CenterRepository) Update(ctx context.Context, c *entity.Center) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE centers
		SET name = $2, latitude = $3, longitude = $4, member_count = $5, is_verified = $6, updated_at = now()
		WHERE center_id = $1
	`, c.CenterID, c.Name, c.Location.Latitude, c.Location.Longitude, c.MemberCount, c.IsVerified)
	if err != nil {
		return mapError(err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *CenterRepository) Delete(ctx context.Context, centerID int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM centers WHERE center_id = $1`, centerID)
	if err != nil {
		return mapError(err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *CenterRepository) SetVerified(ctx context.Context, centerID int64) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE centers SET is_verified = TRUE, updated_at = now() WHERE center_id = $1
	`, centerID)
	if err != nil {
		return mapError(err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// AddMembers adjusts the membership counter as a delta so concurrent joins
// never lose an increment. The counter is clamped at zero.
func (r *CenterRepository) AddMembers(ctx context.Context, centerID int64, delta int64) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE centers
		SET member_count = GREATEST(member_count + $2, 0), updated_at = now()
		WHERE center_id = $1
	`, centerID, delta)
	if err != nil {
		return mapError(err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

var _ repository.CenterRepository = (*CenterRepository)(nil)
