package profile

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"wifiric-backend/internal/domain"
)

type postgresRepo struct {
	pool *pgxpool.Pool
}

// NewPostgres returns a Repository backed by Postgres.
func NewPostgres(pool *pgxpool.Pool) Repository {
	return &postgresRepo{pool: pool}
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*domain.Profile, error) {
	const q = `
SELECT id::text, username, discord_id, created_at
FROM profiles
WHERE id = $1
LIMIT 1
`
	var p domain.Profile
	err := r.pool.QueryRow(ctx, q, id).Scan(&p.ID, &p.Username, &p.DiscordID, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *postgresRepo) HasRole(ctx context.Context, userID, role string) (bool, error) {
	const q = `SELECT EXISTS (SELECT 1 FROM user_roles WHERE user_id = $1 AND role = $2)`
	var has bool
	if err := r.pool.QueryRow(ctx, q, userID, role).Scan(&has); err != nil {
		return false, err
	}
	return has, nil
}
