package review

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

func (r *postgresRepo) Create(ctx context.Context, rv domain.Review) (*domain.Review, error) {
	const q = `
INSERT INTO reviews (id, user_id, rating, content, project_type)
VALUES ($1, $2, $3, $4, $5)
RETURNING id::text, user_id::text, rating, content, project_type, created_at
`
	return r.scanReview(r.pool.QueryRow(ctx, q, rv.ID, rv.UserID, rv.Rating, rv.Content, rv.ProjectType))
}

func (r *postgresRepo) List(ctx context.Context, limit, offset int) ([]domain.Review, error) {
	const q = `
SELECT id::text, user_id::text, rating, content, project_type, created_at
FROM reviews
ORDER BY created_at DESC
LIMIT $1 OFFSET $2
`
	rows, err := r.pool.Query(ctx, q, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reviews []domain.Review
	for rows.Next() {
		rv, err := r.scanReview(rows)
		if err != nil {
			return nil, err
		}
		reviews = append(reviews, *rv)
	}
	return reviews, rows.Err()
}

func (r *postgresRepo) scanReview(row pgx.Row) (*domain.Review, error) {
	var rv domain.Review
	err := row.Scan(&rv.ID, &rv.UserID, &rv.Rating, &rv.Content, &rv.ProjectType, &rv.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &rv, nil
}
