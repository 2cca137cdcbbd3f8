package contact

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

const messageColumns = `id::text, user_id::text, name, email, subject, message, project_type, discord_channel_name, created_at`

func (r *postgresRepo) Create(ctx context.Context, m domain.ContactMessage) (*domain.ContactMessage, error) {
	const q = `
INSERT INTO contact_messages (id, user_id, name, email, subject, message, project_type)
VALUES ($1, $2, $3, $4, $5, $6, $7)
RETURNING ` + messageColumns
	return r.scanMessage(r.pool.QueryRow(ctx, q, m.ID, m.UserID, m.Name, m.Email, m.Subject, m.Message, m.ProjectType))
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*domain.ContactMessage, error) {
	const q = `
SELECT ` + messageColumns + `
FROM contact_messages
WHERE id = $1
LIMIT 1
`
	return r.scanMessage(r.pool.QueryRow(ctx, q, id))
}

func (r *postgresRepo) List(ctx context.Context, limit, offset int) ([]domain.ContactMessage, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, `SELECT count(*) FROM contact_messages`).Scan(&total); err != nil {
		return nil, 0, err
	}

	const q = `
SELECT ` + messageColumns + `
FROM contact_messages
ORDER BY created_at DESC
LIMIT $1 OFFSET $2
`
	rows, err := r.pool.Query(ctx, q, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var messages []domain.ContactMessage
	for rows.Next() {
		m, err := r.scanMessage(rows)
		if err != nil {
			return nil, 0, err
		}
		messages = append(messages, *m)
	}
	return messages, total, rows.Err()
}

func (r *postgresRepo) ListByUser(ctx context.Context, userID string) ([]domain.ContactMessage, error) {
	const q = `
SELECT ` + messageColumns + `
FROM contact_messages
WHERE user_id = $1
ORDER BY created_at DESC
`
	rows, err := r.pool.Query(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var messages []domain.ContactMessage
	for rows.Next() {
		m, err := r.scanMessage(rows)
		if err != nil {
			return nil, err
		}
		messages = append(messages, *m)
	}
	return messages, rows.Err()
}

func (r *postgresRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM contact_messages WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *postgresRepo) SetDiscordChannelName(ctx context.Context, id, channelName string) error {
	tag, err := r.pool.Exec(ctx, `UPDATE contact_messages SET discord_channel_name = $2 WHERE id = $1`, id, channelName)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *postgresRepo) scanMessage(row pgx.Row) (*domain.ContactMessage, error) {
	var m domain.ContactMessage
	err := row.Scan(
		&m.ID,
		&m.UserID,
		&m.Name,
		&m.Email,
		&m.Subject,
		&m.Message,
		&m.ProjectType,
		&m.DiscordChannelName,
		&m.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &m, nil
}
