package order

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"wifiric-backend/internal/domain"
)

type postgresRepo struct {
	pool   *pgxpool.Pool
	logger *log.Logger
}

// NewPostgres returns a Repository backed by Postgres.
func NewPostgres(pool *pgxpool.Pool, logger *log.Logger) Repository {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &postgresRepo{pool: pool, logger: logger}
}

const orderColumns = `id::text, user_id::text, order_ref, order_type, site_type, site_type_other, site_name,
       logo_urls, primary_color, secondary_color, other_colors, specific_instructions,
       description, budget, budget_text, full_name, email, discord_username,
       discord_channel_name, status, created_at`

func (r *postgresRepo) Create(ctx context.Context, o domain.Order) (*domain.Order, error) {
	logosJSON, err := json.Marshal(o.LogoURLs)
	if err != nil {
		return nil, err
	}
	colorsJSON, err := json.Marshal(o.OtherColors)
	if err != nil {
		return nil, err
	}

	const q = `
INSERT INTO orders (
    user_id, order_ref, order_type, site_type, site_type_other, site_name, logo_urls,
    primary_color, secondary_color, other_colors, specific_instructions, description,
    budget, budget_text, full_name, email, discord_username, status
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)
RETURNING ` + orderColumns
	return r.scanOrder(r.pool.QueryRow(
		ctx,
		q,
		o.UserID,
		o.OrderRef,
		o.OrderType,
		o.SiteType,
		o.SiteTypeOther,
		o.SiteName,
		logosJSON,
		o.PrimaryColor,
		o.SecondaryColor,
		colorsJSON,
		o.SpecificInstructions,
		o.Description,
		o.Budget,
		o.BudgetText,
		o.FullName,
		o.Email,
		o.DiscordUsername,
		o.Status,
	))
}

func (r *postgresRepo) Exists(ctx context.Context, orderRef string) (bool, error) {
	const q = `SELECT EXISTS (SELECT 1 FROM orders WHERE order_ref = $1)`
	var exists bool
	if err := r.pool.QueryRow(ctx, q, orderRef).Scan(&exists); err != nil {
		r.logger.Printf("order repo: exists check ref=%s err=%v", orderRef, err)
		return false, err
	}
	return exists, nil
}

func (r *postgresRepo) GetByRef(ctx context.Context, orderRef string) (*domain.Order, error) {
	const q = `
SELECT ` + orderColumns + `
FROM orders
WHERE order_ref = $1
LIMIT 1
`
	return r.scanOrder(r.pool.QueryRow(ctx, q, orderRef))
}

func (r *postgresRepo) ListByUser(ctx context.Context, userID string) ([]domain.Order, error) {
	const q = `
SELECT ` + orderColumns + `
FROM orders
WHERE user_id = $1
ORDER BY created_at DESC
`
	rows, err := r.pool.Query(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []domain.Order
	for rows.Next() {
		o, err := r.scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, *o)
	}
	return orders, rows.Err()
}

func (r *postgresRepo) SetStatus(ctx context.Context, orderRef string, status domain.OrderStatus) error {
	const q = `UPDATE orders SET status = $2 WHERE order_ref = $1`
	tag, err := r.pool.Exec(ctx, q, orderRef, status)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *postgresRepo) SetDiscordChannelName(ctx context.Context, orderRef, channelName string) error {
	const q = `UPDATE orders SET discord_channel_name = $2 WHERE order_ref = $1`
	tag, err := r.pool.Exec(ctx, q, orderRef, channelName)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *postgresRepo) scanOrder(row pgx.Row) (*domain.Order, error) {
	var o domain.Order
	var logosJSON, colorsJSON []byte
	err := row.Scan(
		&o.ID,
		&o.UserID,
		&o.OrderRef,
		&o.OrderType,
		&o.SiteType,
		&o.SiteTypeOther,
		&o.SiteName,
		&logosJSON,
		&o.PrimaryColor,
		&o.SecondaryColor,
		&colorsJSON,
		&o.SpecificInstructions,
		&o.Description,
		&o.Budget,
		&o.BudgetText,
		&o.FullName,
		&o.Email,
		&o.DiscordUsername,
		&o.DiscordChannelName,
		&o.Status,
		&o.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, domain.ErrAlreadyExists
		}
		r.logger.Printf("order repo: scan error=%v", err)
		return nil, err
	}
	if len(logosJSON) > 0 {
		if err := json.Unmarshal(logosJSON, &o.LogoURLs); err != nil {
			r.logger.Printf("order repo: decode logo urls ref=%s err=%v", o.OrderRef, err)
			return nil, err
		}
	}
	if len(colorsJSON) > 0 {
		if err := json.Unmarshal(colorsJSON, &o.OtherColors); err != nil {
			r.logger.Printf("order repo: decode colors ref=%s err=%v", o.OrderRef, err)
			return nil, err
		}
	}
	return &o, nil
}
