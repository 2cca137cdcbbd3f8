package seed

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

type profileSeed struct {
	ID        string
	Username  string
	DiscordID *string
	Roles     []string
}

// Apply inserts basic seed data for manual testing. It is idempotent via ON CONFLICT.
func Apply(ctx context.Context, pool *pgxpool.Pool) error {
	adminDiscord := "1122334455667788990"
	profiles := []profileSeed{
		{
			ID:        "6f3f1a52-6f0f-4a64-96d4-3f8fb2f0a101",
			Username:  "wifiric-admin",
			DiscordID: &adminDiscord,
			Roles:     []string{"admin"},
		},
		{
			ID:       "9a7c5d0e-1b2c-4d3e-8f90-1a2b3c4d5e02",
			Username: "demo-customer",
		},
	}

	for _, p := range profiles {
		if err := upsertProfile(ctx, pool, p); err != nil {
			return fmt.Errorf("upsert profile %s: %w", p.Username, err)
		}
	}

	if err := ensureSession(ctx, pool, "dev-token-admin", profiles[0].ID); err != nil {
		return fmt.Errorf("ensure admin session: %w", err)
	}
	if err := ensureSession(ctx, pool, "dev-token-customer", profiles[1].ID); err != nil {
		return fmt.Errorf("ensure customer session: %w", err)
	}

	if err := ensureOrder(ctx, pool, profiles[1].ID); err != nil {
		return fmt.Errorf("ensure sample order: %w", err)
	}

	return nil
}

func upsertProfile(ctx context.Context, pool *pgxpool.Pool, p profileSeed) error {
	const q = `
INSERT INTO profiles (id, username, discord_id)
VALUES ($1, $2, $3)
ON CONFLICT (id) DO UPDATE
SET username = EXCLUDED.username,
    discord_id = EXCLUDED.discord_id
`
	if _, err := pool.Exec(ctx, q, p.ID, p.Username, p.DiscordID); err != nil {
		return err
	}

	const roleQ = `
INSERT INTO user_roles (user_id, role)
VALUES ($1, $2)
ON CONFLICT (user_id, role) DO NOTHING
`
	for _, role := range p.Roles {
		if _, err := pool.Exec(ctx, roleQ, p.ID, role); err != nil {
			return err
		}
	}
	return nil
}

func ensureSession(ctx context.Context, pool *pgxpool.Pool, token, userID string) error {
	const q = `
INSERT INTO sessions (token, user_id, expires_at)
VALUES ($1, $2, $3)
ON CONFLICT (token) DO UPDATE SET expires_at = EXCLUDED.expires_at
`
	_, err := pool.Exec(ctx, q, token, userID, time.Now().Add(30*24*time.Hour))
	return err
}

func ensureOrder(ctx context.Context, pool *pgxpool.Pool, userID string) error {
	const q = `
INSERT INTO orders (
    user_id, order_ref, order_type, site_type, site_name, logo_urls,
    primary_color, secondary_color, other_colors, description,
    full_name, email, discord_username, status
) VALUES ($1, $2, 'website', 'vitrine', 'Demo Site', '[]'::jsonb,
    '#3B82F6', '#9CD4E3', '[]'::jsonb, $3,
    'Demo Customer', 'demo@example.com', 'demo-customer', 'pending')
ON CONFLICT (order_ref) DO NOTHING
`
	_, err := pool.Exec(ctx, q, userID, "10000001",
		"A sample showcase website order used for manual testing of listings.")
	return err
}
