package order

import (
	"context"
	"errors"
	"log"
	"os"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"

	"wifiric-backend/internal/domain"
	"wifiric-backend/internal/migrate"
)

func TestPostgres_OrderLifecycle(t *testing.T) {
	ctx := context.Background()
	pool := testPool(ctx, t)
	defer pool.Close()

	if err := migrate.Apply(ctx, pool); err != nil {
		t.Fatalf("apply migrations: %v", err)
	}
	resetTables(ctx, t, pool)

	var userID string
	err := pool.QueryRow(ctx, `INSERT INTO profiles (username) VALUES ('tester') RETURNING id::text`).Scan(&userID)
	if err != nil {
		t.Fatalf("insert profile: %v", err)
	}

	repo := NewPostgres(pool, log.New(os.Stdout, "[test] ", log.LstdFlags))

	created, err := repo.Create(ctx, domain.Order{
		UserID:          &userID,
		OrderRef:        "12345678",
		OrderType:       "website",
		SiteType:        "vitrine",
		SiteName:        "My Site",
		LogoURLs:        []string{"https://example.com/logo.png"},
		PrimaryColor:    "#3B82F6",
		SecondaryColor:  "#9CD4E3",
		OtherColors:     []string{"#FFFFFF"},
		Description:     "A proper description with more than twenty characters.",
		FullName:        "Jean Dupont",
		Email:           "jean@example.com",
		DiscordUsername: "tester",
		Status:          domain.OrderStatusPending,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.ID == "" || created.OrderRef != "12345678" {
		t.Fatalf("unexpected order %+v", created)
	}
	if len(created.LogoURLs) != 1 || len(created.OtherColors) != 1 {
		t.Fatalf("json columns not round-tripped: %+v", created)
	}

	exists, err := repo.Exists(ctx, "12345678")
	if err != nil || !exists {
		t.Fatalf("Exists: exists=%v err=%v", exists, err)
	}

	_, err = repo.Create(ctx, domain.Order{
		OrderRef:    "12345678",
		OrderType:   "website",
		SiteType:    "vitrine",
		SiteName:    "Other Site",
		Description: "Another description that is long enough for the column.",
		FullName:    "Someone Else",
		Email:       "else@example.com",
	})
	if !errors.Is(err, domain.ErrAlreadyExists) {
		t.Fatalf("duplicate ref: expected ErrAlreadyExists, got %v", err)
	}

	fetched, err := repo.GetByRef(ctx, "12345678")
	if err != nil {
		t.Fatalf("GetByRef: %v", err)
	}
	if fetched.ID != created.ID {
		t.Fatalf("fetched mismatch %+v", fetched)
	}

	if err := repo.SetStatus(ctx, "12345678", domain.OrderStatusInProgress); err != nil {
		t.Fatalf("SetStatus: %v", err)
	}
	if err := repo.SetDiscordChannelName(ctx, "12345678", "📦・𝟏𝟐𝟑𝟒𝟓𝟔𝟕𝟖"); err != nil {
		t.Fatalf("SetDiscordChannelName: %v", err)
	}

	listed, err := repo.ListByUser(ctx, userID)
	if err != nil {
		t.Fatalf("ListByUser: %v", err)
	}
	if len(listed) != 1 || listed[0].Status != domain.OrderStatusInProgress {
		t.Fatalf("listed orders: %+v", listed)
	}
	if listed[0].DiscordChannelName == nil {
		t.Fatalf("channel name not persisted")
	}

	if err := repo.SetStatus(ctx, "00000000", domain.OrderStatusInProgress); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("SetStatus unknown ref: expected ErrNotFound, got %v", err)
	}
}

func testPool(ctx context.Context, t *testing.T) *pgxpool.Pool {
	t.Helper()
	dsn := os.Getenv("TEST_DB_DSN")
	if dsn == "" {
		t.Skip("TEST_DB_DSN not set")
	}
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		t.Fatalf("connect db: %v", err)
	}
	if err := pool.Ping(ctx); err != nil {
		t.Fatalf("ping db: %v", err)
	}
	return pool
}

func resetTables(ctx context.Context, t *testing.T, pool *pgxpool.Pool) {
	t.Helper()
	if _, err := pool.Exec(ctx, `TRUNCATE reviews, contact_messages, orders, sessions, user_roles, profiles RESTART IDENTITY CASCADE`); err != nil {
		t.Fatalf("truncate tables: %v", err)
	}
}
