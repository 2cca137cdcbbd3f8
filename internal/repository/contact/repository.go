package contact

import (
	"context"

	"wifiric-backend/internal/domain"
)

// Repository persists and fetches contact messages.
type Repository interface {
	Create(ctx context.Context, m domain.ContactMessage) (*domain.ContactMessage, error)
	GetByID(ctx context.Context, id string) (*domain.ContactMessage, error)
	List(ctx context.Context, limit, offset int) ([]domain.ContactMessage, int, error)
	ListByUser(ctx context.Context, userID string) ([]domain.ContactMessage, error)
	Delete(ctx context.Context, id string) error
	SetDiscordChannelName(ctx context.Context, id, channelName string) error
}
