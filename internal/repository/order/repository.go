package order

import (
	"context"

	"wifiric-backend/internal/domain"
)

// Repository persists and fetches orders.
type Repository interface {
	Create(ctx context.Context, o domain.Order) (*domain.Order, error)
	Exists(ctx context.Context, orderRef string) (bool, error)
	GetByRef(ctx context.Context, orderRef string) (*domain.Order, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Order, error)
	SetStatus(ctx context.Context, orderRef string, status domain.OrderStatus) error
	SetDiscordChannelName(ctx context.Context, orderRef, channelName string) error
}
