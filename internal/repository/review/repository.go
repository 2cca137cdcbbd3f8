package review

import (
	"context"

	"wifiric-backend/internal/domain"
)

// Repository persists and fetches reviews.
type Repository interface {
	Create(ctx context.Context, rv domain.Review) (*domain.Review, error)
	List(ctx context.Context, limit, offset int) ([]domain.Review, error)
}
