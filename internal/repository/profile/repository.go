package profile

import (
	"context"

	"wifiric-backend/internal/domain"
)

// Repository fetches user profiles and role assignments.
type Repository interface {
	GetByID(ctx context.Context, id string) (*domain.Profile, error)
	HasRole(ctx context.Context, userID, role string) (bool, error)
}
