package review

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"wifiric-backend/internal/domain"
	reviewrepo "wifiric-backend/internal/repository/review"
)

// ErrValidation marks input the caller can correct.
var ErrValidation = errors.New("invalid input")

type validationError struct{ msg string }

func (e validationError) Error() string { return e.msg }
func (e validationError) Unwrap() error { return ErrValidation }

// Service handles customer reviews.
type Service struct {
	repo reviewrepo.Repository
}

// New creates a Service.
func New(repo reviewrepo.Repository) *Service {
	return &Service{repo: repo}
}

// CreateInput mirrors the review form payload.
type CreateInput struct {
	Rating      int    `json:"rating"`
	Content     string `json:"content"`
	ProjectType string `json:"project_type"`
}

// Create validates and persists a review for the given user.
func (s *Service) Create(ctx context.Context, userID string, in CreateInput) (*domain.Review, error) {
	if in.Rating < 1 || in.Rating > 5 {
		return nil, validationError{msg: "rating must be between 1 and 5"}
	}
	content := strings.TrimSpace(in.Content)
	if content == "" {
		return nil, validationError{msg: "content required"}
	}

	rv := domain.Review{
		ID:      uuid.NewString(),
		UserID:  userID,
		Rating:  in.Rating,
		Content: content,
	}
	if pt := strings.TrimSpace(in.ProjectType); pt != "" {
		rv.ProjectType = &pt
	}
	return s.repo.Create(ctx, rv)
}

// List returns reviews newest first.
func (s *Service) List(ctx context.Context, limit, offset int) ([]domain.Review, error) {
	if limit < 1 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return s.repo.List(ctx, limit, offset)
}
