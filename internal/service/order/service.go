package order

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"wifiric-backend/internal/domain"
	orderrepo "wifiric-backend/internal/repository/order"
)

var (
	// ErrRefTaken is returned when the human-readable order reference is
	// already in use.
	ErrRefTaken = errors.New("order reference already taken")
	// ErrInvalidRef is returned when the order reference is not exactly 8 digits.
	ErrInvalidRef = errors.New("order reference must be exactly 8 digits")
	// ErrValidation marks input the caller can correct.
	ErrValidation = errors.New("invalid input")
)

type validationError struct{ msg string }

func (e validationError) Error() string { return e.msg }
func (e validationError) Unwrap() error { return ErrValidation }

var (
	refPattern   = regexp.MustCompile(`^\d{8}$`)
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
)

// Service handles order creation and lifecycle transitions.
type Service struct {
	repo orderrepo.Repository
}

// New creates a Service.
func New(repo orderrepo.Repository) *Service {
	return &Service{repo: repo}
}

// CreateInput is the flattened order submission payload.
type CreateInput struct {
	UserID               *string  `json:"user_id"`
	OrderRef             string   `json:"order_id"`
	SiteType             string   `json:"site_type"`
	SiteTypeOther        string   `json:"site_type_other"`
	SiteName             string   `json:"site_name"`
	LogoURLs             []string `json:"logo_urls"`
	PrimaryColor         string   `json:"primary_color"`
	SecondaryColor       string   `json:"secondary_color"`
	OtherColors          []string `json:"other_colors"`
	SpecificInstructions string   `json:"specific_instructions"`
	Description          string   `json:"description"`
	Budget               *float64 `json:"budget"`
	BudgetText           string   `json:"budget_text"`
	FullName             string   `json:"full_name"`
	Email                string   `json:"email"`
	DiscordUsername      string   `json:"discord_username"`
}

// Available reports whether the order reference is free. Malformed references
// are rejected before touching the store, so repeated checks on an unused
// reference always agree.
func (s *Service) Available(ctx context.Context, ref string) (bool, error) {
	if !refPattern.MatchString(ref) {
		return false, ErrInvalidRef
	}
	exists, err := s.repo.Exists(ctx, ref)
	if err != nil {
		return false, err
	}
	return !exists, nil
}

// Create validates and persists a new order with status pending. A uniqueness
// conflict on the reference, whether caught by the pre-check or by the
// insert itself, surfaces as ErrRefTaken.
func (s *Service) Create(ctx context.Context, in CreateInput) (*domain.Order, error) {
	if !refPattern.MatchString(in.OrderRef) {
		return nil, ErrInvalidRef
	}
	if strings.TrimSpace(in.SiteType) == "" {
		return nil, validationError{msg: "site type required"}
	}
	siteName := strings.TrimSpace(in.SiteName)
	if len(siteName) < 2 || len(siteName) > 100 {
		return nil, validationError{msg: "site name must be 2-100 characters"}
	}
	description := strings.TrimSpace(in.Description)
	if len(description) < 20 || len(description) > 2000 {
		return nil, validationError{msg: "description must be 20-2000 characters"}
	}
	fullName := strings.TrimSpace(in.FullName)
	if len(fullName) < 2 || len(fullName) > 100 {
		return nil, validationError{msg: "full name must be 2-100 characters"}
	}
	if !emailPattern.MatchString(strings.TrimSpace(in.Email)) {
		return nil, validationError{msg: "invalid email"}
	}
	if in.Budget != nil && *in.Budget < 0 {
		return nil, validationError{msg: "budget must be non-negative"}
	}

	exists, err := s.repo.Exists(ctx, in.OrderRef)
	if err != nil {
		return nil, fmt.Errorf("check reference: %w", err)
	}
	if exists {
		return nil, ErrRefTaken
	}

	logos := make([]string, 0, len(in.LogoURLs))
	for _, u := range in.LogoURLs {
		if strings.TrimSpace(u) != "" {
			logos = append(logos, u)
		}
	}

	o := domain.Order{
		UserID:          in.UserID,
		OrderRef:        in.OrderRef,
		OrderType:       "website",
		SiteType:        in.SiteType,
		SiteName:        siteName,
		LogoURLs:        logos,
		PrimaryColor:    in.PrimaryColor,
		SecondaryColor:  in.SecondaryColor,
		OtherColors:     in.OtherColors,
		Description:     description,
		FullName:        fullName,
		Email:           strings.TrimSpace(in.Email),
		DiscordUsername: in.DiscordUsername,
		Status:          domain.OrderStatusPending,
	}
	if in.SiteType == "other" && in.SiteTypeOther != "" {
		other := in.SiteTypeOther
		o.SiteTypeOther = &other
	}
	if in.SpecificInstructions != "" {
		instr := in.SpecificInstructions
		o.SpecificInstructions = &instr
	}
	o.Budget = in.Budget
	if in.BudgetText != "" {
		bt := in.BudgetText
		o.BudgetText = &bt
	}

	created, err := s.repo.Create(ctx, o)
	if err != nil {
		// The pre-check raced with another insert; report it the same way.
		if errors.Is(err, domain.ErrAlreadyExists) {
			return nil, ErrRefTaken
		}
		return nil, err
	}
	return created, nil
}

// GetByRef fetches a single order by its reference.
func (s *Service) GetByRef(ctx context.Context, ref string) (*domain.Order, error) {
	return s.repo.GetByRef(ctx, ref)
}

// ListByUser returns the caller's orders, newest first.
func (s *Service) ListByUser(ctx context.Context, userID string) ([]domain.Order, error) {
	return s.repo.ListByUser(ctx, userID)
}

var statusTransitions = map[domain.OrderStatus][]domain.OrderStatus{
	domain.OrderStatusPending:    {domain.OrderStatusInProgress, domain.OrderStatusCancelled},
	domain.OrderStatusInProgress: {domain.OrderStatusCompleted, domain.OrderStatusCancelled},
}

// SetStatus moves an order along its lifecycle. Only
// pending -> in_progress -> completed plus cancellation are allowed.
func (s *Service) SetStatus(ctx context.Context, ref string, status domain.OrderStatus) error {
	current, err := s.repo.GetByRef(ctx, ref)
	if err != nil {
		return err
	}
	for _, allowed := range statusTransitions[current.Status] {
		if status == allowed {
			return s.repo.SetStatus(ctx, ref, status)
		}
	}
	return validationError{msg: fmt.Sprintf("cannot transition order from %s to %s", current.Status, status)}
}
