package contact

import (
	"context"
	"errors"
	"io"
	"log"
	"regexp"
	"strings"

	"github.com/google/uuid"

	"wifiric-backend/internal/domain"
	contactrepo "wifiric-backend/internal/repository/contact"
	"wifiric-backend/internal/service/notify"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ErrValidation marks input the caller can correct.
var ErrValidation = errors.New("invalid input")

type validationError struct{ msg string }

func (e validationError) Error() string { return e.msg }
func (e validationError) Unwrap() error { return ErrValidation }

// Notifier announces contact events on the chat platform.
type Notifier interface {
	NotifyContact(ctx context.Context, caller notify.Caller, req notify.ContactRequest) (*notify.Result, error)
	NotifyDeletion(ctx context.Context, req notify.DeletionRequest) (*notify.Result, error)
}

// Service handles contact messages: creation, admin listing and deletion.
type Service struct {
	repo     contactrepo.Repository
	notifier Notifier
	logger   *log.Logger
}

// New creates a Service.
func New(repo contactrepo.Repository, notifier Notifier, logger *log.Logger) *Service {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Service{repo: repo, notifier: notifier, logger: logger}
}

// CreateInput mirrors the contact form payload.
type CreateInput struct {
	UserID      *string `json:"-"`
	Name        string  `json:"name"`
	Email       string  `json:"email"`
	Subject     string  `json:"subject"`
	Message     string  `json:"message"`
	ProjectType string  `json:"project_type"`
}

// Create validates and persists a contact message, then routes it to the
// notifier. Notification failure never fails the creation.
func (s *Service) Create(ctx context.Context, caller notify.Caller, in CreateInput) (*domain.ContactMessage, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, validationError{msg: "name required"}
	}
	if !emailPattern.MatchString(strings.TrimSpace(in.Email)) {
		return nil, validationError{msg: "invalid email"}
	}
	if strings.TrimSpace(in.Subject) == "" {
		return nil, validationError{msg: "subject required"}
	}
	if strings.TrimSpace(in.Message) == "" {
		return nil, validationError{msg: "message required"}
	}
	projectType := in.ProjectType
	if projectType == "" {
		projectType = "other"
	}

	created, err := s.repo.Create(ctx, domain.ContactMessage{
		ID:          uuid.NewString(),
		UserID:      in.UserID,
		Name:        strings.TrimSpace(in.Name),
		Email:       strings.TrimSpace(in.Email),
		Subject:     strings.TrimSpace(in.Subject),
		Message:     in.Message,
		ProjectType: projectType,
	})
	if err != nil {
		return nil, err
	}

	if _, err := s.notifier.NotifyContact(ctx, caller, notify.ContactRequest{
		MessageID:   created.ID,
		Name:        created.Name,
		Email:       created.Email,
		Subject:     created.Subject,
		Message:     created.Message,
		ProjectType: created.ProjectType,
	}); err != nil {
		s.logger.Printf("contact: notification for message %s failed: %v", created.ID, err)
	}

	return created, nil
}

// Page is one page of contact messages for the admin panel.
type Page struct {
	Messages []domain.ContactMessage `json:"messages"`
	Total    int                     `json:"total"`
	Page     int                     `json:"page"`
	PerPage  int                     `json:"perPage"`
}

// List returns contact messages newest first, paginated.
func (s *Service) List(ctx context.Context, page, perPage int) (*Page, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 10
	}
	messages, total, err := s.repo.List(ctx, perPage, (page-1)*perPage)
	if err != nil {
		return nil, err
	}
	return &Page{Messages: messages, Total: total, Page: page, PerPage: perPage}, nil
}

// ListByUser returns the caller's own contact messages, newest first.
func (s *Service) ListByUser(ctx context.Context, userID string) ([]domain.ContactMessage, error) {
	return s.repo.ListByUser(ctx, userID)
}

// Delete removes a contact message and posts a best-effort deletion notice
// mentioning the channel the message was originally routed to.
func (s *Service) Delete(ctx context.Context, id string) error {
	msg, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	return s.deleteMessage(ctx, msg)
}

// DeleteOwn removes a contact message only if it belongs to userID. A message
// owned by someone else is reported as not found.
func (s *Service) DeleteOwn(ctx context.Context, userID, id string) error {
	msg, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if msg.UserID == nil || *msg.UserID != userID {
		return domain.ErrNotFound
	}
	return s.deleteMessage(ctx, msg)
}

func (s *Service) deleteMessage(ctx context.Context, msg *domain.ContactMessage) error {
	id := msg.ID
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	channelName := ""
	if msg.DiscordChannelName != nil {
		channelName = *msg.DiscordChannelName
	}
	shortID := id
	if len(shortID) > 8 {
		shortID = shortID[:8]
	}
	if _, err := s.notifier.NotifyDeletion(ctx, notify.DeletionRequest{
		Type:        "contact",
		ItemID:      shortID,
		ChannelName: channelName,
	}); err != nil {
		s.logger.Printf("contact: deletion notice for message %s failed: %v", id, err)
	}
	return nil
}
