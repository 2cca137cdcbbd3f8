package session

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"time"

	"wifiric-backend/internal/domain"
	profilerepo "wifiric-backend/internal/repository/profile"
	sessionrepo "wifiric-backend/internal/repository/session"
)

// ErrInvalidToken indicates the provided bearer credential could not be validated.
var ErrInvalidToken = errors.New("invalid token")

// Identity is the resolved authenticated caller.
type Identity struct {
	UserID    string
	Username  string
	DiscordID *string
	Admin     bool
}

// Service issues and validates bearer sessions bound to Discord-linked profiles.
type Service struct {
	sessions sessionrepo.Repository
	profiles profilerepo.Repository
	ttl      time.Duration
}

// New creates a Service with the given session lifetime.
func New(sessions sessionrepo.Repository, profiles profilerepo.Repository, ttl time.Duration) *Service {
	if ttl <= 0 {
		ttl = 48 * time.Hour
	}
	return &Service{
		sessions: sessions,
		profiles: profiles,
		ttl:      ttl,
	}
}

// Issue creates a new session token for the given user.
func (s *Service) Issue(ctx context.Context, userID string) (string, error) {
	expiresAt := time.Now().Add(s.ttl)
	for i := 0; i < 5; i++ {
		token, err := randomToken()
		if err != nil {
			return "", err
		}
		err = s.sessions.Create(ctx, sessionrepo.Session{
			Token:     token,
			UserID:    userID,
			ExpiresAt: expiresAt,
		})
		if err == nil {
			return token, nil
		}
		if errors.Is(err, domain.ErrAlreadyExists) {
			continue
		}
		return "", err
	}
	return "", errors.New("token collision")
}

// Validate resolves the identity behind a bearer token. Expired sessions are
// deleted on sight.
func (s *Service) Validate(ctx context.Context, token string) (*Identity, error) {
	if token == "" {
		return nil, ErrInvalidToken
	}
	sess, err := s.sessions.Get(ctx, token)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, err
	}
	if time.Now().After(sess.ExpiresAt) {
		_ = s.sessions.Delete(ctx, token)
		return nil, ErrInvalidToken
	}

	p, err := s.profiles.GetByID(ctx, sess.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, err
	}
	admin, err := s.profiles.HasRole(ctx, sess.UserID, "admin")
	if err != nil {
		return nil, err
	}

	return &Identity{
		UserID:    p.ID,
		Username:  p.Username,
		DiscordID: p.DiscordID,
		Admin:     admin,
	}, nil
}

func randomToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
