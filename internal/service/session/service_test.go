package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"wifiric-backend/internal/domain"
	sessionrepo "wifiric-backend/internal/repository/session"
)

type stubSessions struct {
	sessions    map[string]sessionrepo.Session
	createErrs  []error
	createCalls int
	deleted     []string
}

func (s *stubSessions) Create(_ context.Context, sess sessionrepo.Session) error {
	idx := s.createCalls
	s.createCalls++
	if idx < len(s.createErrs) && s.createErrs[idx] != nil {
		return s.createErrs[idx]
	}
	if s.sessions == nil {
		s.sessions = make(map[string]sessionrepo.Session)
	}
	s.sessions[sess.Token] = sess
	return nil
}

func (s *stubSessions) Get(_ context.Context, token string) (*sessionrepo.Session, error) {
	sess, ok := s.sessions[token]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &sess, nil
}

func (s *stubSessions) Delete(_ context.Context, token string) error {
	s.deleted = append(s.deleted, token)
	delete(s.sessions, token)
	return nil
}

type stubProfiles struct {
	profile *domain.Profile
	getErr  error
	admin   bool
}

func (s *stubProfiles) GetByID(_ context.Context, _ string) (*domain.Profile, error) {
	if s.getErr != nil {
		return nil, s.getErr
	}
	return s.profile, nil
}

func (s *stubProfiles) HasRole(_ context.Context, _, role string) (bool, error) {
	if role != "admin" {
		return false, nil
	}
	return s.admin, nil
}

func testProfile() *domain.Profile {
	discordID := "9876543210"
	return &domain.Profile{ID: "user-1", Username: "tester", DiscordID: &discordID}
}

func TestIssueAndValidate(t *testing.T) {
	sessions := &stubSessions{}
	profiles := &stubProfiles{profile: testProfile(), admin: true}
	svc := New(sessions, profiles, time.Hour)

	token, err := svc.Issue(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if token == "" {
		t.Fatalf("empty token")
	}

	ident, err := svc.Validate(context.Background(), token)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if ident.UserID != "user-1" || ident.Username != "tester" || !ident.Admin {
		t.Fatalf("identity mismatch: %+v", ident)
	}
	if ident.DiscordID == nil || *ident.DiscordID != "9876543210" {
		t.Fatalf("discord id not resolved: %+v", ident.DiscordID)
	}
}

func TestIssueRetriesOnCollision(t *testing.T) {
	sessions := &stubSessions{createErrs: []error{domain.ErrAlreadyExists, domain.ErrAlreadyExists}}
	svc := New(sessions, &stubProfiles{profile: testProfile()}, time.Hour)

	token, err := svc.Issue(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if token == "" {
		t.Fatalf("empty token after retries")
	}
	if sessions.createCalls != 3 {
		t.Fatalf("expected 3 create attempts, got %d", sessions.createCalls)
	}
}

func TestValidateUnknownToken(t *testing.T) {
	svc := New(&stubSessions{}, &stubProfiles{profile: testProfile()}, time.Hour)

	_, err := svc.Validate(context.Background(), "nope")
	if !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestValidateEmptyToken(t *testing.T) {
	svc := New(&stubSessions{}, &stubProfiles{profile: testProfile()}, time.Hour)

	_, err := svc.Validate(context.Background(), "")
	if !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestValidateExpiredTokenIsDeleted(t *testing.T) {
	sessions := &stubSessions{sessions: map[string]sessionrepo.Session{
		"old": {Token: "old", UserID: "user-1", ExpiresAt: time.Now().Add(-time.Minute)},
	}}
	svc := New(sessions, &stubProfiles{profile: testProfile()}, time.Hour)

	_, err := svc.Validate(context.Background(), "old")
	if !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
	if len(sessions.deleted) != 1 || sessions.deleted[0] != "old" {
		t.Fatalf("expired session not deleted: %+v", sessions.deleted)
	}
}

func TestValidateOrphanedSession(t *testing.T) {
	sessions := &stubSessions{sessions: map[string]sessionrepo.Session{
		"tok": {Token: "tok", UserID: "ghost", ExpiresAt: time.Now().Add(time.Hour)},
	}}
	svc := New(sessions, &stubProfiles{getErr: domain.ErrNotFound}, time.Hour)

	_, err := svc.Validate(context.Background(), "tok")
	if !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}
