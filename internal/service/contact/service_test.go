package contact

import (
	"context"
	"errors"
	"testing"

	"wifiric-backend/internal/domain"
	"wifiric-backend/internal/service/notify"
)

type stubRepo struct {
	created      *domain.ContactMessage
	createErr    error
	getResult    *domain.ContactMessage
	getErr       error
	listResult   []domain.ContactMessage
	listTotal    int
	lastLimit    int
	lastOffset   int
	byUser       []domain.ContactMessage
	lastListUser string
	deleted      []string
	deleteErr    error
}

func (s *stubRepo) Create(_ context.Context, m domain.ContactMessage) (*domain.ContactMessage, error) {
	if s.createErr != nil {
		return nil, s.createErr
	}
	s.created = &m
	return &m, nil
}

func (s *stubRepo) GetByID(_ context.Context, _ string) (*domain.ContactMessage, error) {
	return s.getResult, s.getErr
}

func (s *stubRepo) List(_ context.Context, limit, offset int) ([]domain.ContactMessage, int, error) {
	s.lastLimit = limit
	s.lastOffset = offset
	return s.listResult, s.listTotal, nil
}

func (s *stubRepo) ListByUser(_ context.Context, userID string) ([]domain.ContactMessage, error) {
	s.lastListUser = userID
	return s.byUser, nil
}

func (s *stubRepo) Delete(_ context.Context, id string) error {
	if s.deleteErr != nil {
		return s.deleteErr
	}
	s.deleted = append(s.deleted, id)
	return nil
}

func (s *stubRepo) SetDiscordChannelName(_ context.Context, _, _ string) error {
	return nil
}

type stubNotifier struct {
	contactErr   error
	contactCalls []notify.ContactRequest
	deletionErr  error
	deletions    []notify.DeletionRequest
}

func (s *stubNotifier) NotifyContact(_ context.Context, _ notify.Caller, req notify.ContactRequest) (*notify.Result, error) {
	s.contactCalls = append(s.contactCalls, req)
	if s.contactErr != nil {
		return nil, s.contactErr
	}
	return &notify.Result{ChannelID: "chan-1", ChannelName: "✉️"}, nil
}

func (s *stubNotifier) NotifyDeletion(_ context.Context, req notify.DeletionRequest) (*notify.Result, error) {
	s.deletions = append(s.deletions, req)
	if s.deletionErr != nil {
		return nil, s.deletionErr
	}
	return &notify.Result{ChannelID: "chan-2", ChannelName: "🗑️"}, nil
}

func validInput() CreateInput {
	return CreateInput{
		Name:    "Jean Dupont",
		Email:   "jean@example.com",
		Subject: "Question",
		Message: "Bonjour, j'ai une question.",
	}
}

func TestCreateValidation(t *testing.T) {
	svc := New(&stubRepo{}, &stubNotifier{}, nil)

	cases := []struct {
		name   string
		mutate func(*CreateInput)
	}{
		{"missing name", func(in *CreateInput) { in.Name = " " }},
		{"bad email", func(in *CreateInput) { in.Email = "nope" }},
		{"missing subject", func(in *CreateInput) { in.Subject = "" }},
		{"missing message", func(in *CreateInput) { in.Message = "  " }},
	}

	for _, tc := range cases {
		in := validInput()
		tc.mutate(&in)
		_, err := svc.Create(context.Background(), notify.Caller{}, in)
		if !errors.Is(err, ErrValidation) {
			t.Fatalf("%s: expected validation error, got %v", tc.name, err)
		}
	}
}

func TestCreateDefaultsProjectType(t *testing.T) {
	repo := &stubRepo{}
	svc := New(repo, &stubNotifier{}, nil)

	created, err := svc.Create(context.Background(), notify.Caller{}, validInput())
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.ProjectType != "other" {
		t.Fatalf("project type default: got %q", created.ProjectType)
	}
	if created.ID == "" {
		t.Fatalf("created message must get an id")
	}
}

func TestCreateNotifiesWithMessageID(t *testing.T) {
	notifier := &stubNotifier{}
	svc := New(&stubRepo{}, notifier, nil)

	created, err := svc.Create(context.Background(), notify.Caller{Username: "tester"}, validInput())
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if len(notifier.contactCalls) != 1 {
		t.Fatalf("expected one notification, got %d", len(notifier.contactCalls))
	}
	if notifier.contactCalls[0].MessageID != created.ID {
		t.Fatalf("notification message id mismatch")
	}
}

func TestCreateSucceedsWhenNotificationFails(t *testing.T) {
	notifier := &stubNotifier{contactErr: errors.New("discord down")}
	svc := New(&stubRepo{}, notifier, nil)

	created, err := svc.Create(context.Background(), notify.Caller{}, validInput())
	if err != nil {
		t.Fatalf("notification failure must not fail creation: %v", err)
	}
	if created == nil {
		t.Fatalf("missing created message")
	}
}

func TestListPagination(t *testing.T) {
	repo := &stubRepo{listTotal: 42}
	svc := New(repo, &stubNotifier{}, nil)

	page, err := svc.List(context.Background(), 3, 0)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if page.PerPage != 10 {
		t.Fatalf("per page default: got %d", page.PerPage)
	}
	if repo.lastLimit != 10 || repo.lastOffset != 20 {
		t.Fatalf("pagination window: limit=%d offset=%d", repo.lastLimit, repo.lastOffset)
	}
	if page.Total != 42 || page.Page != 3 {
		t.Fatalf("page metadata: %+v", page)
	}

	if _, err := svc.List(context.Background(), 0, 0); err != nil {
		t.Fatalf("list: %v", err)
	}
	if repo.lastOffset != 0 {
		t.Fatalf("page below 1 must clamp to the first page, offset=%d", repo.lastOffset)
	}
}

func TestDeleteNotifiesWithStoredChannelName(t *testing.T) {
	channelName := "✉️・𝟏𝟐𝟑𝟒𝟓𝟔𝟕𝟖"
	repo := &stubRepo{getResult: &domain.ContactMessage{
		ID:                 "0b155f2e-9a1d-4f3c-8d26-0123456789ab",
		DiscordChannelName: &channelName,
	}}
	notifier := &stubNotifier{}
	svc := New(repo, notifier, nil)

	if err := svc.Delete(context.Background(), "0b155f2e-9a1d-4f3c-8d26-0123456789ab"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if len(repo.deleted) != 1 {
		t.Fatalf("message not deleted")
	}
	if len(notifier.deletions) != 1 {
		t.Fatalf("expected one deletion notice, got %d", len(notifier.deletions))
	}
	d := notifier.deletions[0]
	if d.ItemID != "0b155f2e" {
		t.Fatalf("deletion notice must carry the shortened id, got %q", d.ItemID)
	}
	if d.ChannelName != channelName {
		t.Fatalf("deletion notice channel name: got %q", d.ChannelName)
	}
}

func TestListByUserScopesToOwner(t *testing.T) {
	repo := &stubRepo{byUser: []domain.ContactMessage{{ID: "msg-1"}, {ID: "msg-2"}}}
	svc := New(repo, &stubNotifier{}, nil)

	messages, err := svc.ListByUser(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("list by user: %v", err)
	}
	if repo.lastListUser != "user-1" {
		t.Fatalf("query scoped to %q, want user-1", repo.lastListUser)
	}
	if len(messages) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(messages))
	}
}

func TestDeleteOwnDeletesAndNotifies(t *testing.T) {
	owner := "user-1"
	repo := &stubRepo{getResult: &domain.ContactMessage{ID: "msg-1", UserID: &owner}}
	notifier := &stubNotifier{}
	svc := New(repo, notifier, nil)

	if err := svc.DeleteOwn(context.Background(), "user-1", "msg-1"); err != nil {
		t.Fatalf("delete own: %v", err)
	}
	if len(repo.deleted) != 1 {
		t.Fatalf("message not deleted")
	}
	if len(notifier.deletions) != 1 {
		t.Fatalf("expected one deletion notice, got %d", len(notifier.deletions))
	}
}

func TestDeleteOwnRejectsForeignMessage(t *testing.T) {
	owner := "someone-else"
	repo := &stubRepo{getResult: &domain.ContactMessage{ID: "msg-1", UserID: &owner}}
	svc := New(repo, &stubNotifier{}, nil)

	err := svc.DeleteOwn(context.Background(), "user-1", "msg-1")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for foreign message, got %v", err)
	}
	if len(repo.deleted) != 0 {
		t.Fatalf("foreign message must not be deleted")
	}
}

func TestDeleteOwnRejectsAnonymousMessage(t *testing.T) {
	repo := &stubRepo{getResult: &domain.ContactMessage{ID: "msg-1"}}
	svc := New(repo, &stubNotifier{}, nil)

	err := svc.DeleteOwn(context.Background(), "user-1", "msg-1")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for anonymous message, got %v", err)
	}
}

func TestDeleteUnknownMessage(t *testing.T) {
	svc := New(&stubRepo{getErr: domain.ErrNotFound}, &stubNotifier{}, nil)

	err := svc.Delete(context.Background(), "missing")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestDeleteSucceedsWhenNoticeFails(t *testing.T) {
	repo := &stubRepo{getResult: &domain.ContactMessage{ID: "msg-1"}}
	notifier := &stubNotifier{deletionErr: errors.New("discord down")}
	svc := New(repo, notifier, nil)

	if err := svc.Delete(context.Background(), "msg-1"); err != nil {
		t.Fatalf("deletion notice failure must not fail the delete: %v", err)
	}
}
