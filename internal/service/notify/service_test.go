package notify

import (
	"context"
	"errors"
	"strings"
	"testing"

	"wifiric-backend/internal/discord"
)

type stubDiscord struct {
	channel         *discord.Channel
	channelErr      error
	memberExists    bool
	memberErr       error
	createdChannel  *discord.Channel
	createErr       error
	sendErr         error
	lastCreateInput discord.CreateChannelInput
	lastCreateGuild string
	lastSendChannel string
	lastSendEmbed   discord.Embed
	sendCalls       int
	memberLookups   int
}

func (s *stubDiscord) Channel(_ context.Context, _ string) (*discord.Channel, error) {
	return s.channel, s.channelErr
}

func (s *stubDiscord) GuildMemberExists(_ context.Context, _, _ string) (bool, error) {
	s.memberLookups++
	return s.memberExists, s.memberErr
}

func (s *stubDiscord) CreateGuildChannel(_ context.Context, guildID string, in discord.CreateChannelInput) (*discord.Channel, error) {
	s.lastCreateGuild = guildID
	s.lastCreateInput = in
	return s.createdChannel, s.createErr
}

func (s *stubDiscord) SendEmbed(_ context.Context, channelID string, embed discord.Embed) error {
	s.sendCalls++
	s.lastSendChannel = channelID
	s.lastSendEmbed = embed
	return s.sendErr
}

type stubOrderWriter struct {
	lastRef     string
	lastChannel string
	err         error
}

func (s *stubOrderWriter) SetDiscordChannelName(_ context.Context, orderRef, channelName string) error {
	s.lastRef = orderRef
	s.lastChannel = channelName
	return s.err
}

type stubContactWriter struct {
	lastID      string
	lastChannel string
	err         error
}

func (s *stubContactWriter) SetDiscordChannelName(_ context.Context, id, channelName string) error {
	s.lastID = id
	s.lastChannel = channelName
	return s.err
}

func newStubAPI() *stubDiscord {
	return &stubDiscord{
		channel:        &discord.Channel{ID: "cat-1", GuildID: "guild-1"},
		createdChannel: &discord.Channel{ID: "chan-1", GuildID: "guild-1"},
	}
}

func orderReq() OrderRequest {
	return OrderRequest{
		OrderRef:    "12345678",
		SiteType:    "vitrine",
		SiteName:    "My Site",
		Description: "A description long enough to be realistic.",
		FullName:    "Jean Dupont",
		Email:       "jean@example.com",
	}
}

func TestNotifyOrderCreatesPrivateChannel(t *testing.T) {
	api := newStubAPI()
	api.memberExists = true
	orders := &stubOrderWriter{}
	svc := New(api, orders, &stubContactWriter{}, "cat-1", nil)

	discordID := "9876543210"
	res, err := svc.NotifyOrder(context.Background(), Caller{Username: "tester", DiscordID: &discordID}, orderReq())
	if err != nil {
		t.Fatalf("notify order: %v", err)
	}

	if res.ChannelID != "chan-1" {
		t.Fatalf("channel id: got %q", res.ChannelID)
	}
	if !strings.HasPrefix(res.ChannelName, "📦・") {
		t.Fatalf("channel name prefix: got %q", res.ChannelName)
	}
	if strings.ContainsAny(res.ChannelName, "0123456789") {
		t.Fatalf("digits must be rendered in bold unicode: %q", res.ChannelName)
	}

	if api.lastCreateGuild != "guild-1" {
		t.Fatalf("guild: got %q", api.lastCreateGuild)
	}
	if api.lastCreateInput.ParentID != "cat-1" {
		t.Fatalf("parent category: got %q", api.lastCreateInput.ParentID)
	}
	if api.lastCreateInput.Type != discord.ChannelTypeGuildText {
		t.Fatalf("channel type: got %d", api.lastCreateInput.Type)
	}

	ows := api.lastCreateInput.PermissionOverwrites
	if len(ows) != 2 {
		t.Fatalf("expected role deny plus member allow, got %d overwrites", len(ows))
	}
	if ows[0].ID != "guild-1" || ows[0].Type != discord.OverwriteTypeRole || ows[0].Deny != discord.PermissionViewChannel {
		t.Fatalf("role overwrite mismatch: %+v", ows[0])
	}
	if ows[1].ID != discordID || ows[1].Type != discord.OverwriteTypeMember || ows[1].Allow != discord.PermissionViewChannel {
		t.Fatalf("member overwrite mismatch: %+v", ows[1])
	}

	if orders.lastRef != "12345678" || orders.lastChannel != res.ChannelName {
		t.Fatalf("order channel name not recorded: %+v", orders)
	}
	if api.lastSendChannel != "chan-1" {
		t.Fatalf("embed channel: got %q", api.lastSendChannel)
	}
}

func TestNotifyOrderSkipsNonMembers(t *testing.T) {
	api := newStubAPI()
	api.memberExists = false
	svc := New(api, &stubOrderWriter{}, &stubContactWriter{}, "cat-1", nil)

	discordID := "9876543210"
	_, err := svc.NotifyOrder(context.Background(), Caller{Username: "tester", DiscordID: &discordID}, orderReq())
	if err != nil {
		t.Fatalf("notify order: %v", err)
	}
	if api.memberLookups != 1 {
		t.Fatalf("expected one member lookup, got %d", api.memberLookups)
	}
	if got := len(api.lastCreateInput.PermissionOverwrites); got != 1 {
		t.Fatalf("non-member must not get an overwrite, got %d", got)
	}
}

func TestNotifyOrderWithoutDiscordID(t *testing.T) {
	api := newStubAPI()
	svc := New(api, &stubOrderWriter{}, &stubContactWriter{}, "cat-1", nil)

	_, err := svc.NotifyOrder(context.Background(), Caller{Username: "tester"}, orderReq())
	if err != nil {
		t.Fatalf("notify order: %v", err)
	}
	if api.memberLookups != 0 {
		t.Fatalf("no discord id must skip the member lookup, got %d", api.memberLookups)
	}
	if got := len(api.lastCreateInput.PermissionOverwrites); got != 1 {
		t.Fatalf("expected only the role deny, got %d overwrites", got)
	}
}

func TestNotifyOrderGuildUnavailable(t *testing.T) {
	api := newStubAPI()
	api.channelErr = errors.New("404")
	svc := New(api, &stubOrderWriter{}, &stubContactWriter{}, "cat-1", nil)

	_, err := svc.NotifyOrder(context.Background(), Caller{Username: "tester"}, orderReq())
	if !errors.Is(err, ErrGuildUnavailable) {
		t.Fatalf("expected ErrGuildUnavailable, got %v", err)
	}
}

func TestNotifyOrderChannelCreateFails(t *testing.T) {
	api := newStubAPI()
	api.createErr = errors.New("403")
	svc := New(api, &stubOrderWriter{}, &stubContactWriter{}, "cat-1", nil)

	_, err := svc.NotifyOrder(context.Background(), Caller{Username: "tester"}, orderReq())
	if !errors.Is(err, ErrChannelCreate) {
		t.Fatalf("expected ErrChannelCreate, got %v", err)
	}
}

func TestNotifyOrderSendFails(t *testing.T) {
	api := newStubAPI()
	api.sendErr = errors.New("500")
	svc := New(api, &stubOrderWriter{}, &stubContactWriter{}, "cat-1", nil)

	_, err := svc.NotifyOrder(context.Background(), Caller{Username: "tester"}, orderReq())
	if !errors.Is(err, ErrMessageSend) {
		t.Fatalf("expected ErrMessageSend, got %v", err)
	}
}

func TestNotifyOrderChannelNameEchoIsBestEffort(t *testing.T) {
	api := newStubAPI()
	orders := &stubOrderWriter{err: errors.New("db down")}
	svc := New(api, orders, &stubContactWriter{}, "cat-1", nil)

	res, err := svc.NotifyOrder(context.Background(), Caller{Username: "tester"}, orderReq())
	if err != nil {
		t.Fatalf("echo failure must not fail the notification: %v", err)
	}
	if api.sendCalls != 1 {
		t.Fatalf("embed not sent, calls=%d", api.sendCalls)
	}
	if res.ChannelName == "" {
		t.Fatalf("missing channel name in result")
	}
}

func TestNotifyContactUsesGeneratedRef(t *testing.T) {
	api := newStubAPI()
	contacts := &stubContactWriter{}
	svc := New(api, &stubOrderWriter{}, contacts, "cat-1", nil)

	res, err := svc.NotifyContact(context.Background(), Caller{Username: "tester"}, ContactRequest{
		MessageID: "msg-1",
		Name:      "Jean",
		Email:     "jean@example.com",
		Subject:   "Question",
		Message:   "Bonjour",
	})
	if err != nil {
		t.Fatalf("notify contact: %v", err)
	}
	if !strings.HasPrefix(res.ChannelName, "✉️・") {
		t.Fatalf("channel name prefix: got %q", res.ChannelName)
	}
	if contacts.lastID != "msg-1" || contacts.lastChannel != res.ChannelName {
		t.Fatalf("contact channel name not recorded: %+v", contacts)
	}
}

func TestNotifyDeletion(t *testing.T) {
	api := newStubAPI()
	svc := New(api, &stubOrderWriter{}, &stubContactWriter{}, "cat-1", nil)

	res, err := svc.NotifyDeletion(context.Background(), DeletionRequest{
		Type:        "contact_message",
		ItemID:      "abc123",
		ChannelName: "✉️・𝟏𝟐𝟑𝟒𝟓𝟔𝟕𝟖",
	})
	if err != nil {
		t.Fatalf("notify deletion: %v", err)
	}
	if !strings.HasPrefix(res.ChannelName, "🗑️・") {
		t.Fatalf("channel name prefix: got %q", res.ChannelName)
	}
	if got := len(api.lastCreateInput.PermissionOverwrites); got != 1 {
		t.Fatalf("deletion channel is staff-only, got %d overwrites", got)
	}
}
