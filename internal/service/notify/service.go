package notify

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"math/rand/v2"

	"wifiric-backend/internal/discord"
)

var (
	// ErrGuildUnavailable means the guild owning the category could not be resolved.
	ErrGuildUnavailable = errors.New("unable to resolve discord guild")
	// ErrChannelCreate means the private channel could not be created.
	ErrChannelCreate = errors.New("unable to create discord channel")
	// ErrMessageSend means the summary message could not be posted.
	ErrMessageSend = errors.New("unable to post discord message")
)

// DiscordAPI is the chat-platform surface the service relies on.
type DiscordAPI interface {
	Channel(ctx context.Context, channelID string) (*discord.Channel, error)
	GuildMemberExists(ctx context.Context, guildID, userID string) (bool, error)
	CreateGuildChannel(ctx context.Context, guildID string, in discord.CreateChannelInput) (*discord.Channel, error)
	SendEmbed(ctx context.Context, channelID string, embed discord.Embed) error
}

// OrderChannelWriter echoes the created channel name back onto the order row.
type OrderChannelWriter interface {
	SetDiscordChannelName(ctx context.Context, orderRef, channelName string) error
}

// ContactChannelWriter echoes the created channel name back onto the contact message.
type ContactChannelWriter interface {
	SetDiscordChannelName(ctx context.Context, id, channelName string) error
}

// Caller is the resolved identity of the user triggering a notification.
type Caller struct {
	Username  string
	DiscordID *string
}

// Result identifies the channel a notification landed in.
type Result struct {
	ChannelID   string
	ChannelName string
}

// Service turns application events into private Discord channels with a
// summary embed. Stateless; every call performs its own sequential chain of
// API calls with no retries.
type Service struct {
	api        DiscordAPI
	orders     OrderChannelWriter
	contacts   ContactChannelWriter
	categoryID string
	logger     *log.Logger
}

// New creates a Service posting under the given category channel.
func New(api DiscordAPI, orders OrderChannelWriter, contacts ContactChannelWriter, categoryID string, logger *log.Logger) *Service {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Service{
		api:        api,
		orders:     orders,
		contacts:   contacts,
		categoryID: categoryID,
		logger:     logger,
	}
}

// OrderRequest carries everything needed to announce a new order.
type OrderRequest struct {
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
}

// NotifyOrder creates a private channel named after the order reference and
// posts the order summary into it. The channel-name echo onto the order row
// is best-effort; channel creation and message posting are fatal.
func (s *Service) NotifyOrder(ctx context.Context, caller Caller, req OrderRequest) (*Result, error) {
	guildID, err := s.guildID(ctx)
	if err != nil {
		return nil, err
	}

	channelName := "📦・" + discord.BoldDigits(req.OrderRef)
	channel, err := s.createPrivateChannel(ctx, guildID, channelName, caller.DiscordID)
	if err != nil {
		return nil, err
	}

	if err := s.orders.SetDiscordChannelName(ctx, req.OrderRef, channelName); err != nil {
		s.logger.Printf("notify: update order %s channel name: %v", req.OrderRef, err)
	}

	embed := orderEmbed(req, caller.Username)
	if err := s.api.SendEmbed(ctx, channel.ID, embed); err != nil {
		s.logger.Printf("notify: post order embed to %s: %v", channel.ID, err)
		return nil, fmt.Errorf("%w: %v", ErrMessageSend, err)
	}

	return &Result{ChannelID: channel.ID, ChannelName: channelName}, nil
}

// ContactRequest carries everything needed to announce a contact message.
type ContactRequest struct {
	MessageID   string `json:"contact_message_id"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	Subject     string `json:"subject"`
	Message     string `json:"message"`
	ProjectType string `json:"project_type"`
}

// NotifyContact creates a private channel for a contact message and posts the
// message summary into it. The channel is keyed by a freshly generated
// 8-digit reference rather than the message row id.
func (s *Service) NotifyContact(ctx context.Context, caller Caller, req ContactRequest) (*Result, error) {
	guildID, err := s.guildID(ctx)
	if err != nil {
		return nil, err
	}

	contactRef := randomRef()
	channelName := "✉️・" + discord.BoldDigits(contactRef)
	channel, err := s.createPrivateChannel(ctx, guildID, channelName, caller.DiscordID)
	if err != nil {
		return nil, err
	}

	if req.MessageID != "" {
		if err := s.contacts.SetDiscordChannelName(ctx, req.MessageID, channelName); err != nil {
			s.logger.Printf("notify: update contact message %s channel name: %v", req.MessageID, err)
		}
	}

	embed := contactEmbed(req, contactRef, caller.Username)
	if err := s.api.SendEmbed(ctx, channel.ID, embed); err != nil {
		s.logger.Printf("notify: post contact embed to %s: %v", channel.ID, err)
		return nil, fmt.Errorf("%w: %v", ErrMessageSend, err)
	}

	return &Result{ChannelID: channel.ID, ChannelName: channelName}, nil
}

// DeletionRequest announces that an admin removed an item.
type DeletionRequest struct {
	Type        string `json:"type"`
	ItemID      string `json:"item_id"`
	ChannelName string `json:"channel_name"`
}

// NotifyDeletion posts a deletion notice into the category's guild. The
// notice lands in a fresh channel under the category so it is visible to the
// team even after the original channel is gone.
func (s *Service) NotifyDeletion(ctx context.Context, req DeletionRequest) (*Result, error) {
	guildID, err := s.guildID(ctx)
	if err != nil {
		return nil, err
	}

	channelName := "🗑️・" + discord.BoldDigits(randomRef())
	channel, err := s.createPrivateChannel(ctx, guildID, channelName, nil)
	if err != nil {
		return nil, err
	}

	if err := s.api.SendEmbed(ctx, channel.ID, deletionEmbed(req)); err != nil {
		s.logger.Printf("notify: post deletion embed to %s: %v", channel.ID, err)
		return nil, fmt.Errorf("%w: %v", ErrMessageSend, err)
	}

	return &Result{ChannelID: channel.ID, ChannelName: channelName}, nil
}

func (s *Service) guildID(ctx context.Context) (string, error) {
	category, err := s.api.Channel(ctx, s.categoryID)
	if err != nil || category.GuildID == "" {
		s.logger.Printf("notify: resolve guild from category %s: %v", s.categoryID, err)
		return "", ErrGuildUnavailable
	}
	return category.GuildID, nil
}

// createPrivateChannel creates a text channel under the category, hidden from
// the guild's default role. When the caller's Discord account is a member of
// the guild it is explicitly granted view access.
func (s *Service) createPrivateChannel(ctx context.Context, guildID, name string, discordUserID *string) (*discord.Channel, error) {
	overwrites := []discord.PermissionOverwrite{
		{
			ID:   guildID,
			Type: discord.OverwriteTypeRole,
			Deny: discord.PermissionViewChannel,
		},
	}

	if discordUserID != nil && *discordUserID != "" {
		inGuild, err := s.api.GuildMemberExists(ctx, guildID, *discordUserID)
		if err != nil {
			s.logger.Printf("notify: member lookup %s: %v", *discordUserID, err)
		} else if inGuild {
			overwrites = append(overwrites, discord.PermissionOverwrite{
				ID:    *discordUserID,
				Type:  discord.OverwriteTypeMember,
				Allow: discord.PermissionViewChannel,
			})
		}
	}

	channel, err := s.api.CreateGuildChannel(ctx, guildID, discord.CreateChannelInput{
		Name:                 name,
		Type:                 discord.ChannelTypeGuildText,
		ParentID:             s.categoryID,
		PermissionOverwrites: overwrites,
	})
	if err != nil {
		s.logger.Printf("notify: create channel %s: %v", name, err)
		return nil, fmt.Errorf("%w: %v", ErrChannelCreate, err)
	}
	return channel, nil
}

func randomRef() string {
	return fmt.Sprintf("%08d", 10000000+rand.IntN(90000000))
}
