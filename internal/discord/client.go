package discord

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"
)

// PermissionViewChannel is the VIEW_CHANNEL permission bit as the REST API
// expects it, serialized as a string.
const PermissionViewChannel = "1024"

// Channel types as defined by the Discord API.
const (
	ChannelTypeGuildText = 0
)

// Permission overwrite target types.
const (
	OverwriteTypeRole   = 0
	OverwriteTypeMember = 1
)

// APIError is a non-2xx response from the Discord API.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("discord api: status %d: %s", e.StatusCode, e.Body)
}

// Channel is the subset of the channel object the service reads.
type Channel struct {
	ID      string `json:"id"`
	GuildID string `json:"guild_id"`
	Name    string `json:"name"`
}

// PermissionOverwrite grants or denies permissions on a channel.
type PermissionOverwrite struct {
	ID    string `json:"id"`
	Type  int    `json:"type"`
	Allow string `json:"allow,omitempty"`
	Deny  string `json:"deny,omitempty"`
}

// CreateChannelInput is the body for guild channel creation.
type CreateChannelInput struct {
	Name                 string                `json:"name"`
	Type                 int                   `json:"type"`
	ParentID             string                `json:"parent_id,omitempty"`
	PermissionOverwrites []PermissionOverwrite `json:"permission_overwrites,omitempty"`
}

// Client calls the Discord REST API with bot-token authorization.
type Client struct {
	httpClient *http.Client
	baseURL    string
	token      string
	logger     *log.Logger
}

// New builds a Client for the given API base URL and bot token.
func New(baseURL, token string, logger *log.Logger) *Client {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Client{
		httpClient: &http.Client{Timeout: 15 * time.Second},
		baseURL:    strings.TrimRight(baseURL, "/"),
		token:      token,
		logger:     logger,
	}
}

// Channel fetches a channel by ID. Used to resolve the guild owning the
// orders category.
func (c *Client) Channel(ctx context.Context, channelID string) (*Channel, error) {
	var ch Channel
	if err := c.do(ctx, http.MethodGet, "/channels/"+channelID, nil, &ch); err != nil {
		return nil, err
	}
	return &ch, nil
}

// GuildMemberExists reports whether the given user is a member of the guild.
// A 404 from the member endpoint means "not a member", not an error.
func (c *Client) GuildMemberExists(ctx context.Context, guildID, userID string) (bool, error) {
	err := c.do(ctx, http.MethodGet, "/guilds/"+guildID+"/members/"+userID, nil, nil)
	if err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// CreateGuildChannel creates a channel inside the guild.
func (c *Client) CreateGuildChannel(ctx context.Context, guildID string, in CreateChannelInput) (*Channel, error) {
	var ch Channel
	if err := c.do(ctx, http.MethodPost, "/guilds/"+guildID+"/channels", in, &ch); err != nil {
		return nil, err
	}
	return &ch, nil
}

// SendEmbed posts a message with a single embed into the channel.
func (c *Client) SendEmbed(ctx context.Context, channelID string, embed Embed) error {
	body := struct {
		Embeds []Embed `json:"embeds"`
	}{Embeds: []Embed{embed}}
	return c.do(ctx, http.MethodPost, "/channels/"+channelID+"/messages", body, nil)
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bot "+c.token)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		c.logger.Printf("discord: %s %s status=%d body=%s", method, path, resp.StatusCode, string(raw))
		return &APIError{StatusCode: resp.StatusCode, Body: string(raw)}
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}
