package domain

import "time"

// Profile holds the Discord-linked identity of a user.
type Profile struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	DiscordID *string   `json:"discordId,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}
