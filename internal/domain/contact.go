package domain

import "time"

// ContactMessage is a message sent through the contact form.
type ContactMessage struct {
	ID                 string    `json:"id"`
	UserID             *string   `json:"userId,omitempty"`
	Name               string    `json:"name"`
	Email              string    `json:"email"`
	Subject            string    `json:"subject"`
	Message            string    `json:"message"`
	ProjectType        string    `json:"projectType"`
	DiscordChannelName *string   `json:"discordChannelName,omitempty"`
	CreatedAt          time.Time `json:"createdAt"`
}
