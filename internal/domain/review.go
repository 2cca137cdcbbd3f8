package domain

import "time"

// Review is a customer review left on the site.
type Review struct {
	ID          string    `json:"id"`
	UserID      string    `json:"userId"`
	Rating      int       `json:"rating"`
	Content     string    `json:"content"`
	ProjectType *string   `json:"projectType,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}
