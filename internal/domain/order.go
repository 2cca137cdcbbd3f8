package domain

import "time"

// OrderStatus is the lifecycle state of a submitted order.
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusInProgress OrderStatus = "in_progress"
	OrderStatusCompleted  OrderStatus = "completed"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

// Order is the flattened order submission as persisted.
type Order struct {
	ID                   string      `json:"id"`
	UserID               *string     `json:"userId,omitempty"`
	OrderRef             string      `json:"orderId"`
	OrderType            string      `json:"orderType"`
	SiteType             string      `json:"siteType"`
	SiteTypeOther        *string     `json:"siteTypeOther,omitempty"`
	SiteName             string      `json:"siteName"`
	LogoURLs             []string    `json:"logoUrls,omitempty"`
	PrimaryColor         string      `json:"primaryColor,omitempty"`
	SecondaryColor       string      `json:"secondaryColor,omitempty"`
	OtherColors          []string    `json:"otherColors,omitempty"`
	SpecificInstructions *string     `json:"specificInstructions,omitempty"`
	Description          string      `json:"description"`
	Budget               *float64    `json:"budget,omitempty"`
	BudgetText           *string     `json:"budgetText,omitempty"`
	FullName             string      `json:"fullName"`
	Email                string      `json:"email"`
	DiscordUsername      string      `json:"discordUsername,omitempty"`
	DiscordChannelName   *string     `json:"discordChannelName,omitempty"`
	Status               OrderStatus `json:"status"`
	CreatedAt            time.Time   `json:"createdAt"`
}
