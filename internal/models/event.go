package models

import (
	"time"

	"gorm.io/gorm"
)

// CheckoutEvent persists every webhook the checkout platform sends us,
// keyed by a stable event id so gateway retries insert at most once.
type CheckoutEvent struct {
	gorm.Model
	EventID       string    `json:"event_id" gorm:"uniqueIndex"`
	EventType     string    `json:"event_type" gorm:"index"`
	OccurredAt    time.Time `json:"occurred_at" gorm:"index"`
	Phone         string    `json:"phone" gorm:"index"`
	Email         string    `json:"email"`
	CustomerName  string    `json:"customer_name"`
	ProductID     string    `json:"product_id"`
	ProductName   string    `json:"product_name"`
	CheckoutURL   string    `json:"checkout_url"`
	Amount        float64   `json:"amount"`
	Currency      string    `json:"currency"`
	PaymentStatus string    `json:"payment_status" gorm:"index"`
	Raw           string    `json:"raw" gorm:"type:jsonb"`
}
