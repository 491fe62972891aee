package services

import (
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/paginatto/paginatto-bot/internal/models"
)

// EventRecorder writes every checkout-platform webhook to Postgres for
// later analysis. The bot works without it: a nil recorder only logs.
type EventRecorder struct {
	db *gorm.DB
}

// NewEventRecorder wraps the database handle.
func NewEventRecorder(db *gorm.DB) *EventRecorder {
	return &EventRecorder{db: db}
}

// Record persists one checkout event. The event id is derived from the
// payload so gateway retries collapse onto a single row.
func (e *EventRecorder) Record(payload *models.CartPandaPayload, raw []byte) error {
	if e == nil || e.db == nil {
		return nil
	}

	event := &models.CheckoutEvent{
		EventID:       eventID(payload),
		EventType:     strings.TrimSpace(firstNonEmpty(payload.EventType, payload.Event)),
		OccurredAt:    time.Now().UTC(),
		Phone:         strings.TrimSpace(payload.Customer.Phone),
		Email:         strings.TrimSpace(payload.Customer.Email),
		CustomerName:  strings.TrimSpace(payload.Customer.Name),
		ProductID:     strings.TrimSpace(payload.Product.ID),
		ProductName:   strings.TrimSpace(payload.Product.Name),
		CheckoutURL:   strings.TrimSpace(firstNonEmpty(payload.CheckoutURL, payload.Product.CheckoutURL)),
		Amount:        payload.Amount,
		Currency:      strings.TrimSpace(payload.Currency),
		PaymentStatus: strings.TrimSpace(payload.PaymentStatus),
		Raw:           string(raw),
	}
	if !json.Valid(raw) {
		event.Raw = "{}"
	}

	err := e.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "event_id"}},
		DoNothing: true,
	}).Create(event).Error
	if err != nil {
		log.Printf("⚠️  Failed to record checkout event %s: %v", event.EventID, err)
	}
	return err
}

func eventID(p *models.CartPandaPayload) string {
	if id := strings.TrimSpace(firstNonEmpty(p.ID, p.EventID)); id != "" {
		return id
	}
	if p.CheckoutID != "" || p.EventType != "" || p.Event != "" {
		return fmt.Sprintf("%s_%s", p.CheckoutID, firstNonEmpty(p.EventType, p.Event))
	}
	return fmt.Sprintf("evt_%d", time.Now().Unix())
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
