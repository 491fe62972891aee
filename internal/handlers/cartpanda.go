package handlers

import (
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/paginatto/paginatto-bot/internal/models"
	"github.com/paginatto/paginatto-bot/internal/services"
	"github.com/paginatto/paginatto-bot/internal/utils"
)

// CartPandaHandler receives checkout-platform events and opens recovery
// conversations.
type CartPandaHandler struct {
	responder *services.Responder
	recorder  *services.EventRecorder
}

// NewCartPandaHandler creates the checkout-event webhook handler.
func NewCartPandaHandler(responder *services.Responder, recorder *services.EventRecorder) *CartPandaHandler {
	return &CartPandaHandler{responder: responder, recorder: recorder}
}

// HandleWebhook processes one checkout event: persist it, build the
// conversation context and fire the opening message. Unusable payloads
// are acknowledged with ok=false so the platform does not retry.
func (h *CartPandaHandler) HandleWebhook(c *fiber.Ctx) error {
	var payload models.CartPandaPayload
	if err := c.BodyParser(&payload); err != nil {
		log.Printf("⚠️  CartPanda payload parse failed: %v", err)
		return c.JSON(fiber.Map{"ok": false, "reason": "invalid payload"})
	}

	if h.recorder != nil {
		_ = h.recorder.Record(&payload, c.Body())
	}

	event := strings.ToLower(strings.TrimSpace(firstNonEmpty(payload.Event, payload.EventType)))
	phone := utils.NormalizePhone(payload.Customer.Phone)
	name := strings.TrimSpace(payload.Customer.Name)
	productName := strings.TrimSpace(payload.Product.Name)
	checkoutURL := strings.TrimSpace(firstNonEmpty(payload.Product.CheckoutURL, payload.CheckoutURL))

	if phone == "" || productName == "" {
		return c.JSON(fiber.Map{"ok": false, "reason": "missing phone or product"})
	}

	var flow models.Flow
	switch event {
	case "checkout_abandoned":
		flow = models.FlowAbandoned
	case "pix_pending":
		flow = models.FlowPixPending
	default:
		flow = models.FlowUnknown
	}

	if err := h.responder.StartRecovery(c.Context(), phone, flow, name, productName, checkoutURL); err != nil {
		log.Printf("⚠️  Failed to start recovery for %s: %v", phone, err)
	}

	return c.JSON(fiber.Map{"ok": true, "flow": flow})
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
