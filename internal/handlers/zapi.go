package handlers

import (
	"encoding/json"
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/paginatto/paginatto-bot/internal/services"
	"github.com/paginatto/paginatto-bot/internal/utils"
)

// ZAPIHandler receives inbound WhatsApp messages from the gateway.
type ZAPIHandler struct {
	responder *services.Responder
	sender    services.Sender
}

// NewZAPIHandler creates the inbound-message webhook handler.
func NewZAPIHandler(responder *services.Responder, sender services.Sender) *ZAPIHandler {
	return &ZAPIHandler{responder: responder, sender: sender}
}

// HandleWebhook routes one inbound message. The gateway retries hard on
// non-2xx, so every parse failure is logged and acknowledged instead of
// rejected.
func (h *ZAPIHandler) HandleWebhook(c *fiber.Ctx) error {
	body, ok := parseInboundBody(c)
	if !ok {
		return c.JSON(fiber.Map{"ok": true})
	}

	phone, text := ExtractPhoneAndText(body)

	if isAudioOrCall(body) {
		if phone != "" {
			if err := h.sender.SendText(phone, "Ainda não consigo ouvir áudios nem atender ligações por aqui. Pode me escrever? 🙂"); err != nil {
				log.Printf("⚠️  Audio notice to %s not delivered: %v", phone, err)
			}
		}
		return c.JSON(fiber.Map{"ok": true, "note": "audio/call ignored"})
	}

	if phone == "" || text == "" {
		return c.JSON(fiber.Map{"ok": true, "note": "missing phone/text"})
	}

	if err := h.responder.HandleMessage(c.Context(), phone, text); err != nil {
		log.Printf("⚠️  Failed to handle message from %s: %v", phone, err)
	}
	return c.JSON(fiber.Map{"ok": true})
}

// HandleStatus answers gateway status pings so they do not 404.
func (h *ZAPIHandler) HandleStatus(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"ok": true})
}

// parseInboundBody decodes the request into a generic map. The gateway
// posts JSON, urlencoded forms and multipart forms depending on the
// event; form keys like "message[text]" are folded into a nested map.
func parseInboundBody(c *fiber.Ctx) (map[string]interface{}, bool) {
	ctype := strings.ToLower(c.Get(fiber.HeaderContentType))

	switch {
	case strings.Contains(ctype, "application/json"):
		var body map[string]interface{}
		if err := json.Unmarshal(c.Body(), &body); err != nil {
			log.Printf("⚠️  Inbound parse failed: %v | raw=%s", err, c.Body())
			return nil, false
		}
		return body, true

	case strings.Contains(ctype, "application/x-www-form-urlencoded"):
		body := make(map[string]interface{})
		c.Request().PostArgs().VisitAll(func(key, value []byte) {
			foldFormField(body, string(key), string(value))
		})
		return body, true

	case strings.Contains(ctype, "multipart/form-data"):
		form, err := c.MultipartForm()
		if err != nil {
			log.Printf("⚠️  Inbound multipart parse failed: %v", err)
			return nil, false
		}
		body := make(map[string]interface{})
		for key, values := range form.Value {
			if len(values) > 0 {
				foldFormField(body, key, values[0])
			}
		}
		return body, true
	}

	log.Printf("⚠️  Inbound with unknown content type %q: %s", ctype, c.Body())
	return nil, false
}

// foldFormField stores one form field, turning "message[text]"-style
// bracket keys into a nested "message" map.
func foldFormField(body map[string]interface{}, k, v string) {
	if strings.HasPrefix(k, "message[") && strings.HasSuffix(k, "]") {
		inner, _ := body["message"].(map[string]interface{})
		if inner == nil {
			inner = make(map[string]interface{})
			body["message"] = inner
		}
		inner[k[8:len(k)-1]] = v
		return
	}
	body[k] = v
}

// ExtractPhoneAndText pulls the sender phone and message text out of the
// gateway's observed payload shapes, checked in priority order:
// top-level fields, then "message", then "data.message". The phone is
// returned normalized; either value may be empty.
func ExtractPhoneAndText(body map[string]interface{}) (phone, text string) {
	phone = asString(body["phone"], body["from"])
	rawText := firstPresent(body["text"], body["body"])

	if phone == "" || rawText == nil {
		if msg, ok := body["message"].(map[string]interface{}); ok {
			if phone == "" {
				phone = asString(msg["phone"], msg["from"])
			}
			if rawText == nil {
				rawText = firstPresent(msg["text"], msg["body"])
			}
		}
	}

	if phone == "" || rawText == nil {
		if data, ok := body["data"].(map[string]interface{}); ok {
			if msg, ok := data["message"].(map[string]interface{}); ok {
				if phone == "" {
					phone = asString(msg["phone"], msg["from"])
				}
				if rawText == nil {
					rawText = firstPresent(msg["text"], msg["body"])
				}
			}
		}
	}

	return utils.NormalizePhone(phone), strings.TrimSpace(asText(rawText))
}

// isAudioOrCall recognizes voice payloads structurally: a "type" field
// naming an audio/call event, or audio-specific keys in the body.
func isAudioOrCall(body map[string]interface{}) bool {
	if typeIsAudio(body["type"]) {
		return true
	}
	if _, ok := body["audio"]; ok {
		return true
	}
	if msg, ok := body["message"].(map[string]interface{}); ok {
		if typeIsAudio(msg["type"]) {
			return true
		}
		if _, ok := msg["audio"]; ok {
			return true
		}
	}
	return false
}

func typeIsAudio(v interface{}) bool {
	switch strings.ToLower(asText(v)) {
	case "audio", "ptt", "voice", "call", "received_call", "missed_call":
		return true
	}
	return false
}

// asText resolves a text value that may be a plain string or a nested
// object carrying the string under a well-known key.
func asText(v interface{}) string {
	switch t := v.(type) {
	case string:
		return t
	case map[string]interface{}:
		for _, k := range []string{"message", "text", "body", "caption"} {
			if s, ok := t[k].(string); ok {
				return s
			}
		}
	}
	return ""
}

func asString(values ...interface{}) string {
	for _, v := range values {
		if s, ok := v.(string); ok && s != "" {
			return s
		}
	}
	return ""
}

func firstPresent(values ...interface{}) interface{} {
	for _, v := range values {
		if v != nil {
			return v
		}
	}
	return nil
}
