package middleware

import (
	"crypto/subtle"
	"log"
	"os"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// RequireSecret rejects requests whose header does not carry the shared
// secret named by envKey. An empty secret disables the check entirely.
func RequireSecret(header, envKey string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		secret := strings.TrimSpace(os.Getenv(envKey))
		if secret == "" || equal(c.Get(header), secret) {
			return c.Next()
		}
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "invalid secret",
		})
	}
}

// WarnSecret logs a mismatch but lets the request through, so a gateway
// misconfiguration never drops live conversations. ZAPI_WEBHOOK_STRICT
// upgrades it to a hard rejection.
func WarnSecret(header, envKey string) fiber.Handler {
	strictHandler := RequireSecret(header, envKey)
	return func(c *fiber.Ctx) error {
		if os.Getenv("ZAPI_WEBHOOK_STRICT") == "true" {
			return strictHandler(c)
		}
		secret := strings.TrimSpace(os.Getenv(envKey))
		if secret != "" && !equal(c.Get(header), secret) {
			log.Printf("⚠️  %s mismatch on %s (accepted, strict mode off)", header, c.Path())
		}
		return c.Next()
	}
}

func equal(a, b string) bool {
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}
