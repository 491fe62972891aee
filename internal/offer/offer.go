package offer

import (
	"strings"
	"time"

	"github.com/paginatto/paginatto-bot/internal/models"
)

// DefaultTTLMinutes is how long an issued offer/checkout link stays
// valid unless OFFER_TTL_MIN overrides it.
const DefaultTTLMinutes = 60

// ClassifyProduct maps a product name or key to a coarse offer category.
func ClassifyProduct(name string) string {
	n := strings.ToLower(name)
	switch {
	case strings.Contains(n, "tabib"):
		return "tabib"
	case strings.Contains(n, "airfryer"), strings.Contains(n, "air fryer"),
		strings.Contains(n, "air") && strings.Contains(n, "fry"):
		return "airfryer"
	case strings.Contains(n, "bundle"), strings.Contains(n, "combo"),
		strings.Contains(n, "kit"), strings.Contains(n, "pacote"):
		return "bundle"
	}
	return "generic"
}

// Build returns the promotional headline and detail for a product.
func Build(productName string) (headline, detail string) {
	switch ClassifyProduct(productName) {
	case "tabib":
		return "Cupom TABIB10 liberado", "R$10 off hoje. Link válido por 60 min."
	case "airfryer":
		return "Bônus Air Fryer", "Ganhe 20 receitas bônus por 60 min."
	case "bundle":
		return "Upgrade para Combo -25%", "Aplique agora e garanta 25% off no combo."
	}
	return "Condição especial", "Desconto relâmpago ativo por 60 min."
}

// BuildExt is Build with an optional bundle variant: for the tabib
// family it prepends the bundle discount line.
func BuildExt(productKey string, bundle bool) (headline, detail string) {
	headline, detail = Build(productKey)
	if bundle && ClassifyProduct(productKey) == "tabib" {
		detail = "Leve *todos* os volumes por 19,90.\n" + detail
	}
	return headline, detail
}

// MarkCheckout stamps the context as awaiting purchase: stage becomes
// checkout and the offer expires ttl minutes from now.
func MarkCheckout(ctx *models.ConversationContext, ttlMinutes int) {
	if ttlMinutes <= 0 {
		ttlMinutes = DefaultTTLMinutes
	}
	exp := time.Now().UTC().Add(time.Duration(ttlMinutes) * time.Minute)
	ctx.Stage = models.StageCheckout
	ctx.OfferExpiresAt = &exp
}

// Expired reports whether the context's standing offer has lapsed. A
// context that never had an offer stamped is not expired.
func Expired(ctx *models.ConversationContext) bool {
	if ctx.OfferExpiresAt == nil {
		return false
	}
	return time.Now().UTC().After(*ctx.OfferExpiresAt)
}
