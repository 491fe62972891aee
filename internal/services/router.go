package services

import (
	"context"
	"fmt"
	"log"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/paginatto/paginatto-bot/internal/catalog"
	"github.com/paginatto/paginatto-bot/internal/intent"
	"github.com/paginatto/paginatto-bot/internal/models"
	"github.com/paginatto/paginatto-bot/internal/offer"
	"github.com/paginatto/paginatto-bot/internal/storage"
)

// Responder drives the recovery conversations: it owns the context
// store, the outbound sender and the catalog index, and turns each
// inbound message into a reply plus a context mutation.
type Responder struct {
	store   storage.ContextStore
	sender  Sender
	catalog *catalog.Index

	assistantName string
	brandName     string
	siteURL       string
	legalName     string
	legalCNPJ     string
	offerTTLMin   int
}

var digit15Re = regexp.MustCompile(`^[1-5]$`)

// NewResponder wires the conversation engine. Branding and the offer
// TTL come from the environment with the production defaults.
func NewResponder(store storage.ContextStore, sender Sender, idx *catalog.Index) *Responder {
	r := &Responder{
		store:         store,
		sender:        sender,
		catalog:       idx,
		assistantName: envOr("ASSISTANT_NAME", "Iara"),
		brandName:     envOr("BRAND_NAME", "Paginatto"),
		siteURL:       envOr("SITE_URL", "https://paginattoebooks.github.io/Paginatto.site.com.br/"),
		legalName:     envOr("LEGAL_NAME", "PAGINATTO"),
		legalCNPJ:     envOr("LEGAL_CNPJ", "57.941.903/0001-94"),
		offerTTLMin:   offer.DefaultTTLMinutes,
	}
	if v, err := strconv.Atoi(os.Getenv("OFFER_TTL_MIN")); err == nil && v > 0 {
		r.offerTTLMin = v
	}
	return r
}

func envOr(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

// send delivers the reply best-effort: failures are logged by the
// sender and never bubble up to the webhook response.
func (r *Responder) send(phone, message string) {
	if err := r.sender.SendText(phone, message); err != nil {
		log.Printf("⚠️  Reply to %s not delivered: %v", phone, err)
	}
}

func (r *Responder) save(ctx context.Context, phone string, conv *models.ConversationContext) {
	if err := r.store.Store(ctx, phone, conv, storage.RefreshTTL); err != nil {
		log.Printf("⚠️  Failed to persist context for %s: %v", phone, err)
	}
}

// StartRecovery creates (or overwrites) the conversation context for a
// checkout event and sends the opening ownership question.
func (r *Responder) StartRecovery(ctx context.Context, phone string, flow models.Flow, name, productName, checkoutURL string) error {
	family := catalog.InferFamily(&models.CatalogItem{Name: productName})
	conv := models.NewContext(flow, name, productName, family, checkoutURL)

	if err := r.store.Store(ctx, phone, conv, storage.CreateTTL); err != nil {
		return err
	}

	first := fmt.Sprintf("Bom dia! Esse número é de %s? Sou %s da %s. Responda 1) Sim  2) Não",
		name, r.assistantName, r.brandName)
	r.send(phone, first)
	return nil
}

// HandleMessage is the entry point for every inbound text. The context
// read-modify-write below is not atomic across instances; two rapid
// messages from the same number can race with last-write-wins, which is
// acceptable for a per-user chat workload.
func (r *Responder) HandleMessage(ctx context.Context, phone, text string) error {
	conv, err := r.store.Read(ctx, phone)
	if err != nil {
		return err
	}

	// Message without a conversation: greet once and open a minimal
	// context so the next message can be routed.
	if conv == nil {
		r.send(phone, fmt.Sprintf("Oi, aqui é %s da %s. Como posso ajudar?", r.assistantName, r.brandName))
		conv = models.NewContext(models.FlowUnknown, "", "", "", "")
		conv.ConfirmedOwner = true
		return r.store.Store(ctx, phone, conv, storage.CreateTTL)
	}

	conv.LastIntent = intent.Classify(text)
	r.save(ctx, phone, conv)

	return r.routeStage(ctx, phone, conv, text)
}

// routeStage applies the transition rules in priority order: product
// mention shortcut, then the current stage's own logic, then the
// stage-independent intent handler.
func (r *Responder) routeStage(ctx context.Context, phone string, conv *models.ConversationContext, text string) error {
	tlow := strings.ToLower(strings.TrimSpace(text))

	// A named product wins over whatever stage we are in.
	if key := r.detectProductKey(text); key != "" && conv.ConfirmedOwner {
		return r.jumpToProduct(ctx, phone, conv, key)
	}

	// Opt-out and "already purchased" end the conversation from any
	// stage, before stage-local parsing can swallow them.
	switch intent.Classify(text) {
	case intent.Stop, intent.Quit, intent.Bought:
		return r.handleIntent(ctx, phone, conv, text, intent.Classify(text))
	}

	switch conv.Stage {
	case models.StageCheckout:
		// An expired offer blocks everything except the yes/no answer to
		// the renewal question itself.
		renewalAnswer := conv.Asked == models.AskedApplyOffer && (intent.IsYes(text) || intent.IsNo(text))
		if offer.Expired(conv) && !renewalAnswer {
			conv.Asked = models.AskedApplyOffer
			r.save(ctx, phone, conv)
			r.send(phone, "A condição anterior expirou. Posso **renovar** a oferta e te mandar o link atualizado?")
			return nil
		}
		return r.handleIntent(ctx, phone, conv, text, intent.Classify(text))

	case models.StageVerify:
		if isOption(tlow, "1", "sim", "sou eu", "isso mesmo", "eu") || (intent.IsYes(text) && !conv.ConfirmedOwner) {
			conv.ConfirmedOwner = true
			conv.Stage = models.StagePickProduct
			r.save(ctx, phone, conv)
			r.send(phone, "Legal! Qual produto você quer?\n• Se for *Tabib*, posso te mostrar as 5 opções (volumes 1–4 + pacote 2025/2024).")
			return nil
		}
		if isOption(tlow, "2", "não", "nao", "não sou", "nao sou") {
			r.send(phone, "Sem problemas, obrigado! Se precisar, é só chamar. 🙏")
			return r.store.Clear(ctx, phone)
		}
		return r.handleIntent(ctx, phone, conv, text, intent.Classify(text))

	case models.StagePickProduct:
		if strings.Contains(tlow, "tabib") {
			return r.openTabibMenu(ctx, phone, conv)
		}
		if items := r.catalog.FindByText(text); len(items) > 0 {
			return r.issueOffer(ctx, phone, conv, items[0])
		}
		r.send(phone, "Não entendi o produto. Se for *Tabib*, responda 'tabib' que eu abro as opções pra você.\n"+
			"Ou me diga palavras-chave (ex.: airfryer, antídoto, kurimã, bálsamo, pressão alta).")
		return nil

	case models.StageTabibMenu:
		return r.routeTabibMenu(ctx, phone, conv, text, tlow)
	}

	return r.handleIntent(ctx, phone, conv, text, intent.Classify(text))
}

// routeTabibMenu dispatches the Tabib sub-menu on the pending question.
func (r *Responder) routeTabibMenu(ctx context.Context, phone string, conv *models.ConversationContext, text, tlow string) error {
	switch conv.Asked {
	case models.AskedTabibMain:
		switch {
		case isOption(tlow, "1", "todos", "bundle", "pacote", "combo"):
			return r.issueTabibBundle(ctx, phone, conv)
		case isOption(tlow, "2", "unitario", "unitarios", "unitário", "unitários"):
			return r.openTabibUnitList(ctx, phone, conv)
		case isOption(tlow, "3", "voltar"):
			conv.Stage = models.StagePickProduct
			conv.Asked = models.AskedNone
			r.save(ctx, phone, conv)
			r.send(phone, "Sem problemas! Qual produto você procura? (ex.: airfryer, antídoto, kurimã, bálsamo)")
			return nil
		}
		if items := r.findTabibByText(text); len(items) > 0 {
			return r.describeTabibItem(ctx, phone, conv, items[0])
		}
		r.send(phone, "Não peguei sua escolha. Responda 1) Todos  2) Unitários  3) Voltar.")
		return nil

	case models.AskedTabibAfterDesc:
		it := r.catalog.BySKU[conv.SelectedProduct]
		switch {
		case intent.Classify(text) == intent.Link || intent.IsYes(text):
			if it != nil {
				return r.issueOffer(ctx, phone, conv, it)
			}
			return r.openTabibUnitList(ctx, phone, conv)
		case isOption(tlow, "todos", "bundle", "pacote", "combo"):
			return r.issueTabibBundle(ctx, phone, conv)
		case isOption(tlow, "unitario", "unitarios", "unitário", "unitários"):
			return r.openTabibUnitList(ctx, phone, conv)
		}
		r.send(phone, "Quer o link desse volume, o pacote com *todos*, ou ver os *unitários*?")
		return nil

	case models.AskedTabibPickUnit:
		if isOption(tlow, "1", "2", "3", "4") {
			if it := r.catalog.TabibChoice(tlow); it != nil {
				return r.issueOffer(ctx, phone, conv, it)
			}
			r.send(phone, "Opção indisponível no momento. Pode escolher outra (1–5)?")
			return nil
		}
		if items := r.findTabibByText(text); len(items) > 0 {
			return r.issueOffer(ctx, phone, conv, items[0])
		}
		r.send(phone, "Não peguei sua escolha. Responda 1–5 ou diga o volume desejado (ex.: v3, volume 3).")
		return nil
	}

	// Persisted contexts from older builds may carry no sub-state tag;
	// fall back to the direct numeric choice.
	if digit15Re.MatchString(tlow) {
		it := r.catalog.TabibChoice(tlow)
		if it == nil {
			r.send(phone, "Opção indisponível no momento. Pode escolher outra (1–5)?")
			return nil
		}
		return r.issueOffer(ctx, phone, conv, it)
	}
	if items := r.findTabibByText(text); len(items) > 0 {
		return r.issueOffer(ctx, phone, conv, items[0])
	}
	r.send(phone, "Não peguei sua escolha. Responda 1–5 ou diga o volume desejado (ex.: v3, volume 3).")
	return nil
}

// detectProductKey returns the product family named anywhere in the
// text, or "". This is a substring check on the normalized text, by
// design looser than the stage-local exact options.
func (r *Responder) detectProductKey(text string) string {
	t := intent.Normalize(text)
	for _, fam := range []string{"tabib", "airfryer", "masterchef"} {
		if strings.Contains(t, fam) {
			return fam
		}
	}
	if strings.Contains(t, "air fryer") || strings.Contains(t, "master chef") {
		if strings.Contains(t, "air") {
			return "airfryer"
		}
		return "masterchef"
	}
	return ""
}

// jumpToProduct branches straight into a product flow from any stage.
func (r *Responder) jumpToProduct(ctx context.Context, phone string, conv *models.ConversationContext, key string) error {
	conv.SelectedProduct = key
	if key == "tabib" {
		return r.openTabibMenu(ctx, phone, conv)
	}

	headline, detail := offer.BuildExt(key, false)
	offer.MarkCheckout(conv, r.offerTTLMin)
	r.save(ctx, phone, conv)

	link := conv.CheckoutURL
	if it := r.catalog.PickFamilyItem(key); it != nil && it.Checkout != "" {
		link = it.Checkout
	}
	msg := fmt.Sprintf("%s\n%s\n\n", headline, detail)
	if link != "" {
		msg += "Link para concluir: " + link + "\n"
	}
	msg += fmt.Sprintf("Se quiser, já pode conferir e comprar pelo nosso site: %s", r.siteURL)
	r.send(phone, msg)
	return nil
}

func (r *Responder) openTabibMenu(ctx context.Context, phone string, conv *models.ConversationContext) error {
	conv.Stage = models.StageTabibMenu
	conv.Asked = models.AskedTabibMain
	conv.SelectedProduct = "tabib"
	r.save(ctx, phone, conv)
	r.send(phone, "Perfeito! Para o Tabib, prefere:\n1) **Todos** os e-books por 19,90\n2) Ver **unitários**\n3) Voltar")
	return nil
}

func (r *Responder) openTabibUnitList(ctx context.Context, phone string, conv *models.ConversationContext) error {
	conv.Stage = models.StageTabibMenu
	conv.Asked = models.AskedTabibPickUnit
	r.save(ctx, phone, conv)
	r.send(phone, r.catalog.TabibMenuText())
	return nil
}

func (r *Responder) issueTabibBundle(ctx context.Context, phone string, conv *models.ConversationContext) error {
	it := r.catalog.TabibChoice("5")
	if it == nil {
		r.send(phone, "O pacote está indisponível no momento. Quer ver os volumes unitários?")
		return r.openTabibUnitList(ctx, phone, conv)
	}

	headline, detail := offer.BuildExt("tabib", true)
	offer.MarkCheckout(conv, r.offerTTLMin)
	conv.Asked = models.AskedNone
	conv.SelectedProduct = it.SKU
	r.save(ctx, phone, conv)

	r.send(phone, fmt.Sprintf("%s\n%s\n\nLink para concluir: %s\nVocê pode conferir no nosso site: %s\nQualquer dúvida, me chama aqui. 🙂",
		headline, detail, it.Checkout, r.siteURL))
	return nil
}

// describeTabibItem shows one volume's description before offering the
// link, so the next yes/link answer can be resolved.
func (r *Responder) describeTabibItem(ctx context.Context, phone string, conv *models.ConversationContext, it *models.CatalogItem) error {
	conv.Asked = models.AskedTabibAfterDesc
	conv.SelectedProduct = it.SKU
	r.save(ctx, phone, conv)

	desc := it.Description
	if desc == "" {
		desc = "Material digital (PDF) com conteúdo prático."
	}
	r.send(phone, fmt.Sprintf("*%s*\n%s\n\nQuer o link para garantir o seu?", it.Name, desc))
	return nil
}

// issueOffer sends the promotional message with the checkout link and
// stamps the checkout stage.
func (r *Responder) issueOffer(ctx context.Context, phone string, conv *models.ConversationContext, it *models.CatalogItem) error {
	headline, detail := offer.Build(it.Name)
	offer.MarkCheckout(conv, r.offerTTLMin)
	conv.Asked = models.AskedNone
	conv.SelectedProduct = it.SKU
	r.save(ctx, phone, conv)

	link := it.Checkout
	if link == "" {
		link = conv.CheckoutURL
	}
	r.send(phone, fmt.Sprintf("%s\n%s\n\nLink para concluir: %s\nSite oficial: %s\nQuer ajuda para finalizar?",
		headline, detail, link, r.siteURL))
	return nil
}

// findTabibByText is FindByText restricted to the tabib family.
func (r *Responder) findTabibByText(text string) []*models.CatalogItem {
	var out []*models.CatalogItem
	for _, it := range r.catalog.FindByText(text) {
		if it.Family == "tabib" {
			out = append(out, it)
		}
	}
	return out
}

// isOption checks stage-local choices against an exact allow-list,
// case-insensitive and trimmed. Substring matching is reserved for the
// product-mention shortcut and the literal "tabib" check.
func isOption(tlow string, options ...string) bool {
	for _, o := range options {
		if tlow == o {
			return true
		}
	}
	return false
}
