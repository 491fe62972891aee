package services

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/paginatto/paginatto-bot/internal/catalog"
	"github.com/paginatto/paginatto-bot/internal/models"
	"github.com/paginatto/paginatto-bot/internal/storage"
)

const testPhone = "5511988887777"

type fakeSender struct {
	sent []string
}

func (f *fakeSender) SendText(phone, message string) error {
	f.sent = append(f.sent, message)
	return nil
}

func (f *fakeSender) last() string {
	if len(f.sent) == 0 {
		return ""
	}
	return f.sent[len(f.sent)-1]
}

func newTestResponder() (*Responder, *fakeSender, *storage.MemoryStore) {
	sender := &fakeSender{}
	store := storage.NewMemoryStore()
	idx := catalog.New(catalog.DefaultItems())
	return NewResponder(store, sender, idx), sender, store
}

func TestStartRecoveryOpensVerifyStage(t *testing.T) {
	r, sender, store := newTestResponder()
	ctx := context.Background()

	err := r.StartRecovery(ctx, testPhone, models.FlowAbandoned, "Maria", "Tabib Volume 2", "https://pay.example/t2")
	if err != nil {
		t.Fatalf("StartRecovery: %v", err)
	}

	conv, err := store.Read(ctx, testPhone)
	if err != nil || conv == nil {
		t.Fatalf("context not stored: (%v, %v)", conv, err)
	}
	if conv.Stage != models.StageVerify || conv.Flow != models.FlowAbandoned {
		t.Errorf("stage/flow = %s/%s, want verify/abandoned", conv.Stage, conv.Flow)
	}
	if conv.ProductKey != "tabib" {
		t.Errorf("product key = %q, want tabib", conv.ProductKey)
	}
	if !strings.Contains(sender.last(), "Esse número é de Maria") {
		t.Errorf("opening message missing ownership question: %q", sender.last())
	}
}

func TestVerifyStageConfirmation(t *testing.T) {
	r, sender, store := newTestResponder()
	ctx := context.Background()

	if err := r.StartRecovery(ctx, testPhone, models.FlowAbandoned, "Maria", "Tabib Volume 2", ""); err != nil {
		t.Fatalf("StartRecovery: %v", err)
	}
	if err := r.HandleMessage(ctx, testPhone, "sim"); err != nil {
		t.Fatalf("HandleMessage: %v", err)
	}

	conv, _ := store.Read(ctx, testPhone)
	if conv == nil || !conv.ConfirmedOwner || conv.Stage != models.StagePickProduct {
		t.Fatalf("expected confirmed_owner at pick_product, got %+v", conv)
	}
	if !strings.Contains(sender.last(), "Qual produto") {
		t.Errorf("reply should prompt for product: %q", sender.last())
	}
}

func TestVerifyStageDenialClearsContext(t *testing.T) {
	r, _, store := newTestResponder()
	ctx := context.Background()

	if err := r.StartRecovery(ctx, testPhone, models.FlowAbandoned, "Maria", "Tabib Volume 2", ""); err != nil {
		t.Fatalf("StartRecovery: %v", err)
	}
	if err := r.HandleMessage(ctx, testPhone, "2"); err != nil {
		t.Fatalf("HandleMessage: %v", err)
	}

	if conv, _ := store.Read(ctx, testPhone); conv != nil {
		t.Fatalf("context should be cleared after denial, got %+v", conv)
	}
}

func TestPickProductResolvesVolumeAndIssuesOffer(t *testing.T) {
	r, sender, store := newTestResponder()
	ctx := context.Background()

	if err := r.StartRecovery(ctx, testPhone, models.FlowAbandoned, "Maria", "Tabib Volume 2", ""); err != nil {
		t.Fatalf("StartRecovery: %v", err)
	}
	if err := r.HandleMessage(ctx, testPhone, "sim"); err != nil {
		t.Fatalf("confirm: %v", err)
	}
	if err := r.HandleMessage(ctx, testPhone, "quero o volume 3"); err != nil {
		t.Fatalf("pick: %v", err)
	}

	conv, _ := store.Read(ctx, testPhone)
	if conv == nil || conv.Stage != models.StageCheckout {
		t.Fatalf("expected checkout stage, got %+v", conv)
	}
	if conv.SelectedProduct != "TABIB_V3" {
		t.Errorf("selected product = %q, want TABIB_V3", conv.SelectedProduct)
	}
	if conv.OfferExpiresAt == nil {
		t.Fatal("expected offer expiry stamp")
	}
	until := time.Until(*conv.OfferExpiresAt)
	if until < 59*time.Minute || until > 61*time.Minute {
		t.Errorf("offer expiry %v from now, want ~60m", until)
	}

	v3 := r.catalog.BySKU["TABIB_V3"]
	if !strings.Contains(sender.last(), v3.Checkout) {
		t.Errorf("reply missing checkout link %q: %q", v3.Checkout, sender.last())
	}
}

func TestStopEndsConversationFromAnyStage(t *testing.T) {
	r, sender, store := newTestResponder()
	ctx := context.Background()

	if err := r.StartRecovery(ctx, testPhone, models.FlowAbandoned, "Maria", "Tabib Volume 2", ""); err != nil {
		t.Fatalf("StartRecovery: %v", err)
	}
	if err := r.HandleMessage(ctx, testPhone, "sim"); err != nil {
		t.Fatalf("confirm: %v", err)
	}

	// "pare" at pick_product must not be swallowed by the catalog lookup.
	if err := r.HandleMessage(ctx, testPhone, "pare"); err != nil {
		t.Fatalf("stop: %v", err)
	}
	if !strings.Contains(sender.last(), "encerrar") {
		t.Errorf("expected farewell, got %q", sender.last())
	}
	if conv, _ := store.Read(ctx, testPhone); conv != nil {
		t.Fatalf("context should be deleted, got %+v", conv)
	}

	// The next message starts over with no history.
	if err := r.HandleMessage(ctx, testPhone, "oi"); err != nil {
		t.Fatalf("fresh message: %v", err)
	}
	if !strings.Contains(sender.last(), "Como posso ajudar") {
		t.Errorf("expected fresh greeting, got %q", sender.last())
	}
}

func TestExpiredOfferPromptsRenewal(t *testing.T) {
	r, sender, store := newTestResponder()
	ctx := context.Background()

	conv := models.NewContext(models.FlowAbandoned, "Maria", "Tabib Volume 2", "tabib", "https://pay.example/t2")
	conv.ConfirmedOwner = true
	conv.Stage = models.StageCheckout
	past := time.Now().UTC().Add(-5 * time.Minute)
	conv.OfferExpiresAt = &past
	if err := store.Store(ctx, testPhone, conv, storage.CreateTTL); err != nil {
		t.Fatalf("seed: %v", err)
	}

	if err := r.HandleMessage(ctx, testPhone, "oi"); err != nil {
		t.Fatalf("HandleMessage: %v", err)
	}

	got, _ := store.Read(ctx, testPhone)
	if got == nil || got.Stage != models.StageCheckout {
		t.Fatalf("stage should stay checkout, got %+v", got)
	}
	if got.Asked != models.AskedApplyOffer {
		t.Errorf("asked = %q, want apply_offer", got.Asked)
	}
	if !strings.Contains(sender.last(), "expirou") {
		t.Errorf("expected renewal prompt, got %q", sender.last())
	}

	// "sim" answers the renewal question instead of re-triggering the
	// expired prompt.
	if err := r.HandleMessage(ctx, testPhone, "sim"); err != nil {
		t.Fatalf("renew: %v", err)
	}
	got, _ = store.Read(ctx, testPhone)
	if got.Asked != models.AskedNone {
		t.Errorf("asked should clear after renewal, got %q", got.Asked)
	}
	if got.OfferExpiresAt == nil || !got.OfferExpiresAt.After(time.Now().UTC()) {
		t.Error("offer expiry should be renewed into the future")
	}
}

func TestTabibMenuFlow(t *testing.T) {
	r, sender, store := newTestResponder()
	ctx := context.Background()

	if err := r.StartRecovery(ctx, testPhone, models.FlowAbandoned, "Maria", "Tabib Volume 2", ""); err != nil {
		t.Fatalf("StartRecovery: %v", err)
	}
	if err := r.HandleMessage(ctx, testPhone, "sim"); err != nil {
		t.Fatalf("confirm: %v", err)
	}

	if err := r.HandleMessage(ctx, testPhone, "tabib"); err != nil {
		t.Fatalf("open menu: %v", err)
	}
	conv, _ := store.Read(ctx, testPhone)
	if conv.Stage != models.StageTabibMenu || conv.Asked != models.AskedTabibMain {
		t.Fatalf("expected tabib_menu/tabib_main, got %s/%s", conv.Stage, conv.Asked)
	}

	if err := r.HandleMessage(ctx, testPhone, "2"); err != nil {
		t.Fatalf("unit list: %v", err)
	}
	conv, _ = store.Read(ctx, testPhone)
	if conv.Asked != models.AskedTabibPickUnit {
		t.Fatalf("expected tabib_pick_unit, got %q", conv.Asked)
	}
	if !strings.Contains(sender.last(), "Tabib Volume 1") {
		t.Errorf("unit menu missing volumes: %q", sender.last())
	}

	if err := r.HandleMessage(ctx, testPhone, "3"); err != nil {
		t.Fatalf("pick unit: %v", err)
	}
	conv, _ = store.Read(ctx, testPhone)
	if conv.Stage != models.StageCheckout || conv.SelectedProduct != "TABIB_V3" {
		t.Fatalf("expected checkout with TABIB_V3, got %+v", conv)
	}
}

func TestTabibBundleChoice(t *testing.T) {
	r, sender, store := newTestResponder()
	ctx := context.Background()

	if err := r.StartRecovery(ctx, testPhone, models.FlowAbandoned, "Maria", "Tabib Volume 2", ""); err != nil {
		t.Fatalf("StartRecovery: %v", err)
	}
	if err := r.HandleMessage(ctx, testPhone, "sim"); err != nil {
		t.Fatalf("confirm: %v", err)
	}
	if err := r.HandleMessage(ctx, testPhone, "tabib"); err != nil {
		t.Fatalf("open menu: %v", err)
	}
	if err := r.HandleMessage(ctx, testPhone, "1"); err != nil {
		t.Fatalf("bundle: %v", err)
	}

	conv, _ := store.Read(ctx, testPhone)
	if conv.Stage != models.StageCheckout || conv.SelectedProduct != "TABIB_24_25_BUNDLE" {
		t.Fatalf("expected checkout with bundle, got %+v", conv)
	}
	if !strings.Contains(sender.last(), "19,90") {
		t.Errorf("bundle reply missing price line: %q", sender.last())
	}
}

func TestUnknownNumberGetsGreetingAndMinimalContext(t *testing.T) {
	r, sender, store := newTestResponder()
	ctx := context.Background()

	if err := r.HandleMessage(ctx, testPhone, "oi, tudo bem?"); err != nil {
		t.Fatalf("HandleMessage: %v", err)
	}
	if !strings.Contains(sender.last(), "Como posso ajudar") {
		t.Errorf("expected greeting, got %q", sender.last())
	}

	conv, _ := store.Read(ctx, testPhone)
	if conv == nil || !conv.ConfirmedOwner || conv.Flow != models.FlowUnknown {
		t.Fatalf("expected minimal confirmed context, got %+v", conv)
	}
}

func TestTrustQuestionGetsLegalIdentity(t *testing.T) {
	r, sender, _ := newTestResponder()
	ctx := context.Background()

	if err := r.StartRecovery(ctx, testPhone, models.FlowAbandoned, "Maria", "Tabib Volume 2", ""); err != nil {
		t.Fatalf("StartRecovery: %v", err)
	}
	if err := r.HandleMessage(ctx, testPhone, "sim"); err != nil {
		t.Fatalf("confirm: %v", err)
	}
	if err := r.HandleMessage(ctx, testPhone, "quero o volume 3"); err != nil {
		t.Fatalf("pick: %v", err)
	}
	if err := r.HandleMessage(ctx, testPhone, "isso não é golpe?"); err != nil {
		t.Fatalf("trust: %v", err)
	}

	if !strings.Contains(sender.last(), "CNPJ") {
		t.Errorf("trust reply should carry the CNPJ, got %q", sender.last())
	}
}

func TestPickProductDoesNotOfferOnStopwordTokens(t *testing.T) {
	r, sender, store := newTestResponder()
	ctx := context.Background()

	if err := r.StartRecovery(ctx, testPhone, models.FlowAbandoned, "Maria", "Tabib Volume 2", ""); err != nil {
		t.Fatalf("StartRecovery: %v", err)
	}
	if err := r.HandleMessage(ctx, testPhone, "sim"); err != nil {
		t.Fatalf("confirm: %v", err)
	}

	// Stray article/accent fragments must not hit the alias index; a
	// question with no product words gets the clarifying prompt, not a
	// random catalog offer.
	if err := r.HandleMessage(ctx, testPhone, "isso não é golpe?"); err != nil {
		t.Fatalf("HandleMessage: %v", err)
	}

	if strings.Contains(sender.last(), "Link para concluir") {
		t.Fatalf("no offer should be issued, got %q", sender.last())
	}
	if !strings.Contains(sender.last(), "Não entendi o produto") {
		t.Errorf("expected the clarifying prompt, got %q", sender.last())
	}
	conv, _ := store.Read(ctx, testPhone)
	if conv == nil || conv.Stage != models.StagePickProduct || conv.OfferExpiresAt != nil {
		t.Fatalf("stage should stay pick_product without an offer stamp, got %+v", conv)
	}
}

func TestPixPendingFallbackMentionsQR(t *testing.T) {
	r, sender, store := newTestResponder()
	ctx := context.Background()

	conv := models.NewContext(models.FlowPixPending, "Maria", "Tabib Volume 2", "tabib", "")
	conv.ConfirmedOwner = true
	conv.Stage = models.StageCheckout
	if err := store.Store(ctx, testPhone, conv, storage.CreateTTL); err != nil {
		t.Fatalf("seed: %v", err)
	}

	// A bare yes with nothing pending falls through to the flow fallback.
	if err := r.HandleMessage(ctx, testPhone, "sim"); err != nil {
		t.Fatalf("HandleMessage: %v", err)
	}
	if !strings.Contains(sender.last(), "PIX pendente") {
		t.Errorf("expected pix fallback, got %q", sender.last())
	}
}
