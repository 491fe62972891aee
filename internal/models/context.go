package models

import (
	"encoding/json"
	"time"
)

// Flow identifies which recovery scenario opened the conversation.
type Flow string

const (
	FlowAbandoned  Flow = "abandoned"
	FlowPixPending Flow = "pix_pending"
	FlowUnknown    Flow = "unknown"
)

// Stage is the coarse position in the conversation state machine.
type Stage string

const (
	StageVerify      Stage = "verify"
	StagePickProduct Stage = "pick_product"
	StageTabibMenu   Stage = "tabib_menu"
	StageCheckout    Stage = "checkout"
)

// Asked tags the yes/no question currently pending, so a bare "sim"/"não"
// can be resolved. It also carries the Tabib menu sub-states.
type Asked string

const (
	AskedNone           Asked = ""
	AskedApplyOffer     Asked = "apply_offer"
	AskedResendLink     Asked = "resend_link"
	AskedConfirmDesist  Asked = "confirm_desist"
	AskedTabibMain      Asked = "tabib_main"
	AskedTabibAfterDesc Asked = "tabib_after_desc"
	AskedTabibPickUnit  Asked = "tabib_pick_unit"
)

// ConversationContext is the per-phone-number conversation state. It is
// serialized to JSON under "ctx:<phone>" in the context store.
type ConversationContext struct {
	SchemaVersion int `json:"schema_version"`

	Flow  Flow  `json:"flow"`
	Stage Stage `json:"stage"`

	// Snapshot taken from the triggering checkout event.
	Name            string `json:"name"`
	ProductName     string `json:"product_name"`
	ProductKey      string `json:"product_key"`
	SelectedProduct string `json:"selected_product"`
	CheckoutURL     string `json:"checkout_url"`

	ConfirmedOwner bool   `json:"confirmed_owner"`
	Asked          Asked  `json:"asked,omitempty"`
	LastIntent     string `json:"last_intent,omitempty"`

	OfferExpiresAt *time.Time `json:"offer_expires_at,omitempty"`
	Reminded       bool       `json:"reminded"`
	CreatedAt      time.Time  `json:"created_at"`
}

// ContextSchemaVersion is bumped when the serialized layout changes.
// Decoding is defensive either way: unknown fields are ignored and
// missing fields keep their zero values, so contexts written by an older
// build keep working during a rolling deploy.
const ContextSchemaVersion = 1

// NewContext builds a fresh context at the verify stage.
func NewContext(flow Flow, name, productName, productKey, checkoutURL string) *ConversationContext {
	return &ConversationContext{
		SchemaVersion:   ContextSchemaVersion,
		Flow:            flow,
		Stage:           StageVerify,
		Name:            name,
		ProductName:     productName,
		ProductKey:      productKey,
		SelectedProduct: productKey,
		CheckoutURL:     checkoutURL,
		CreatedAt:       time.Now().UTC(),
	}
}

// Marshal serializes the context for storage.
func (c *ConversationContext) Marshal() ([]byte, error) {
	return json.Marshal(c)
}

// UnmarshalContext decodes a stored context, tolerating older payloads.
func UnmarshalContext(data []byte) (*ConversationContext, error) {
	var ctx ConversationContext
	if err := json.Unmarshal(data, &ctx); err != nil {
		return nil, err
	}
	if ctx.Stage == "" {
		ctx.Stage = StageVerify
	}
	if ctx.Flow == "" {
		ctx.Flow = FlowUnknown
	}
	return &ctx, nil
}
