package models

// CartPandaPayload is the body the checkout platform posts on
// cart-abandonment and pending-payment events.
type CartPandaPayload struct {
	ID            string  `json:"id"`
	EventID       string  `json:"event_id"`
	Event         string  `json:"event"`
	EventType     string  `json:"event_type"`
	CheckoutID    string  `json:"checkout_id"`
	Amount        float64 `json:"amount"`
	Currency      string  `json:"currency"`
	PaymentStatus string  `json:"payment_status"`
	CheckoutURL   string  `json:"checkout_url"`

	Customer struct {
		Name  string `json:"name"`
		Phone string `json:"phone"`
		Email string `json:"email"`
	} `json:"customer"`

	Product struct {
		ID          string `json:"id"`
		Name        string `json:"name"`
		CheckoutURL string `json:"checkout_url"`
	} `json:"product"`

	Order struct {
		ID    string  `json:"id"`
		Total float64 `json:"total"`
	} `json:"order"`
}
