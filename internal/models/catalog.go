package models

// CatalogItem is one sellable product from the catalog source.
type CatalogItem struct {
	SKU         string   `json:"sku"`
	Name        string   `json:"name"`
	Family      string   `json:"family"`
	Checkout    string   `json:"checkout"`
	Image       string   `json:"image,omitempty"`
	Description string   `json:"description,omitempty"`
	Aliases     []string `json:"aliases,omitempty"`
}
