package view

type CartItem struct {
	ProductTitle  string `json:"product_title"`
	ProductHandle string `json:"product_handle"`
	VariantID     string `json:"variant_id"`
	VariantTitle  string `json:"variant_title"`
	Qty           int    `json:"quantity"`

	UnitPriceCents int    `json:"unit_price_cents"`
	LineTotalCents int    `json:"line_total_cents"`
	UnitPrice      string `json:"unit_price"`
	LineTotal      string `json:"line_total"`
}

// CartPage is served as HTML or, for JSON clients, as-is.
type CartPage struct {
	ID            string     `json:"id"`
	Items         []CartItem `json:"items"`
	Count         int        `json:"count"`
	Currency      string     `json:"currency"`
	SubtotalCents int        `json:"subtotal_cents"`
	Subtotal      string     `json:"subtotal"`
}
