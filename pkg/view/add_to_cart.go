package view

// AddToCartButton is the render model for the add-to-cart form.
type AddToCartButton struct {
	Label     string
	VariantID string
	Quantity  int
	Disabled  bool
	Adding    bool

	// StatusMessage is read out by screen readers while Adding.
	StatusMessage string
	// AddingLabel is handed to the client so it can announce progress
	// after the form is submitted.
	AddingLabel string

	// ProductHandle lets the server resolve a variant the form does not name.
	ProductHandle string

	Action   string
	ReturnTo string
	Attrs    map[string]string
}
