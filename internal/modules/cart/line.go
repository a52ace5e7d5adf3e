package cart

// Attribute is a free-form key/value stored on a cart line.
type Attribute struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// LineInput references a variant (merchandise) to put in a cart.
type LineInput struct {
	MerchandiseID string      `json:"merchandiseId"`
	Quantity      int         `json:"quantity"`
	Attributes    []Attribute `json:"attributes,omitempty"`
}

type CreateInput struct {
	Lines []LineInput `json:"lines"`
}
