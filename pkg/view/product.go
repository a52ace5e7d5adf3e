package view

type ProductVariant struct {
	ID        string
	Title     string
	Price     string
	Available bool
	Selected  bool
}

type ProductDetail struct {
	ID          string
	Title       string
	Handle      string
	Vendor      string
	Description string
	Price       string
	ImageURL    string
}

type ProductDetailPage struct {
	Product  ProductDetail
	Variants []ProductVariant
	Button   AddToCartButton
}

type ProductCard struct {
	Title    string
	Handle   string
	Price    string
	ImageURL string
}

type HomePage struct {
	Title    string
	Products []ProductCard
}
