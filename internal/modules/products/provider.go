package products

import "context"

type providerKey struct{}

// Provider carries the product being viewed and the variant the page
// preselected for it.
type Provider struct {
	Product        Product
	InitialVariant Selection
}

// SelectedVariantID resolves the provider's variant without an explicit choice.
func (p Provider) SelectedVariantID() (string, bool) {
	return ResolveVariantID(Selection{}, p.InitialVariant, p.Product.Variants)
}

// WithProvider returns a context carrying p. Lookups see the most recently
// attached provider.
func WithProvider(ctx context.Context, p Provider) context.Context {
	return context.WithValue(ctx, providerKey{}, p)
}

func ProviderFrom(ctx context.Context) (Provider, bool) {
	p, ok := ctx.Value(providerKey{}).(Provider)
	return p, ok
}
