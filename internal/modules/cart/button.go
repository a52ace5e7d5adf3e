package cart

import (
	"context"
	"sync"

	"github.com/MikeOwino/hydrogen/internal/modules/products"
	"github.com/MikeOwino/hydrogen/pkg/view"
)

// Button is the state behind an add-to-cart control. Its variant comes from
// Variant when set, otherwise from the products.Provider in the context.
type Button struct {
	Variant  products.Selection
	Quantity int
	// AccessibleAddingLabel is announced to assistive technology while a
	// mutation is in flight.
	AccessibleAddingLabel string

	mu     sync.Mutex
	adding bool
}

func (b *Button) VariantID(ctx context.Context) (string, bool) {
	var initial products.Selection
	var variants []products.Variant
	if p, ok := products.ProviderFrom(ctx); ok {
		initial = p.InitialVariant
		variants = p.Product.Variants
	}
	return products.ResolveVariantID(b.Variant, initial, variants)
}

func (b *Button) Adding() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.adding
}

// Disabled is true when no variant resolves or a mutation is in flight.
func (b *Button) Disabled(ctx context.Context) bool {
	if _, ok := b.VariantID(ctx); !ok {
		return true
	}
	return b.Adding()
}

// Click dispatches the cart mutation for the resolved variant using the
// cart State in ctx. It reports false without mutating anything when the
// button is disabled, including while an earlier click is still in flight.
func (b *Button) Click(ctx context.Context) (bool, error) {
	variantID, ok := b.VariantID(ctx)
	if !ok {
		return false, nil
	}

	b.mu.Lock()
	if b.adding {
		b.mu.Unlock()
		return false, nil
	}
	b.adding = true
	b.mu.Unlock()

	defer func() {
		b.mu.Lock()
		b.adding = false
		b.mu.Unlock()
	}()

	st, _ := StateFrom(ctx)
	return true, Dispatch(ctx, st, variantID, b.Quantity)
}

// View snapshots the button for rendering. attrs pass through to the
// rendered element.
func (b *Button) View(ctx context.Context, label string, attrs map[string]string) view.AddToCartButton {
	variantID, _ := b.VariantID(ctx)
	adding := b.Adding()
	qty := b.Quantity
	if qty <= 0 {
		qty = 1
	}
	vm := view.AddToCartButton{
		Label:     label,
		VariantID: variantID,
		Quantity:  qty,
		Disabled:  b.Disabled(ctx),
		Adding:    adding,
		Attrs:     attrs,
	}
	if adding {
		vm.StatusMessage = b.AccessibleAddingLabel
	}
	return vm
}
