package cart

import (
	"context"
	"errors"
)

var ErrNoActions = errors.New("cart: no actions configured")

// Dispatch adds variantID to the current cart, or creates a cart holding it
// when there is none yet. Exactly one mutation runs per call.
func Dispatch(ctx context.Context, st State, variantID string, quantity int) error {
	if st.Actions == nil {
		return ErrNoActions
	}
	if quantity <= 0 {
		quantity = 1
	}
	line := LineInput{MerchandiseID: variantID, Quantity: quantity}

	if st.HasCart() {
		return st.Actions.LinesAdd(ctx, []LineInput{line})
	}
	return st.Actions.CartCreate(ctx, CreateInput{Lines: []LineInput{line}})
}
