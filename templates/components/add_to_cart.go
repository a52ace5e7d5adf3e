package components

import (
	"context"
	"io"
	"strconv"

	"github.com/a-h/templ"

	"github.com/MikeOwino/hydrogen/pkg/view"
	"github.com/MikeOwino/hydrogen/templates/shared"
)

// AddToCartButton renders a POST form with the add-to-cart button. Without a
// resolved variant the button is disabled and the form carries no variant.
func AddToCartButton(b view.AddToCartButton) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		hw := &shared.Writer{W: w}

		action := b.Action
		if action == "" {
			action = "/cart/add"
		}
		hw.Raw(`<form method="post" action="` + templ.EscapeString(action) + `" data-add-to-cart`)
		if b.AddingLabel != "" {
			hw.Raw(` data-adding-label="` + templ.EscapeString(b.AddingLabel) + `"`)
		}
		hw.Raw(">")

		if b.ProductHandle != "" {
			hidden(hw, "product_handle", b.ProductHandle)
		}
		if b.VariantID != "" {
			hidden(hw, "variant_id", b.VariantID)
		}
		qty := b.Quantity
		if qty <= 0 {
			qty = 1
		}
		hidden(hw, "qty", strconv.Itoa(qty))
		if b.ReturnTo != "" {
			hidden(hw, "return_to", b.ReturnTo)
		}

		hw.Raw(`<button type="submit"` + shared.Attrs(b.Attrs, "type", "disabled"))
		if b.Disabled {
			hw.Raw(` disabled`)
		}
		hw.Raw(">")
		hw.Text(b.Label)
		hw.Raw("</button>")

		if b.Adding && b.StatusMessage != "" {
			hw.Raw(`<p class="sr-only" role="status" aria-live="polite">`)
			hw.Text(b.StatusMessage)
			hw.Raw("</p>")
		}
		hw.Raw("</form>")
		return hw.Err
	})
}

func hidden(hw *shared.Writer, name, value string) {
	hw.Raw(`<input type="hidden" name="` + templ.EscapeString(name) + `" value="` + templ.EscapeString(value) + `">`)
}
