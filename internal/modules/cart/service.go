package cart

import (
	"context"
	"errors"
	"strings"

	"github.com/MikeOwino/hydrogen/pkg/view"
)

var ErrMixedCurrency = errors.New("cart contains multiple currencies")

// PageSource loads the rows behind a cart page.
type PageSource interface {
	CartRows(ctx context.Context, cartID string) ([]PageRow, error)
}

type PageRow struct {
	VariantID     string `gorm:"column:variant_id"`
	VariantTitle  string `gorm:"column:variant_title"`
	Qty           int    `gorm:"column:qty"`
	PriceCents    int    `gorm:"column:price_cents"`
	Currency      string `gorm:"column:currency"`
	ProductTitle  string `gorm:"column:product_title"`
	ProductHandle string `gorm:"column:product_handle"`
}

const cartRowsQuery = `
SELECT
  cl.variant_id AS variant_id,
  v.title       AS variant_title,
  cl.quantity   AS qty,
  v.price_cents AS price_cents,
  v.currency    AS currency,
  p.title       AS product_title,
  p.handle      AS product_handle
FROM cart_lines cl
JOIN product_variants v ON v.id = cl.variant_id
JOIN products p ON p.id = v.product_id
WHERE cl.cart_id = ?
ORDER BY cl.created_at ASC, cl.id ASC;
`

func (r *Repo) CartRows(ctx context.Context, cartID string) ([]PageRow, error) {
	var rows []PageRow
	err := r.db.WithContext(ctx).Raw(cartRowsQuery, cartID).Scan(&rows).Error
	return rows, err
}

type Service struct {
	src PageSource
}

func NewService(src PageSource) *Service {
	return &Service{src: src}
}

func (s *Service) BuildCartPage(ctx context.Context, cartID string) (view.CartPage, error) {
	if cartID == "" {
		return view.CartPage{Items: []view.CartItem{}}, nil
	}
	rows, err := s.src.CartRows(ctx, cartID)
	if err != nil {
		return view.CartPage{}, err
	}
	vm, err := buildCartVM(rows)
	if err != nil {
		return view.CartPage{}, err
	}
	vm.ID = cartID
	return vm, nil
}

func buildCartVM(rows []PageRow) (view.CartPage, error) {
	vm := view.CartPage{Items: make([]view.CartItem, 0, len(rows))}

	currency := ""
	for _, r := range rows {
		if r.Qty <= 0 {
			continue
		}
		cur := strings.ToUpper(strings.TrimSpace(r.Currency))
		if currency == "" {
			currency = cur
		} else if cur != "" && cur != currency {
			return view.CartPage{}, ErrMixedCurrency
		}

		line := r.PriceCents * r.Qty
		vm.SubtotalCents += line
		vm.Count += r.Qty

		vm.Items = append(vm.Items, view.CartItem{
			ProductTitle:   r.ProductTitle,
			ProductHandle:  r.ProductHandle,
			VariantID:      r.VariantID,
			VariantTitle:   r.VariantTitle,
			Qty:            r.Qty,
			UnitPriceCents: r.PriceCents,
			LineTotalCents: line,
			UnitPrice:      view.MoneyFromCents(r.PriceCents, cur),
			LineTotal:      view.MoneyFromCents(line, cur),
		})
	}

	vm.Currency = currency
	vm.Subtotal = view.MoneyFromCents(vm.SubtotalCents, currency)
	return vm, nil
}
