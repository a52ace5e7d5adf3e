package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/MikeOwino/hydrogen/internal/config"
	"github.com/MikeOwino/hydrogen/internal/http/middleware"
	"github.com/MikeOwino/hydrogen/internal/http/render"
	"github.com/MikeOwino/hydrogen/internal/modules/cart"
	"github.com/MikeOwino/hydrogen/internal/modules/products"
	"github.com/MikeOwino/hydrogen/internal/modules/seo"
	"github.com/MikeOwino/hydrogen/internal/shared/apperr"
	"github.com/MikeOwino/hydrogen/internal/shared/slug"
	"github.com/MikeOwino/hydrogen/pkg/view"
	"github.com/MikeOwino/hydrogen/templates/pages"
)

const addingLabel = "Adding product to your cart"

// ProductsHandler serves the home page listing and product detail pages.
type ProductsHandler struct {
	Repo  products.Repository
	Seo   *seo.Dispatcher
	Store config.Store
}

func NewProductsHandler(repo products.Repository, d *seo.Dispatcher, store config.Store) *ProductsHandler {
	return &ProductsHandler{Repo: repo, Seo: d, Store: store}
}

// Home handles GET /.
func (h *ProductsHandler) Home(c *gin.Context) {
	ctx := c.Request.Context()
	items, err := h.Repo.ListActive(ctx, 24, 0)
	if err != nil {
		middleware.Fail(c, apperr.Wrap(err))
		return
	}

	vm := view.HomePage{Title: h.Store.Name, Products: make([]view.ProductCard, 0, len(items))}
	for _, p := range items {
		card := view.ProductCard{Title: p.Title, Handle: p.Handle}
		if len(p.Images) > 0 {
			card.ImageURL = p.Images[0].URL
		}
		if id, ok := products.ResolveVariantID(products.Selection{}, products.Selection{}, p.Variants); ok {
			if v, ok := findVariant(p.Variants, id); ok {
				card.Price = view.MoneyFromCents(v.PriceCents, v.Currency)
			}
		}
		vm.Products = append(vm.Products, card)
	}

	url := middleware.GetCurrentURL(c)
	head := h.Seo.Head(ctx, defaultSeoData(h.Store), seo.TypeHomepage, seo.Data{"title": h.Store.Name}, url)
	render.Page(c, http.StatusOK, h.Store.Lang, head, pages.Home(vm))
}

// Show handles GET /products/:handle. ?variant= picks the initial variant;
// an empty value means none is selected.
func (h *ProductsHandler) Show(c *gin.Context) {
	handle, ok := slug.Handle(c.Param("handle"))
	if !ok {
		middleware.Fail(c, apperr.NotFoundErr("Product not found."))
		return
	}

	p, err := h.Repo.GetByHandle(c.Request.Context(), handle)
	if err != nil {
		middleware.Fail(c, err)
		return
	}

	var initial products.Selection
	if v, ok := c.GetQuery("variant"); ok {
		initial = selectionFrom(v)
	}
	ctx := products.WithProvider(c.Request.Context(), products.Provider{Product: p, InitialVariant: initial})

	btn := &cart.Button{AccessibleAddingLabel: addingLabel}
	bv := btn.View(ctx, "Add to cart", map[string]string{"class": "btn btn-primary"})
	bv.AddingLabel = addingLabel
	if !initial.IsSet() {
		bv.ProductHandle = p.Handle
	}
	bv.ReturnTo = c.Request.URL.RequestURI()

	selected, _ := products.ProviderFrom(ctx)
	vm := productPage(p, selected, bv)

	head := h.Seo.Head(ctx, defaultSeoData(h.Store), seo.TypeProduct, productSeoData(p), middleware.GetCurrentURL(c))
	render.Page(c, http.StatusOK, h.Store.Lang, head, pages.Product(vm))
}

func productPage(p products.Product, prov products.Provider, btn view.AddToCartButton) view.ProductDetailPage {
	selectedID, _ := prov.SelectedVariantID()

	vm := view.ProductDetailPage{
		Product: view.ProductDetail{
			ID:          p.ID,
			Title:       p.Title,
			Handle:      p.Handle,
			Vendor:      p.Vendor,
			Description: p.Description,
		},
		Variants: make([]view.ProductVariant, 0, len(p.Variants)),
		Button:   btn,
	}
	if len(p.Images) > 0 {
		vm.Product.ImageURL = p.Images[0].URL
	}
	for _, v := range p.Variants {
		price := view.MoneyFromCents(v.PriceCents, v.Currency)
		vm.Variants = append(vm.Variants, view.ProductVariant{
			ID:        v.ID,
			Title:     v.DisplayTitle(),
			Price:     price,
			Available: v.AvailableForSale,
			Selected:  v.ID == selectedID,
		})
		if v.ID == selectedID {
			vm.Product.Price = price
		}
	}
	return vm
}

func findVariant(vs []products.Variant, id string) (products.Variant, bool) {
	for _, v := range vs {
		if v.ID == id {
			return v, true
		}
	}
	return products.Variant{}, false
}
