package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/singleflight"

	"github.com/MikeOwino/hydrogen/internal/config"
	"github.com/MikeOwino/hydrogen/internal/http/cartcookie"
	"github.com/MikeOwino/hydrogen/internal/http/flash"
	"github.com/MikeOwino/hydrogen/internal/http/middleware"
	"github.com/MikeOwino/hydrogen/internal/http/render"
	"github.com/MikeOwino/hydrogen/internal/http/validation"
	"github.com/MikeOwino/hydrogen/internal/metrics"
	"github.com/MikeOwino/hydrogen/internal/modules/cart"
	"github.com/MikeOwino/hydrogen/internal/modules/products"
	"github.com/MikeOwino/hydrogen/internal/modules/seo"
	"github.com/MikeOwino/hydrogen/internal/shared/apperr"
	"github.com/MikeOwino/hydrogen/internal/shared/slug"
	"github.com/MikeOwino/hydrogen/pkg/view"
	"github.com/MikeOwino/hydrogen/templates/pages"
)

// CartHandler handles GET /cart and POST /cart/add.
type CartHandler struct {
	Products products.Repository
	Carts    cart.Store
	Pages    *cart.Service
	Flash    *flash.Codec
	CK       *cartcookie.Codec
	Seo      *seo.Dispatcher
	Logger   *slog.Logger
	Store    config.Store
	Metrics  *metrics.Metrics

	// collapses duplicate submissions for the same cart
	flight singleflight.Group
}

func NewCartHandler(
	prods products.Repository,
	carts cart.Store,
	svc *cart.Service,
	flashCodec *flash.Codec,
	ck *cartcookie.Codec,
	d *seo.Dispatcher,
	logger *slog.Logger,
	store config.Store,
) *CartHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &CartHandler{
		Products: prods,
		Carts:    carts,
		Pages:    svc,
		Flash:    flashCodec,
		CK:       ck,
		Seo:      d,
		Logger:   logger,
		Store:    store,
	}
}

type addToCartForm struct {
	ProductHandle string `form:"product_handle" binding:"omitempty,max=255"`
	Qty           int    `form:"qty" binding:"omitempty,min=1,max=99"`
	ReturnTo      string `form:"return_to" binding:"omitempty,max=2048"`
}

type addResult struct {
	cartID string
	added  bool
}

// Add handles POST /cart/add. A missing variant_id leaves the choice to the
// product named by product_handle; an empty variant_id means none.
func (h *CartHandler) Add(c *gin.Context) {
	var in addToCartForm
	if err := c.ShouldBind(&in); err != nil {
		h.Metrics.CartAdd(metrics.CartRejected)
		middleware.Fail(c, apperr.InvalidErr("Please check the form.", validation.FromBindError(err, &in)))
		return
	}
	ctx := c.Request.Context()

	var explicit products.Selection
	if v, ok := c.GetPostForm("variant_id"); ok {
		explicit = selectionFrom(v)
	}

	if in.ProductHandle != "" {
		handle, ok := slug.Handle(in.ProductHandle)
		if !ok {
			middleware.Fail(c, apperr.NotFoundErr("Product not found."))
			return
		}
		p, err := h.Products.GetByHandle(ctx, handle)
		if err != nil {
			middleware.Fail(c, err)
			return
		}
		ctx = products.WithProvider(ctx, products.Provider{Product: p})
	}

	cartID, err := h.currentCart(c)
	if err != nil {
		middleware.Fail(c, err)
		return
	}

	btn := &cart.Button{Variant: explicit, Quantity: in.Qty, AccessibleAddingLabel: addingLabel}
	variantID, ok := btn.VariantID(ctx)
	if !ok {
		h.Metrics.CartAdd(metrics.CartRejected)
		middleware.Fail(c, apperr.InvalidErr("Choose a variant first.", map[string]string{"variant_id": "Choose a variant."}))
		return
	}

	res, joined, err := h.dispatch(ctx, btn, cartID, variantID, in.Qty)
	if err != nil {
		h.Metrics.CartAdd(metrics.CartFailed)
		middleware.Fail(c, err)
		return
	}
	switch {
	case joined:
		h.Metrics.CartAdd(metrics.CartCollapsed)
		h.Logger.DebugContext(ctx, "add_to_cart_collapsed", slog.String("cart_id", res.cartID), slog.String("variant_id", variantID))
	case res.cartID != cartID:
		h.Metrics.CartAdd(metrics.CartCreated)
	default:
		h.Metrics.CartAdd(metrics.CartLineAdded)
	}
	if res.cartID != "" && res.cartID != cartID {
		h.CK.Set(c, res.cartID)
	}

	if middleware.WantsJSON(c) {
		c.JSON(http.StatusOK, gin.H{"cart_id": res.cartID, "variant_id": variantID, "added": res.added})
		return
	}
	render.RedirectWithFlash(c, h.Flash, safeReturnTo(in.ReturnTo, "/cart"), view.FlashSuccess, "Added to cart.")
}

// dispatch runs the add. Identical submissions against the same existing
// cart share one mutation; joined reports whether this caller rode along on
// another request's call. Requests without a cart never share.
func (h *CartHandler) dispatch(ctx context.Context, btn *cart.Button, cartID, variantID string, qty int) (res addResult, joined bool, err error) {
	if cartID == "" {
		res, err = h.add(ctx, btn, cartID)
		return res, false, err
	}
	ran := false
	v, err, _ := h.flight.Do(flightKey(cartID, variantID, qty), func() (any, error) {
		ran = true
		// joined callers must not fail because the first client went away
		return h.add(context.WithoutCancel(ctx), btn, cartID)
	})
	if err != nil {
		return addResult{}, !ran, err
	}
	return v.(addResult), !ran, nil
}

func (h *CartHandler) add(ctx context.Context, btn *cart.Button, cartID string) (addResult, error) {
	sess := &cart.Session{Store: h.Carts, CartID: cartID, Logger: h.Logger}
	ctx = cart.WithState(ctx, sess.State())
	added, err := btn.Click(ctx)
	if err != nil {
		return addResult{}, err
	}
	return addResult{cartID: sess.CartID, added: added}, nil
}

// currentCart returns the cart id from the cookie, dropping ids whose cart
// no longer exists.
func (h *CartHandler) currentCart(c *gin.Context) (string, error) {
	id, ok := h.CK.CartID(c)
	if !ok {
		return "", nil
	}
	if _, err := h.Carts.Get(c.Request.Context(), id); err != nil {
		if apperr.Is(err, apperr.NotFound) {
			h.CK.Clear(c)
			return "", nil
		}
		return "", err
	}
	return id, nil
}

func flightKey(cartID, variantID string, qty int) string {
	return cartID + "|" + variantID + "|" + strconv.Itoa(qty)
}

// Get handles GET /cart.
func (h *CartHandler) Get(c *gin.Context) {
	ctx := c.Request.Context()
	cartID, err := h.currentCart(c)
	if err != nil {
		middleware.Fail(c, err)
		return
	}

	vm, err := h.Pages.BuildCartPage(ctx, cartID)
	if err != nil {
		middleware.Fail(c, apperr.Wrap(err))
		return
	}

	if middleware.WantsJSON(c) {
		c.JSON(http.StatusOK, vm)
		return
	}
	head := h.Seo.Head(ctx, defaultSeoData(h.Store), seo.TypePage, seo.Data{"title": "Cart"}, middleware.GetCurrentURL(c))
	render.Page(c, http.StatusOK, h.Store.Lang, head, pages.Cart(vm))
}
