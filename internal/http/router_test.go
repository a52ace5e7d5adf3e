package http

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MikeOwino/hydrogen/internal/config"
	"github.com/MikeOwino/hydrogen/internal/http/cartcookie"
	"github.com/MikeOwino/hydrogen/internal/modules/cart"
	"github.com/MikeOwino/hydrogen/internal/modules/content"
	"github.com/MikeOwino/hydrogen/internal/modules/products"
	"github.com/MikeOwino/hydrogen/internal/shared/apperr"
	"github.com/MikeOwino/hydrogen/internal/storage"
)

func init() { gin.SetMode(gin.TestMode) }

const cookieSecret = "cart-secret-0123456789"

var testCfg = config.Config{
	Addr:             ":0",
	DBDSN:            "unused",
	PublicBaseURL:    "https://shop.example",
	CartCookieName:   "hydrogen_cart",
	CartCookieSecret: cookieSecret,
	FlashSecret:      "flash-secret-0123456789",
	Store:            config.Store{Name: "Hydrogen", Description: "Boards", Lang: "en"},
}

var board = products.Product{
	ID:     "p1",
	Title:  "Board",
	Handle: "board",
	Vendor: "Snowdevil",
	Status: "active",
	Images: []products.Image{{ID: "i1", ProductID: "p1", URL: "https://cdn.example/board.png"}},
	Variants: []products.Variant{
		{ID: "v1", ProductID: "p1", Title: "Small", PriceCents: 1000, Currency: "USD", AvailableForSale: false},
		{ID: "v2", ProductID: "p1", Title: "Large", PriceCents: 1200, Currency: "USD", AvailableForSale: true},
	},
}

type fakeCatalog struct{ items []products.Product }

func (f *fakeCatalog) ListActive(ctx context.Context, limit, offset int) ([]products.Product, error) {
	return f.items, nil
}

func (f *fakeCatalog) GetByHandle(ctx context.Context, handle string) (products.Product, error) {
	for _, p := range f.items {
		if p.Handle == handle {
			return p, nil
		}
	}
	return products.Product{}, apperr.NotFoundErr("Product not found.")
}

type fakeCarts struct {
	mu      sync.Mutex
	catalog *fakeCatalog
	carts   map[string][]cart.LineInput
	creates int
	adds    int

	// when set, Create and AddLines signal entered and wait for release
	entered chan struct{}
	release chan struct{}
}

func (f *fakeCarts) gate(ctx context.Context) error {
	if f.entered != nil {
		f.entered <- struct{}{}
		<-f.release
	}
	return ctx.Err()
}

func newFakeCarts(cat *fakeCatalog) *fakeCarts {
	return &fakeCarts{catalog: cat, carts: map[string][]cart.LineInput{}}
}

func (f *fakeCarts) Create(ctx context.Context, lines []cart.LineInput) (cart.Cart, error) {
	if err := f.gate(ctx); err != nil {
		return cart.Cart{}, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.creates++
	id := fmt.Sprintf("cart-%d", f.creates)
	f.carts[id] = append([]cart.LineInput(nil), lines...)
	return cart.Cart{ID: id, Status: cart.StatusOpen}, nil
}

func (f *fakeCarts) AddLines(ctx context.Context, cartID string, lines []cart.LineInput) error {
	if err := f.gate(ctx); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.carts[cartID]; !ok {
		return apperr.NotFoundErr("Cart not found.")
	}
	f.adds++
	f.carts[cartID] = append(f.carts[cartID], lines...)
	return nil
}

func (f *fakeCarts) Get(ctx context.Context, cartID string) (cart.Cart, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.carts[cartID]; !ok {
		return cart.Cart{}, apperr.NotFoundErr("Cart not found.")
	}
	return cart.Cart{ID: cartID, Status: cart.StatusOpen}, nil
}

func (f *fakeCarts) CartRows(ctx context.Context, cartID string) ([]cart.PageRow, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var rows []cart.PageRow
	for _, l := range f.carts[cartID] {
		for _, p := range f.catalog.items {
			for _, v := range p.Variants {
				if v.ID == l.MerchandiseID {
					rows = append(rows, cart.PageRow{
						VariantID: v.ID, VariantTitle: v.Title, Qty: l.Quantity,
						PriceCents: v.PriceCents, Currency: v.Currency,
						ProductTitle: p.Title, ProductHandle: p.Handle,
					})
				}
			}
		}
	}
	return rows, nil
}

func (f *fakeCarts) lines(id string) []cart.LineInput {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]cart.LineInput(nil), f.carts[id]...)
}

type fakeContent struct{}

func (fakeContent) CollectionByHandle(ctx context.Context, handle string) (content.Collection, error) {
	if handle != "winter" {
		return content.Collection{}, apperr.NotFoundErr("Collection not found.")
	}
	return content.Collection{ID: "c1", Handle: "winter", Title: "Winter", Description: "Cold gear", ImageURL: "https://cdn.example/winter.png"}, nil
}

func (fakeContent) PageByHandle(ctx context.Context, handle string) (content.Page, error) {
	if handle != "about" {
		return content.Page{}, apperr.NotFoundErr("Page not found.")
	}
	return content.Page{ID: "pg1", Handle: "about", Title: "About us", Body: "We make boards.", SeoDescription: "Who we are"}, nil
}

type testServer struct {
	router http.Handler
	carts  *fakeCarts
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	cat := &fakeCatalog{items: []products.Product{board}}
	carts := newFakeCarts(cat)
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	r := NewRouterWith(logger, testCfg, Deps{
		Products:  cat,
		Carts:     carts,
		CartPages: carts,
		Content:   fakeContent{},
	})
	return &testServer{router: r, carts: carts}
}

func (s *testServer) get(path string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func (s *testServer) post(path string, form url.Values, accept string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if accept != "" {
		req.Header.Set("Accept", accept)
	}
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func cartCookie(rec *httptest.ResponseRecorder) *http.Cookie {
	for _, c := range rec.Result().Cookies() {
		if c.Name == testCfg.CartCookieName && c.Value != "" {
			return c
		}
	}
	return nil
}

func TestProductPage(t *testing.T) {
	s := newTestServer(t)

	rec := s.get("/products/board")

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `<meta property="og:url" content="https://shop.example/products/board">`)
	assert.Contains(t, body, "<title>Board - Hydrogen</title>")
	assert.Contains(t, body, `<meta property="og:type" content="og:product">`)
	assert.Contains(t, body, `<meta property="og:site_name" content="Hydrogen">`)
	assert.Equal(t, 1, strings.Count(body, "<title>"))
	assert.Contains(t, body, `<script type="application/ld+json">`)
	assert.Contains(t, body, `<input type="hidden" name="variant_id" value="v2">`)
	assert.Contains(t, body, `<input type="hidden" name="product_handle" value="board">`)
	assert.Contains(t, body, `data-adding-label="Adding product to your cart"`)
	assert.NotContains(t, body, "disabled")
}

func TestProductPage_InitialVariant(t *testing.T) {
	s := newTestServer(t)

	t.Run("query picks the variant", func(t *testing.T) {
		body := s.get("/products/board?variant=v1").Body.String()
		assert.Contains(t, body, `<input type="hidden" name="variant_id" value="v1">`)
		assert.NotContains(t, body, `name="product_handle"`)
	})

	t.Run("empty query selects none", func(t *testing.T) {
		body := s.get("/products/board?variant=").Body.String()
		assert.NotContains(t, body, `name="variant_id"`)
		assert.Contains(t, body, `<button type="submit" disabled>`)
		assert.NotContains(t, body, "aria-disabled")
	})
}

func TestProductPage_NotFound(t *testing.T) {
	s := newTestServer(t)

	rec := s.get("/products/missing")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "Product not found.")
}

func TestAddToCart_CreatesThenAddsLines(t *testing.T) {
	s := newTestServer(t)

	rec := s.post("/cart/add", url.Values{"variant_id": {"v2"}, "qty": {"2"}}, "")
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/cart", rec.Header().Get("Location"))
	ck := cartCookie(rec)
	require.NotNil(t, ck)
	assert.Equal(t, 1, s.carts.creates)

	rec = s.post("/cart/add", url.Values{"variant_id": {"v1"}}, "", ck)
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Nil(t, cartCookie(rec))
	assert.Equal(t, 1, s.carts.creates)
	assert.Equal(t, 1, s.carts.adds)

	assert.Equal(t, []cart.LineInput{
		{MerchandiseID: "v2", Quantity: 2},
		{MerchandiseID: "v1", Quantity: 1},
	}, s.carts.lines("cart-1"))
}

func TestAddToCart_FallsBackToProduct(t *testing.T) {
	s := newTestServer(t)

	rec := s.post("/cart/add", url.Values{"product_handle": {"board"}}, "")

	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, []cart.LineInput{{MerchandiseID: "v2", Quantity: 1}}, s.carts.lines("cart-1"))
}

func TestAddToCart_Unresolved(t *testing.T) {
	s := newTestServer(t)

	tests := []struct {
		name string
		form url.Values
	}{
		{"empty variant means none", url.Values{"variant_id": {""}, "product_handle": {"board"}}},
		{"nothing to resolve from", url.Values{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := s.post("/cart/add", tt.form, "application/json")

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Contains(t, rec.Body.String(), "Choose a variant first.")
		})
	}
	assert.Equal(t, 0, s.carts.creates)
}

func TestAddToCart_InvalidQuantity(t *testing.T) {
	s := newTestServer(t)

	rec := s.post("/cart/add", url.Values{"variant_id": {"v2"}, "qty": {"100"}}, "application/json")

	require.Equal(t, http.StatusBadRequest, rec.Code)
	var body struct {
		Fields map[string]string `json:"fields"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Must be at most 99.", body.Fields["qty"])
	assert.Equal(t, 0, s.carts.creates)
}

func TestAddToCart_JSON(t *testing.T) {
	s := newTestServer(t)

	rec := s.post("/cart/add", url.Values{"variant_id": {"v2"}}, "application/json")

	require.Equal(t, http.StatusOK, rec.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "cart-1", body["cart_id"])
	assert.Equal(t, "v2", body["variant_id"])
	assert.Equal(t, true, body["added"])
}

func TestAddToCart_StaleCookieStartsNewCart(t *testing.T) {
	s := newTestServer(t)
	codec := cartcookie.New([]byte(cookieSecret), testCfg.CartCookieName, false)
	stale := &http.Cookie{Name: testCfg.CartCookieName, Value: codec.Encode("gone")}

	rec := s.post("/cart/add", url.Values{"variant_id": {"v2"}}, "", stale)

	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, 1, s.carts.creates)
	ck := cartCookie(rec)
	require.NotNil(t, ck)
	id, err := codec.Decode(ck.Value)
	require.NoError(t, err)
	assert.Equal(t, "cart-1", id)
}

func TestAddToCart_ReturnTo(t *testing.T) {
	s := newTestServer(t)

	tests := []struct {
		returnTo string
		want     string
	}{
		{"/products/board", "/products/board"},
		{"//evil.example", "/cart"},
		{"https://evil.example", "/cart"},
	}
	for _, tt := range tests {
		rec := s.post("/cart/add", url.Values{"variant_id": {"v2"}, "return_to": {tt.returnTo}}, "")
		assert.Equal(t, tt.want, rec.Header().Get("Location"), tt.returnTo)
	}
}

func TestAddToCart_CollapsesConcurrentDuplicates(t *testing.T) {
	s := newTestServer(t)
	ck := cartCookie(s.post("/cart/add", url.Values{"variant_id": {"v1"}}, ""))
	require.NotNil(t, ck)

	s.carts.entered = make(chan struct{}, 2)
	s.carts.release = make(chan struct{})

	form := url.Values{"variant_id": {"v2"}}
	recs := make([]*httptest.ResponseRecorder, 2)
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		recs[0] = s.post("/cart/add", form, "", ck)
	}()
	<-s.carts.entered

	wg.Add(1)
	go func() {
		defer wg.Done()
		recs[1] = s.post("/cart/add", form, "", ck)
	}()
	// give the second request time to join the in-flight call
	time.Sleep(50 * time.Millisecond)
	close(s.carts.release)
	wg.Wait()

	assert.Equal(t, 1, s.carts.creates)
	assert.Equal(t, 1, s.carts.adds)
	assert.Equal(t, []cart.LineInput{
		{MerchandiseID: "v1", Quantity: 1},
		{MerchandiseID: "v2", Quantity: 1},
	}, s.carts.lines("cart-1"))
	for _, rec := range recs {
		assert.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Nil(t, cartCookie(rec), "cart id unchanged")
	}

	metricsBody := s.get("/metrics").Body.String()
	assert.Contains(t, metricsBody, `storefront_add_to_cart_total{outcome="added"} 1`)
	assert.Contains(t, metricsBody, `storefront_add_to_cart_total{outcome="collapsed"} 1`)
	assert.Contains(t, metricsBody, `storefront_add_to_cart_total{outcome="created"} 1`)
}

func TestAddToCart_JoinedRequestSurvivesFirstClientLeaving(t *testing.T) {
	s := newTestServer(t)
	ck := cartCookie(s.post("/cart/add", url.Values{"variant_id": {"v1"}}, ""))
	require.NotNil(t, ck)

	s.carts.entered = make(chan struct{}, 2)
	s.carts.release = make(chan struct{})

	form := url.Values{"variant_id": {"v2"}}
	ctx, cancel := context.WithCancel(context.Background())
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		req := httptest.NewRequest(http.MethodPost, "/cart/add", strings.NewReader(form.Encode())).WithContext(ctx)
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		req.AddCookie(ck)
		s.router.ServeHTTP(httptest.NewRecorder(), req)
	}()
	<-s.carts.entered

	var joined *httptest.ResponseRecorder
	wg.Add(1)
	go func() {
		defer wg.Done()
		joined = s.post("/cart/add", form, "", ck)
	}()
	time.Sleep(50 * time.Millisecond)
	cancel()
	close(s.carts.release)
	wg.Wait()

	assert.Equal(t, http.StatusSeeOther, joined.Code)
	assert.Equal(t, 1, s.carts.adds)
}

func TestAddToCart_CookielessShoppersGetSeparateCarts(t *testing.T) {
	s := newTestServer(t)
	s.carts.entered = make(chan struct{}, 2)
	s.carts.release = make(chan struct{})

	form := url.Values{"variant_id": {"v2"}}
	recs := make([]*httptest.ResponseRecorder, 2)
	var wg sync.WaitGroup
	for i := range recs {
		i := i
		wg.Add(1)
		go func() {
			defer wg.Done()
			recs[i] = s.post("/cart/add", form, "")
		}()
	}
	// both creates must be in flight at once
	<-s.carts.entered
	<-s.carts.entered
	close(s.carts.release)
	wg.Wait()

	assert.Equal(t, 2, s.carts.creates)
	codec := cartcookie.New([]byte(cookieSecret), testCfg.CartCookieName, false)
	ids := map[string]bool{}
	for _, rec := range recs {
		require.Equal(t, http.StatusSeeOther, rec.Code)
		ck := cartCookie(rec)
		require.NotNil(t, ck)
		id, err := codec.Decode(ck.Value)
		require.NoError(t, err)
		ids[id] = true
		assert.Equal(t, []cart.LineInput{{MerchandiseID: "v2", Quantity: 1}}, s.carts.lines(id))
	}
	assert.Len(t, ids, 2)
}

func TestCartPage(t *testing.T) {
	s := newTestServer(t)

	empty := s.get("/cart")
	require.Equal(t, http.StatusOK, empty.Code)
	assert.Contains(t, empty.Body.String(), "Your cart is empty.")

	ck := cartCookie(s.post("/cart/add", url.Values{"variant_id": {"v2"}, "qty": {"2"}}, ""))
	require.NotNil(t, ck)

	rec := s.get("/cart", ck)
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `<a href="/products/board">Board</a>`)
	assert.Contains(t, body, "Subtotal: $24.00")
	assert.Contains(t, body, "<title>Cart - Hydrogen</title>")
}

func TestHomePage(t *testing.T) {
	s := newTestServer(t)

	rec := s.get("/")

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `<html lang="en">`)
	assert.Contains(t, body, `<meta property="og:site_name" content="Hydrogen">`)
	assert.Contains(t, body, `"@type":"Organization"`)
	assert.Equal(t, 1, strings.Count(body, "<title>"))
	assert.Contains(t, body, "<title>Hydrogen</title>")
	assert.Equal(t, 1, strings.Count(body, `property="og:url"`))
	assert.Contains(t, body, `<a href="/products/board">`)
	assert.Contains(t, body, "$12.00")
}

func TestContentPages(t *testing.T) {
	s := newTestServer(t)

	col := s.get("/collections/winter")
	require.Equal(t, http.StatusOK, col.Code)
	assert.Contains(t, col.Body.String(), "<title>Winter - Hydrogen</title>")
	assert.Contains(t, col.Body.String(), `<meta property="og:image" content="https://cdn.example/winter.png">`)

	page := s.get("/pages/about")
	require.Equal(t, http.StatusOK, page.Code)
	assert.Contains(t, page.Body.String(), "<title>About us - Hydrogen</title>")
	assert.Contains(t, page.Body.String(), `<meta name="description" content="Who we are">`)

	assert.Equal(t, http.StatusNotFound, s.get("/collections/summer").Code)
	assert.Equal(t, http.StatusNotFound, s.get("/pages/missing").Code)
}

func TestUnknownRoute(t *testing.T) {
	s := newTestServer(t)

	rec := s.get("/nope")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "Page not found.")
}

func TestMetricsEndpoint(t *testing.T) {
	s := newTestServer(t)
	s.post("/cart/add", url.Values{"variant_id": {"v2"}}, "")

	rec := s.get("/metrics")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `storefront_add_to_cart_total{outcome="created"} 1`)
	assert.Contains(t, rec.Body.String(), `storefront_http_requests_total{method="POST",route="/cart/add",status="303"} 1`)
}

func TestCartPage_JSON(t *testing.T) {
	s := newTestServer(t)
	ck := cartCookie(s.post("/cart/add", url.Values{"variant_id": {"v2"}, "qty": {"3"}}, ""))
	require.NotNil(t, ck)

	req := httptest.NewRequest(http.MethodGet, "/cart", nil)
	req.Header.Set("Accept", "application/json")
	req.AddCookie(ck)
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		ID            string `json:"id"`
		Count         int    `json:"count"`
		SubtotalCents int    `json:"subtotal_cents"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "cart-1", body.ID)
	assert.Equal(t, 3, body.Count)
	assert.Equal(t, 3600, body.SubtotalCents)
}

func TestLocalUploadsServedWithCacheHeader(t *testing.T) {
	cfg := testCfg
	cfg.Storage = config.Storage{Driver: "local", LocalDir: t.TempDir(), LocalURLPrefix: "/uploads"}
	cat := &fakeCatalog{items: []products.Product{board}}
	carts := newFakeCarts(cat)
	r := NewRouterWith(slog.New(slog.NewJSONHandler(io.Discard, nil)), cfg, Deps{
		Products: cat, Carts: carts, CartPages: carts, Content: fakeContent{},
	})

	res, err := storage.NewLocal(cfg.Storage.LocalDir, cfg.Storage.LocalURLPrefix).
		Put(context.Background(), strings.NewReader("gif-bytes"), storage.PutInput{Filename: "board.gif", ProductHandle: "board"})
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, res.URL, nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "gif-bytes", rec.Body.String())
	assert.Equal(t, storage.ImageCacheControl, rec.Header().Get("Cache-Control"))
}
