package http

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/MikeOwino/hydrogen/internal/config"
	"github.com/MikeOwino/hydrogen/internal/http/cartcookie"
	"github.com/MikeOwino/hydrogen/internal/http/flash"
	"github.com/MikeOwino/hydrogen/internal/http/handlers"
	"github.com/MikeOwino/hydrogen/internal/http/middleware"
	"github.com/MikeOwino/hydrogen/internal/http/render"
	"github.com/MikeOwino/hydrogen/internal/metrics"
	"github.com/MikeOwino/hydrogen/internal/modules/cart"
	"github.com/MikeOwino/hydrogen/internal/modules/content"
	"github.com/MikeOwino/hydrogen/internal/modules/products"
	"github.com/MikeOwino/hydrogen/internal/modules/seo"
	"github.com/MikeOwino/hydrogen/internal/storage"
)

// Deps are the data sources behind the storefront routes.
type Deps struct {
	Products  products.Repository
	Carts     cart.Store
	CartPages cart.PageSource
	Content   content.Repository
	Seo       seo.Renderers
}

// NewRouter wires the storefront against a gorm database.
func NewRouter(logger *slog.Logger, db *gorm.DB, cfg config.Config) *gin.Engine {
	carts := cart.NewRepo(db)
	return NewRouterWith(logger, cfg, Deps{
		Products:  products.NewCachedRepository(products.NewGormRepo(db), 512, 30*time.Second),
		Carts:     carts,
		CartPages: carts,
		Content:   content.NewRepo(db),
	})
}

func NewRouterWith(logger *slog.Logger, cfg config.Config, d Deps) *gin.Engine {
	r := gin.New()

	flashCodec := flash.NewCodec([]byte(cfg.FlashSecret), "flash", cfg.CookieSecure)
	ck := cartcookie.New([]byte(cfg.CartCookieSecret), cfg.CartCookieName, cfg.CookieSecure)
	dispatcher := seo.NewDispatcher(logger, d.Seo)
	m := metrics.New()

	r.Use(middleware.RequestID())
	r.Use(m.Middleware())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.ErrorHandler(middleware.ErrorHandlerCfg{Logger: logger, Page: render.ErrorPage}))
	r.Use(middleware.FlashMiddleware(flashCodec))
	r.Use(middleware.CurrentURL(cfg.PublicBaseURL))

	productsH := handlers.NewProductsHandler(d.Products, dispatcher, cfg.Store)
	cartH := handlers.NewCartHandler(d.Products, d.Carts, cart.NewService(d.CartPages), flashCodec, ck, dispatcher, logger, cfg.Store)
	cartH.Metrics = m
	contentH := handlers.NewContentHandler(d.Content, dispatcher, cfg.Store)

	r.GET("/", productsH.Home)
	r.GET("/products/:handle", productsH.Show)
	r.GET("/cart", cartH.Get)
	r.POST("/cart/add", cartH.Add)
	r.GET("/collections/:handle", contentH.Collection)
	r.GET("/pages/:handle", contentH.Page)
	r.GET("/metrics", gin.WrapH(m.Handler()))

	if cfg.Storage.Driver == "local" && cfg.Storage.LocalURLPrefix != "" {
		uploads := r.Group(cfg.Storage.LocalURLPrefix, func(c *gin.Context) {
			c.Header("Cache-Control", storage.ImageCacheControl)
		})
		uploads.Static("/", cfg.Storage.LocalDir)
	}

	r.NoRoute(func(c *gin.Context) {
		render.ErrorPage(c, 404, "Page not found.", middleware.GetRequestID(c))
	})

	return r
}
