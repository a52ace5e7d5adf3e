package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/MikeOwino/hydrogen/internal/config"
	"github.com/MikeOwino/hydrogen/internal/http/middleware"
	"github.com/MikeOwino/hydrogen/internal/http/render"
	"github.com/MikeOwino/hydrogen/internal/modules/content"
	"github.com/MikeOwino/hydrogen/internal/modules/seo"
	"github.com/MikeOwino/hydrogen/internal/shared/apperr"
	"github.com/MikeOwino/hydrogen/internal/shared/slug"
	"github.com/MikeOwino/hydrogen/templates/pages"
)

// ContentHandler serves collection and page routes.
type ContentHandler struct {
	Repo  content.Repository
	Seo   *seo.Dispatcher
	Store config.Store
}

func NewContentHandler(repo content.Repository, d *seo.Dispatcher, store config.Store) *ContentHandler {
	return &ContentHandler{Repo: repo, Seo: d, Store: store}
}

// Collection handles GET /collections/:handle.
func (h *ContentHandler) Collection(c *gin.Context) {
	handle, ok := slug.Handle(c.Param("handle"))
	if !ok {
		middleware.Fail(c, apperr.NotFoundErr("Collection not found."))
		return
	}
	col, err := h.Repo.CollectionByHandle(c.Request.Context(), handle)
	if err != nil {
		middleware.Fail(c, err)
		return
	}
	head := h.Seo.Head(c.Request.Context(), defaultSeoData(h.Store), seo.TypeCollection, collectionSeoData(col), middleware.GetCurrentURL(c))
	render.Page(c, http.StatusOK, h.Store.Lang, head, pages.Content(col.Title, col.Description))
}

// Page handles GET /pages/:handle.
func (h *ContentHandler) Page(c *gin.Context) {
	handle, ok := slug.Handle(c.Param("handle"))
	if !ok {
		middleware.Fail(c, apperr.NotFoundErr("Page not found."))
		return
	}
	p, err := h.Repo.PageByHandle(c.Request.Context(), handle)
	if err != nil {
		middleware.Fail(c, err)
		return
	}
	head := h.Seo.Head(c.Request.Context(), defaultSeoData(h.Store), seo.TypePage, pageSeoData(p), middleware.GetCurrentURL(c))
	render.Page(c, http.StatusOK, h.Store.Lang, head, pages.Content(p.Title, p.Body))
}
