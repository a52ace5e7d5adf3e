package render

import (
	"github.com/a-h/templ"
	"github.com/gin-gonic/gin"

	"github.com/MikeOwino/hydrogen/internal/http/middleware"
	"github.com/MikeOwino/hydrogen/templates/pages"
)

// Component writes a templ component as an HTML response.
func Component(c *gin.Context, status int, comp templ.Component) {
	c.Status(status)
	c.Header("Content-Type", "text/html; charset=utf-8")
	if err := comp.Render(c.Request.Context(), c.Writer); err != nil {
		_ = c.Error(err)
	}
}

// Page renders body inside the storefront layout with head in <head>.
func Page(c *gin.Context, status int, lang string, head, body templ.Component) {
	Component(c, status, pages.Layout(lang, head, middleware.GetFlash(c), body))
}
