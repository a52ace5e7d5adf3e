package render

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/MikeOwino/hydrogen/internal/http/flash"
	"github.com/MikeOwino/hydrogen/pkg/view"
)

// RedirectWithFlash redirects with 303 so the browser follows a POST with a
// GET, showing msg on the next page.
func RedirectWithFlash(c *gin.Context, codec *flash.Codec, location string, kind view.FlashKind, msg string) {
	if err := codec.Set(c, view.Flash{Kind: kind, Message: msg}); err != nil {
		_ = c.Error(err)
	}
	c.Redirect(http.StatusSeeOther, location)
}
