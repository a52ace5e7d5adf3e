package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/MikeOwino/hydrogen/internal/http/flash"
	"github.com/MikeOwino/hydrogen/pkg/view"
)

const CtxKeyFlash = "flash"

// FlashMiddleware moves a pending flash from its cookie into the request so
// the page being rendered can show it once.
func FlashMiddleware(codec *flash.Codec) gin.HandlerFunc {
	return func(c *gin.Context) {
		v, err := c.Cookie(codec.CookieName)
		if err != nil || v == "" {
			c.Next()
			return
		}
		if f, err := codec.Decode(v); err == nil {
			c.Set(CtxKeyFlash, f)
		}
		// cleared even when invalid so it is not retried
		codec.Clear(c)
		c.Next()
	}
}

func GetFlash(c *gin.Context) *view.Flash {
	f, _ := c.Value(CtxKeyFlash).(*view.Flash)
	return f
}
