package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
)

const CtxKeyCurrentURL = "current_url"

// CurrentURL records the absolute URL of the request. With a non-empty
// baseURL the request path is resolved against it; otherwise scheme and
// host come from the request (honouring X-Forwarded-Proto).
func CurrentURL(baseURL string) gin.HandlerFunc {
	baseURL = strings.TrimRight(baseURL, "/")
	return func(c *gin.Context) {
		c.Set(CtxKeyCurrentURL, requestURL(c, baseURL))
		c.Next()
	}
}

func GetCurrentURL(c *gin.Context) string {
	if v, ok := c.Get(CtxKeyCurrentURL); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return requestURL(c, "")
}

func requestURL(c *gin.Context, baseURL string) string {
	uri := c.Request.URL.RequestURI()
	if baseURL != "" {
		return baseURL + uri
	}
	scheme := "http"
	if c.Request.TLS != nil {
		scheme = "https"
	}
	if p := c.GetHeader("X-Forwarded-Proto"); p == "http" || p == "https" {
		scheme = p
	}
	return scheme + "://" + c.Request.Host + uri
}
