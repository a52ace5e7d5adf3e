package render

import (
	"github.com/gin-gonic/gin"

	"github.com/MikeOwino/hydrogen/templates/pages"
)

// ErrorPage matches middleware.ErrorPageFunc.
func ErrorPage(c *gin.Context, status int, msg string, requestID string) {
	Page(c, status, "", nil, pages.Error(status, msg, requestID))
}
