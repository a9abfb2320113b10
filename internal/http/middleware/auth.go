package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/JoTroup/woocommerce-default-ordering/internal/auth"
	"github.com/JoTroup/woocommerce-default-ordering/internal/domain"
)

const viewerKey = "viewer"

// Auth requires a valid bearer token and stores the viewer on the context.
func Auth(secret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token := ""
		if len(header) > 7 && strings.EqualFold(header[:7], "bearer ") {
			token = header[7:]
		}

		viewer, err := auth.ParseToken(secret, token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":      err.Error(),
				"code":       "unauthorized",
				"request_id": GetRequestID(c),
			})
			return
		}
		c.Set(viewerKey, viewer)
		c.Next()
	}
}

// GetViewer returns the authenticated viewer, if any.
func GetViewer(c *gin.Context) (domain.Viewer, bool) {
	v, ok := c.Get(viewerKey)
	if !ok {
		return domain.Viewer{}, false
	}
	viewer, ok := v.(domain.Viewer)
	return viewer, ok
}
