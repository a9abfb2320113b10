package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// RequireRoles only lets through viewers holding at least one of allowedRoles.
// Auth must run first.
//
//	r.PUT("/settings/order-list", RequireRoles("administrator"), handler)
func RequireRoles(allowedRoles ...string) gin.HandlerFunc {
	allowed := make(map[string]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[strings.ToLower(strings.TrimSpace(r))] = struct{}{}
	}

	return func(c *gin.Context) {
		viewer, ok := GetViewer(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":      "no authenticated user",
				"code":       "unauthorized",
				"request_id": GetRequestID(c),
			})
			return
		}

		for _, role := range viewer.Roles {
			if _, ok := allowed[strings.ToLower(strings.TrimSpace(role))]; ok {
				c.Next()
				return
			}
		}

		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
			"error":      "role not allowed",
			"code":       "forbidden",
			"request_id": GetRequestID(c),
		})
	}
}
