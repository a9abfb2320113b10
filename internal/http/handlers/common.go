package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

// BindJSONOrError ensures body is present and parsable.
func BindJSONOrError[T any](c *gin.Context, dst *T) bool {
	if c.Request.Body == nil || c.Request.ContentLength == 0 {
		respondError(c, http.StatusBadRequest, "empty_body", "request body is empty", nil)
		return false
	}
	if err := c.ShouldBindJSON(dst); err != nil {
		respondError(c, http.StatusBadRequest, "invalid_payload", "invalid payload", err.Error())
		return false
	}
	return true
}

// queryInt reads an optional integer query parameter; missing means 0.
func queryInt(c *gin.Context, key string) (int, bool) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return 0, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid_"+key, key+" must be a number", nil)
		return 0, false
	}
	return n, true
}
