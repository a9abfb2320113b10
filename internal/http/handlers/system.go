package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

func (h Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h Handler) DBCheck(c *gin.Context) {
	if h.DB == nil {
		respondError(c, http.StatusServiceUnavailable, "db_unavailable", "database not connected", nil)
		return
	}
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()
	if err := h.DB.PingContext(ctx); err != nil {
		respondError(c, http.StatusServiceUnavailable, "db_unavailable", "database ping failed", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "database": "reachable"})
}
