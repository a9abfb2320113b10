package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/JoTroup/woocommerce-default-ordering/internal/services"
)

// GET /api/settings/order-list
func (h Handler) GetSettings(c *gin.Context) {
	cfg, err := h.settingsService(c).Get(c.Request.Context())
	if err != nil {
		h.RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, cfg)
}

// PUT /api/settings/order-list
func (h Handler) UpdateSettings(c *gin.Context) {
	var in services.SettingsInput
	if !BindJSONOrError(c, &in) {
		return
	}
	cfg, err := h.settingsService(c).Update(c.Request.Context(), in)
	if err != nil {
		h.RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, cfg)
}

// DELETE /api/settings/order-list
func (h Handler) ResetSettings(c *gin.Context) {
	cfg, err := h.settingsService(c).Reset(c.Request.Context())
	if err != nil {
		h.RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, cfg)
}

// GET /api/settings/order-list/fields
func (h Handler) SettingsFields(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"fields": h.settingsService(c).Fields()})
}

// GET /api/order-statuses
func (h Handler) ListStatuses(c *gin.Context) {
	statuses, err := h.settingsService(c).KnownStatuses(c.Request.Context())
	if err != nil {
		h.RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"statuses": statuses})
}
