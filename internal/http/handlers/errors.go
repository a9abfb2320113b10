package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/JoTroup/woocommerce-default-ordering/internal/domain"
	"github.com/JoTroup/woocommerce-default-ordering/internal/http/middleware"
)

// ErrorResponse standardizes error payloads.
type ErrorResponse struct {
	Error     string `json:"error"`
	Code      string `json:"code,omitempty"`
	Details   any    `json:"details,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}

func respondError(c *gin.Context, status int, code, message string, details any) {
	if code == "" {
		code = http.StatusText(status)
	}
	c.AbortWithStatusJSON(status, ErrorResponse{
		Error:     message,
		Code:      code,
		Details:   details,
		RequestID: middleware.GetRequestID(c),
	})
}

// RespondDomainError maps domain errors to HTTP responses.
func (h Handler) RespondDomainError(c *gin.Context, err error) {
	switch {
	case domain.IsValidation(err):
		respondError(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
	case domain.IsUnauthorized(err):
		respondError(c, http.StatusUnauthorized, "unauthorized", err.Error(), nil)
	case domain.IsNotFound(err):
		respondError(c, http.StatusNotFound, "not_found", err.Error(), nil)
	default:
		h.logger(c).Error("request failed", zap.Error(err))
		_ = c.Error(err)
		respondError(c, http.StatusInternalServerError, "internal_error", "internal error", nil)
	}
}
