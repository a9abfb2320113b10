package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type loginRequest struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

// POST /api/auth/login
func (h Handler) Login(c *gin.Context) {
	var req loginRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	res, err := h.authService(c).Login(c.Request.Context(), req.Login, req.Password)
	if err != nil {
		h.RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}
