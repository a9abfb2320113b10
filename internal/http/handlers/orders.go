package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/JoTroup/woocommerce-default-ordering/internal/http/middleware"
	"github.com/JoTroup/woocommerce-default-ordering/internal/services"
)

// GET /api/orders?status=&page=&per_page=
func (h Handler) ListOrders(c *gin.Context) {
	viewer, _ := middleware.GetViewer(c)

	page, ok := queryInt(c, "page")
	if !ok {
		return
	}
	perPage, ok := queryInt(c, "per_page")
	if !ok {
		return
	}

	list, err := h.orderListService(c).List(c.Request.Context(), viewer, services.ListRequest{
		Status:  c.Query("status"),
		Page:    page,
		PerPage: perPage,
	})
	if err != nil {
		h.RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// GET /api/orders/export.pdf?status=
func (h Handler) ExportOrdersPDF(c *gin.Context) {
	viewer, _ := middleware.GetViewer(c)

	pdf, filename, err := h.orderListService(c).ExportPDF(c.Request.Context(), viewer, c.Query("status"))
	if err != nil {
		h.RespondDomainError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", pdf)
}
