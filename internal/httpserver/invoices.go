package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type invoiceRequest struct {
	CheckoutID string `json:"checkoutId" binding:"required"`
}

func (h handlers) createInvoice(c *gin.Context) {
	var req invoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	inv, err := h.deps.Invoices.Create(c.Request.Context(), req.CheckoutID)
	if err != nil {
		fail(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, inv)
}

func (h handlers) listInvoices(c *gin.Context) {
	params := listParams(c)
	items, total, err := h.deps.Invoices.List(c.Request.Context(), params)
	if err != nil {
		fail(c, h.logger, err)
		return
	}
	paginated(c, items, total, params)
}

func (h handlers) getInvoice(c *gin.Context) {
	inv, err := h.deps.Invoices.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, inv)
}
