package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type checkoutRequest struct {
	CartID   string  `json:"cartId" binding:"required"`
	UserID   string  `json:"userId" binding:"required"`
	CouponID *string `json:"couponId"`
}

func (h handlers) createCheckout(c *gin.Context) {
	var req checkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	res, err := h.deps.Checkouts.Create(c.Request.Context(), req.CartID, req.UserID, req.CouponID)
	if err != nil {
		fail(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, res)
}

func (h handlers) getCheckout(c *gin.Context) {
	co, err := h.deps.Checkouts.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, co)
}
