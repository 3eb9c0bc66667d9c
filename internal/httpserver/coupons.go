package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"kol-marketplace/internal/domain"
)

type couponRequest struct {
	Name               string  `json:"name" binding:"required"`
	ExpiryTimestamp    int64   `json:"expiryTimeStamp" binding:"required"`
	DiscountPercentage float64 `json:"discountPercentage" binding:"required"`
	MinimumOrderValue  float64 `json:"minimumOrderValue"`
	Active             *bool   `json:"active"`
}

func (h handlers) createCoupon(c *gin.Context) {
	var req couponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	active := true
	if req.Active != nil {
		active = *req.Active
	}
	created, err := h.deps.Coupons.Create(c.Request.Context(), domain.CouponCode{
		Name:               req.Name,
		ExpiryTimestamp:    req.ExpiryTimestamp,
		DiscountPercentage: req.DiscountPercentage,
		MinimumOrderValue:  req.MinimumOrderValue,
		Active:             active,
	})
	if err != nil {
		fail(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h handlers) listCoupons(c *gin.Context) {
	params := listParams(c)
	items, total, err := h.deps.Coupons.List(c.Request.Context(), params)
	if err != nil {
		fail(c, h.logger, err)
		return
	}
	paginated(c, items, total, params)
}

func (h handlers) getCoupon(c *gin.Context) {
	coupon, err := h.deps.Coupons.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, coupon)
}

func (h handlers) deleteCoupon(c *gin.Context) {
	if err := h.deps.Coupons.Delete(c.Request.Context(), c.Param("id")); err != nil {
		fail(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}

type couponCheckRequest struct {
	UserID     string  `json:"userId"`
	CouponID   string  `json:"couponId"`
	OrderTotal float64 `json:"orderTotal"`
}

func (h handlers) checkCoupon(c *gin.Context) {
	var req couponCheckRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	coupon, err := h.deps.Coupons.Check(c.Request.Context(), req.UserID, req.CouponID, req.OrderTotal)
	if err != nil {
		fail(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, coupon)
}
