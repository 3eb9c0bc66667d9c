package httpserver

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"kol-marketplace/internal/domain"
	cartsvc "kol-marketplace/internal/service/cart"
)

type cartView struct {
	ID              string                   `json:"id"`
	UserID          *string                  `json:"userId,omitempty"`
	PackageItems    []domain.PackageCartItem `json:"packageCartItems"`
	InfluencerItems []influencerItemView     `json:"influencerCartItems"`
	Pricing         domain.Pricing           `json:"pricing"`
	CreatedAt       time.Time                `json:"createdAt"`
	UpdatedAt       time.Time                `json:"updatedAt"`
}

type influencerItemView struct {
	ID           string         `json:"id"`
	CartID       string         `json:"cartId"`
	InfluencerID string         `json:"influencerId"`
	Quantity     int            `json:"quantity"`
	Influencer   influencerView `json:"influencer"`
}

func toCartView(pc cartsvc.PricedCart) cartView {
	items := make([]influencerItemView, 0, len(pc.InfluencerItems))
	for _, it := range pc.InfluencerItems {
		items = append(items, influencerItemView{
			ID:           it.ID,
			CartID:       it.CartID,
			InfluencerID: it.InfluencerID,
			Quantity:     it.Quantity,
			Influencer:   toInfluencerView(it.Influencer),
		})
	}
	pkgItems := pc.PackageItems
	if pkgItems == nil {
		pkgItems = []domain.PackageCartItem{}
	}
	return cartView{
		ID:              pc.ID,
		UserID:          pc.Cart.UserID,
		PackageItems:    pkgItems,
		InfluencerItems: items,
		Pricing:         pc.Pricing,
		CreatedAt:       pc.CreatedAt,
		UpdatedAt:       pc.UpdatedAt,
	}
}

// couponRef reads the optional couponId/userId pair from the query string.
func couponRef(c *gin.Context) *cartsvc.CouponRef {
	couponID := c.Query("couponId")
	userID := c.Query("userId")
	if couponID == "" && userID == "" {
		return nil
	}
	return &cartsvc.CouponRef{UserID: userID, CouponID: couponID}
}

func (h handlers) createCart(c *gin.Context) {
	var req struct {
		UserID *string `json:"userId"`
	}
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err.Error())
			return
		}
	}
	created, err := h.deps.Carts.Create(c.Request.Context(), req.UserID)
	if err != nil {
		fail(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h handlers) listCarts(c *gin.Context) {
	params := listParams(c)
	carts, total, err := h.deps.Carts.List(c.Request.Context(), params, couponRef(c))
	if err != nil {
		fail(c, h.logger, err)
		return
	}
	views := make([]cartView, 0, len(carts))
	for _, pc := range carts {
		views = append(views, toCartView(pc))
	}
	paginated(c, views, total, params)
}

func (h handlers) getCart(c *gin.Context) {
	pc, err := h.deps.Carts.Get(c.Request.Context(), c.Param("id"), couponRef(c))
	if err != nil {
		fail(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, toCartView(*pc))
}

func (h handlers) deleteCart(c *gin.Context) {
	if err := h.deps.Carts.Delete(c.Request.Context(), c.Param("id")); err != nil {
		fail(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}

type addItemRequest struct {
	PackageID    string `json:"packageId"`
	InfluencerID string `json:"influencerId"`
	Quantity     int    `json:"quantity"`
}

func (h handlers) addCartPackageItem(c *gin.Context) {
	var req addItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}
	if req.PackageID == "" {
		badRequest(c, "packageId is required")
		return
	}
	if req.Quantity < 0 {
		badRequest(c, "quantity must be positive")
		return
	}
	pc, err := h.deps.Carts.AddPackageItem(c.Request.Context(), c.Param("id"), req.PackageID, req.Quantity)
	if err != nil {
		fail(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, toCartView(*pc))
}

func (h handlers) addCartInfluencerItem(c *gin.Context) {
	var req addItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}
	if req.InfluencerID == "" {
		badRequest(c, "influencerId is required")
		return
	}
	if req.Quantity < 0 {
		badRequest(c, "quantity must be positive")
		return
	}
	pc, err := h.deps.Carts.AddInfluencerItem(c.Request.Context(), c.Param("id"), req.InfluencerID, req.Quantity)
	if err != nil {
		fail(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, toCartView(*pc))
}

func (h handlers) removeCartPackageItem(c *gin.Context) {
	pc, err := h.deps.Carts.RemovePackageItem(c.Request.Context(), c.Param("id"), c.Param("itemId"))
	if err != nil {
		fail(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, toCartView(*pc))
}

func (h handlers) removeCartInfluencerItem(c *gin.Context) {
	pc, err := h.deps.Carts.RemoveInfluencerItem(c.Request.Context(), c.Param("id"), c.Param("itemId"))
	if err != nil {
		fail(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, toCartView(*pc))
}
