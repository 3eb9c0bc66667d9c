package domain

import "time"

// Cart holds a shopper's selections. UserID is nil for guest carts.
type Cart struct {
	ID              string               `json:"id"`
	UserID          *string              `json:"userId,omitempty"`
	PackageItems    []PackageCartItem    `json:"packageCartItems"`
	InfluencerItems []InfluencerCartItem `json:"influencerCartItems"`
	CreatedAt       time.Time            `json:"createdAt"`
	UpdatedAt       time.Time            `json:"updatedAt"`
}

type PackageCartItem struct {
	ID       string        `json:"id"`
	CartID   string        `json:"cartId"`
	HeaderID string        `json:"packageId"`
	Quantity int           `json:"quantity"`
	Package  PackageHeader `json:"package"`
}

type InfluencerCartItem struct {
	ID           string     `json:"id"`
	CartID       string     `json:"cartId"`
	InfluencerID string     `json:"influencerId"`
	Quantity     int        `json:"quantity"`
	Influencer   Influencer `json:"influencer"`
}

// Pricing is the computed charge breakdown for one cart. CutAmount keeps the
// pre-discount figure that finance reporting reads alongside the total.
type Pricing struct {
	Subtotal             float64 `json:"subtotal"`
	ManagementFeePct     float64 `json:"managementFeePercentage"`
	ManagementFee        float64 `json:"managementFee"`
	DiscountedFee        float64 `json:"discountedManagementFee"`
	CouponDiscountPct    float64 `json:"couponDiscountPercentage"`
	CouponDiscountAmount float64 `json:"couponDiscountAmount"`
	CutAmount            float64 `json:"cutAmount"`
	Total                float64 `json:"total"`
}
