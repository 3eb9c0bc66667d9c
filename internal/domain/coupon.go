package domain

import "time"

// CouponCode expiry is an epoch timestamp in seconds, not milliseconds.
type CouponCode struct {
	ID                 string    `json:"id"`
	Name               string    `json:"name"`
	ExpiryTimestamp    int64     `json:"expiryTimeStamp"`
	DiscountPercentage float64   `json:"discountPercentage"`
	MinimumOrderValue  float64   `json:"minimumOrderValue"`
	Active             bool      `json:"active"`
	CreatedAt          time.Time `json:"createdAt"`
}

// UserCoupon records one (user, coupon) redemption. HasAvail is set when a
// check reserves the coupon; IsUsed when a checkout actually consumes it.
// A coupon counts as spent only when both flags are set.
type UserCoupon struct {
	ID       string `json:"id"`
	UserID   string `json:"userId"`
	CouponID string `json:"couponId"`
	IsUsed   bool   `json:"isUsed"`
	HasAvail bool   `json:"hasAvail"`
}

// Expired compares against the coupon's epoch-seconds expiry.
func (c CouponCode) Expired(now time.Time) bool {
	return now.Unix() > c.ExpiryTimestamp
}
