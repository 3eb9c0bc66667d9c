package domain

import "time"

// Checkout snapshots a cart's pricing at the moment of purchase so later
// catalog edits cannot change what the customer agreed to pay.
type Checkout struct {
	ID              string    `json:"id"`
	CartID          string    `json:"cartId"`
	UserID          string    `json:"userId"`
	CouponID        *string   `json:"couponId,omitempty"`
	Subtotal        float64   `json:"subtotal"`
	ManagementFee   float64   `json:"managementFee"`
	CouponDiscount  float64   `json:"couponDiscount"`
	Total           float64   `json:"total"`
	PaymentIntentID string    `json:"paymentIntentId,omitempty"`
	CreatedAt       time.Time `json:"createdAt"`
}

type Invoice struct {
	ID         string    `json:"id"`
	CheckoutID string    `json:"checkoutId"`
	Number     string    `json:"number"`
	Amount     float64   `json:"amount"`
	PDFURL     string    `json:"pdfUrl,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
}
