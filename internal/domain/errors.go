package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound indicates the requested entity was not found.
	ErrNotFound = errors.New("not found")

	// ErrMissingIdentifiers is returned when a coupon check lacks ids.
	ErrMissingIdentifiers = errors.New("userId and couponId are required")

	// ErrCouponInvalid covers unknown and inactive coupon codes alike so
	// callers cannot probe which codes exist.
	ErrCouponInvalid = errors.New("Invalid or inactive coupon code")

	ErrCouponExpired = errors.New("This coupon code has expired")
	ErrCouponUsed    = errors.New("You have already used this coupon code")

	ErrUserNotActive = errors.New("User Not Found or Not Active")
	ErrInvalidOption = errors.New("Invalid Option")
)

// MinOrderValueError reports the threshold an order total failed to reach.
type MinOrderValueError struct {
	Minimum float64
}

func (e *MinOrderValueError) Error() string {
	return fmt.Sprintf("Order total must be at least %.2f to use this coupon", e.Minimum)
}
