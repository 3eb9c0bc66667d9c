package coupon

import (
	"context"

	"kol-marketplace/internal/domain"
)

type Repository interface {
	Create(ctx context.Context, in domain.CouponCode) (*domain.CouponCode, error)
	GetByID(ctx context.Context, id string) (*domain.CouponCode, error)
	GetActive(ctx context.Context, id string) (*domain.CouponCode, error)
	List(ctx context.Context, params domain.ListParams) ([]domain.CouponCode, int, error)
	Delete(ctx context.Context, id string) error

	BeginUsage(ctx context.Context) (UsageTx, error)
}

// UsageTx serializes redemption of one (user, coupon) pair. Get locks the
// usage row, so two concurrent checks for the same pair cannot both pass the
// already-used test before either commits.
type UsageTx interface {
	Get(ctx context.Context, userID, couponID string) (*domain.UserCoupon, error)
	Reserve(ctx context.Context, userID, couponID string) error
	MarkUsed(ctx context.Context, userID, couponID string) error
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}
