package cart

import (
	"context"
	"errors"

	"kol-marketplace/internal/domain"
)

type Service struct {
	repo    cartRepo
	coupons couponChecker
}

type cartRepo interface {
	Create(ctx context.Context, userID *string) (*domain.Cart, error)
	GetByID(ctx context.Context, id string) (*domain.Cart, error)
	List(ctx context.Context, params domain.ListParams) ([]domain.Cart, int, error)
	Delete(ctx context.Context, id string) error
	AddPackageItem(ctx context.Context, cartID, headerID string, quantity int) error
	AddInfluencerItem(ctx context.Context, cartID, influencerID string, quantity int) error
	RemovePackageItem(ctx context.Context, cartID, itemID string) error
	RemoveInfluencerItem(ctx context.Context, cartID, itemID string) error
}

type couponChecker interface {
	Check(ctx context.Context, userID, couponID string, orderTotal float64) (*domain.CouponCode, error)
}

func New(repo cartRepo, coupons couponChecker) *Service {
	return &Service{repo: repo, coupons: coupons}
}

// PricedCart is a cart plus its computed charge breakdown.
type PricedCart struct {
	domain.Cart
	Pricing domain.Pricing `json:"pricing"`
}

// CouponRef identifies the coupon a caller wants applied to a specific cart.
// The coupon is always scoped to the cart being priced, never carried over
// from another cart in the same page.
type CouponRef struct {
	UserID   string
	CouponID string
}

func (s *Service) Create(ctx context.Context, userID *string) (*domain.Cart, error) {
	return s.repo.Create(ctx, userID)
}

func (s *Service) Get(ctx context.Context, id string, coupon *CouponRef) (*PricedCart, error) {
	cart, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.price(ctx, *cart, coupon, true)
}

// List returns a page of carts, each priced independently. Carts for which
// the coupon is not eligible are returned without a discount instead of
// failing the whole page.
func (s *Service) List(ctx context.Context, params domain.ListParams, coupon *CouponRef) ([]PricedCart, int, error) {
	carts, total, err := s.repo.List(ctx, params)
	if err != nil {
		return nil, 0, err
	}
	priced := make([]PricedCart, 0, len(carts))
	for _, c := range carts {
		pc, err := s.price(ctx, c, coupon, false)
		if err != nil {
			return nil, 0, err
		}
		priced = append(priced, *pc)
	}
	return priced, total, nil
}

func (s *Service) price(ctx context.Context, c domain.Cart, coupon *CouponRef, strict bool) (*PricedCart, error) {
	base := Price(c, 0)
	if coupon == nil || coupon.CouponID == "" {
		return &PricedCart{Cart: c, Pricing: base}, nil
	}
	if s.coupons == nil {
		return nil, errors.New("coupon checker unavailable")
	}

	code, err := s.coupons.Check(ctx, coupon.UserID, coupon.CouponID, base.Subtotal)
	if err != nil {
		if !strict && isCouponRuleError(err) {
			return &PricedCart{Cart: c, Pricing: base}, nil
		}
		return nil, err
	}
	return &PricedCart{Cart: c, Pricing: Price(c, code.DiscountPercentage)}, nil
}

func isCouponRuleError(err error) bool {
	var minErr *domain.MinOrderValueError
	return errors.Is(err, domain.ErrCouponInvalid) ||
		errors.Is(err, domain.ErrCouponExpired) ||
		errors.Is(err, domain.ErrCouponUsed) ||
		errors.As(err, &minErr)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

func (s *Service) AddPackageItem(ctx context.Context, cartID, headerID string, quantity int) (*PricedCart, error) {
	if headerID == "" {
		return nil, errors.New("packageId required")
	}
	if quantity <= 0 {
		return nil, errors.New("quantity must be positive")
	}
	if err := s.repo.AddPackageItem(ctx, cartID, headerID, quantity); err != nil {
		return nil, err
	}
	return s.Get(ctx, cartID, nil)
}

func (s *Service) AddInfluencerItem(ctx context.Context, cartID, influencerID string, quantity int) (*PricedCart, error) {
	if influencerID == "" {
		return nil, errors.New("influencerId required")
	}
	if quantity <= 0 {
		return nil, errors.New("quantity must be positive")
	}
	if err := s.repo.AddInfluencerItem(ctx, cartID, influencerID, quantity); err != nil {
		return nil, err
	}
	return s.Get(ctx, cartID, nil)
}

func (s *Service) RemovePackageItem(ctx context.Context, cartID, itemID string) (*PricedCart, error) {
	if err := s.repo.RemovePackageItem(ctx, cartID, itemID); err != nil {
		return nil, err
	}
	return s.Get(ctx, cartID, nil)
}

func (s *Service) RemoveInfluencerItem(ctx context.Context, cartID, itemID string) (*PricedCart, error) {
	if err := s.repo.RemoveInfluencerItem(ctx, cartID, itemID); err != nil {
		return nil, err
	}
	return s.Get(ctx, cartID, nil)
}
