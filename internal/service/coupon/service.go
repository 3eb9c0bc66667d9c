package coupon

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"
	"time"

	"kol-marketplace/internal/cache"
	"kol-marketplace/internal/domain"
	couponrepo "kol-marketplace/internal/repository/coupon"
)

type Service struct {
	repo   couponRepo
	cache  *cache.Cache
	logger *log.Logger
	now    func() time.Time
}

type couponRepo interface {
	Create(ctx context.Context, in domain.CouponCode) (*domain.CouponCode, error)
	GetByID(ctx context.Context, id string) (*domain.CouponCode, error)
	GetActive(ctx context.Context, id string) (*domain.CouponCode, error)
	List(ctx context.Context, params domain.ListParams) ([]domain.CouponCode, int, error)
	Delete(ctx context.Context, id string) error
	BeginUsage(ctx context.Context) (couponrepo.UsageTx, error)
}

func New(repo couponRepo, c *cache.Cache, logger *log.Logger) *Service {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Service{repo: repo, cache: c, logger: logger, now: time.Now}
}

func cacheKey(id string) string {
	return "coupon:" + id
}

// Check validates a coupon against a user and an order total and, when
// eligible, reserves it for the user. The usage lookup and the reservation
// share one locked transaction: two concurrent checks for the same
// (user, coupon) pair serialize instead of both passing the already-used
// test. Marking the coupon consumed is Redeem's job at checkout.
func (s *Service) Check(ctx context.Context, userID, couponID string, orderTotal float64) (*domain.CouponCode, error) {
	if strings.TrimSpace(userID) == "" || strings.TrimSpace(couponID) == "" {
		return nil, domain.ErrMissingIdentifiers
	}

	code, err := s.activeCoupon(ctx, couponID)
	if err != nil {
		return nil, err
	}
	if code.Expired(s.now()) {
		return nil, domain.ErrCouponExpired
	}

	tx, err := s.repo.BeginUsage(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	usage, err := tx.Get(ctx, userID, couponID)
	if err != nil {
		return nil, err
	}
	if usage != nil && usage.IsUsed && usage.HasAvail {
		return nil, domain.ErrCouponUsed
	}
	if orderTotal < code.MinimumOrderValue {
		return nil, &domain.MinOrderValueError{Minimum: code.MinimumOrderValue}
	}

	if err := tx.Reserve(ctx, userID, couponID); err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	s.logger.Printf("coupon %s reserved for user %s (order total %.2f)", couponID, userID, orderTotal)
	return code, nil
}

// Redeem marks the coupon consumed for the user. Called once a checkout
// using the coupon completes.
func (s *Service) Redeem(ctx context.Context, userID, couponID string) error {
	tx, err := s.repo.BeginUsage(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if err := tx.MarkUsed(ctx, userID, couponID); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func (s *Service) activeCoupon(ctx context.Context, id string) (*domain.CouponCode, error) {
	var cached domain.CouponCode
	if s.cache.GetJSON(ctx, cacheKey(id), &cached) && cached.Active {
		return &cached, nil
	}

	code, err := s.repo.GetActive(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrCouponInvalid
		}
		return nil, err
	}
	s.cache.SetJSON(ctx, cacheKey(id), code, cache.CouponTTL)
	return code, nil
}

func (s *Service) Create(ctx context.Context, in domain.CouponCode) (*domain.CouponCode, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, errors.New("name required")
	}
	if in.DiscountPercentage <= 0 || in.DiscountPercentage > 100 {
		return nil, errors.New("discountPercentage must be between 0 and 100")
	}
	if in.MinimumOrderValue < 0 {
		return nil, errors.New("minimumOrderValue must not be negative")
	}
	if in.ExpiryTimestamp <= s.now().Unix() {
		return nil, fmt.Errorf("expiryTimeStamp %d is in the past", in.ExpiryTimestamp)
	}
	return s.repo.Create(ctx, in)
}

func (s *Service) Get(ctx context.Context, id string) (*domain.CouponCode, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context, params domain.ListParams) ([]domain.CouponCode, int, error) {
	return s.repo.List(ctx, params)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.cache.Invalidate(ctx, cacheKey(id))
	return nil
}
