package checkout

import (
	"context"
	"errors"
	"log"
	"math"

	"github.com/stripe/stripe-go/v83"
	"github.com/stripe/stripe-go/v83/paymentintent"

	"kol-marketplace/internal/domain"
	cartsvc "kol-marketplace/internal/service/cart"
)

type Service struct {
	repo    checkoutRepo
	carts   cartGetter
	coupons couponRedeemer
	logger  *log.Logger

	// Empty when Stripe is not configured; checkouts then complete
	// without a payment intent.
	stripeKey string
}

type checkoutRepo interface {
	Create(ctx context.Context, in domain.Checkout) (*domain.Checkout, error)
	GetByID(ctx context.Context, id string) (*domain.Checkout, error)
}

type cartGetter interface {
	Get(ctx context.Context, id string, coupon *cartsvc.CouponRef) (*cartsvc.PricedCart, error)
}

type couponRedeemer interface {
	Redeem(ctx context.Context, userID, couponID string) error
}

func New(repo checkoutRepo, carts cartGetter, coupons couponRedeemer, stripeKey string, logger *log.Logger) *Service {
	return &Service{repo: repo, carts: carts, coupons: coupons, stripeKey: stripeKey, logger: logger}
}

// Result is a persisted checkout plus the Stripe client secret the frontend
// needs to confirm the payment. The secret is never stored.
type Result struct {
	domain.Checkout
	ClientSecret string `json:"clientSecret,omitempty"`
}

func (s *Service) Create(ctx context.Context, cartID, userID string, couponID *string) (*Result, error) {
	if cartID == "" {
		return nil, errors.New("cartId is required")
	}
	if userID == "" {
		return nil, errors.New("userId is required")
	}

	var ref *cartsvc.CouponRef
	if couponID != nil && *couponID != "" {
		ref = &cartsvc.CouponRef{UserID: userID, CouponID: *couponID}
	}
	priced, err := s.carts.Get(ctx, cartID, ref)
	if err != nil {
		return nil, err
	}

	co := domain.Checkout{
		CartID:         cartID,
		UserID:         userID,
		Subtotal:       priced.Pricing.Subtotal,
		ManagementFee:  priced.Pricing.DiscountedFee,
		CouponDiscount: priced.Pricing.CouponDiscountAmount,
		Total:          priced.Pricing.Total,
	}
	if ref != nil {
		co.CouponID = couponID
	}

	var secret string
	if s.stripeKey != "" {
		pi, err := s.createPaymentIntent(priced.Pricing.Total)
		if err != nil {
			return nil, err
		}
		co.PaymentIntentID = pi.ID
		secret = pi.ClientSecret
	}

	created, err := s.repo.Create(ctx, co)
	if err != nil {
		return nil, err
	}

	if ref != nil {
		if err := s.coupons.Redeem(ctx, ref.UserID, ref.CouponID); err != nil {
			// The checkout already exists; surface the failure but keep it.
			s.logger.Printf("checkout %s: coupon redeem failed: %v", created.ID, err)
			return nil, err
		}
	}

	s.logger.Printf("checkout %s: cart %s total %.2f", created.ID, cartID, created.Total)
	return &Result{Checkout: *created, ClientSecret: secret}, nil
}

func (s *Service) Get(ctx context.Context, id string) (*domain.Checkout, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) createPaymentIntent(total float64) (*stripe.PaymentIntent, error) {
	stripe.Key = s.stripeKey
	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(int64(math.Round(total * 100))),
		Currency: stripe.String("eur"),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}
	return paymentintent.New(params)
}
