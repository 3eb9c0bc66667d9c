package coupon

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"kol-marketplace/internal/domain"
	couponrepo "kol-marketplace/internal/repository/coupon"
)

type stubUsageTx struct {
	usage       *domain.UserCoupon
	getErr      error
	reserveErr  error
	markUsedErr error
	reserved    bool
	marked      bool
	committed   bool
	rolledBack  bool
}

func (t *stubUsageTx) Get(_ context.Context, _, _ string) (*domain.UserCoupon, error) {
	return t.usage, t.getErr
}

func (t *stubUsageTx) Reserve(_ context.Context, _, _ string) error {
	t.reserved = true
	return t.reserveErr
}

func (t *stubUsageTx) MarkUsed(_ context.Context, _, _ string) error {
	t.marked = true
	return t.markUsedErr
}

func (t *stubUsageTx) Commit(_ context.Context) error {
	t.committed = true
	return nil
}

func (t *stubUsageTx) Rollback(_ context.Context) error {
	t.rolledBack = true
	return nil
}

type stubRepo struct {
	active    *domain.CouponCode
	activeErr error
	created   *domain.CouponCode
	tx        *stubUsageTx
}

func (s *stubRepo) Create(_ context.Context, in domain.CouponCode) (*domain.CouponCode, error) {
	s.created = &in
	return &in, nil
}

func (s *stubRepo) GetByID(_ context.Context, _ string) (*domain.CouponCode, error) {
	return s.active, s.activeErr
}

func (s *stubRepo) GetActive(_ context.Context, _ string) (*domain.CouponCode, error) {
	return s.active, s.activeErr
}

func (s *stubRepo) List(_ context.Context, _ domain.ListParams) ([]domain.CouponCode, int, error) {
	return nil, 0, nil
}

func (s *stubRepo) Delete(_ context.Context, _ string) error {
	return nil
}

func (s *stubRepo) BeginUsage(_ context.Context) (couponrepo.UsageTx, error) {
	if s.tx == nil {
		s.tx = &stubUsageTx{}
	}
	return s.tx, nil
}

func freshCoupon() *domain.CouponCode {
	return &domain.CouponCode{
		ID:                 "cp1",
		Name:               "WELCOME10",
		ExpiryTimestamp:    time.Now().Add(24 * time.Hour).Unix(),
		DiscountPercentage: 10,
		MinimumOrderValue:  1000,
		Active:             true,
	}
}

func newService(repo *stubRepo) *Service {
	return New(repo, nil, nil)
}

func TestCheckMissingIdentifiers(t *testing.T) {
	svc := newService(&stubRepo{})
	if _, err := svc.Check(context.Background(), "", "cp1", 100); !errors.Is(err, domain.ErrMissingIdentifiers) {
		t.Fatalf("expected missing identifiers, got %v", err)
	}
	if _, err := svc.Check(context.Background(), "u1", "  ", 100); !errors.Is(err, domain.ErrMissingIdentifiers) {
		t.Fatalf("expected missing identifiers, got %v", err)
	}
}

func TestCheckUnknownCoupon(t *testing.T) {
	svc := newService(&stubRepo{activeErr: domain.ErrNotFound})
	if _, err := svc.Check(context.Background(), "u1", "cp1", 100); !errors.Is(err, domain.ErrCouponInvalid) {
		t.Fatalf("expected invalid coupon, got %v", err)
	}
}

func TestCheckExpiredCoupon(t *testing.T) {
	code := freshCoupon()
	code.ExpiryTimestamp = time.Now().Add(-time.Hour).Unix()
	svc := newService(&stubRepo{active: code})
	if _, err := svc.Check(context.Background(), "u1", "cp1", 1500); !errors.Is(err, domain.ErrCouponExpired) {
		t.Fatalf("expected expired coupon, got %v", err)
	}
}

func TestCheckExpiryComparedInSeconds(t *testing.T) {
	code := freshCoupon()
	repo := &stubRepo{active: code}
	svc := newService(repo)
	// An expiry one second in the future is still valid.
	svc.now = func() time.Time { return time.Unix(code.ExpiryTimestamp-1, 0) }
	if _, err := svc.Check(context.Background(), "u1", "cp1", 1500); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Exactly at expiry it is still accepted; only strictly after fails.
	svc.now = func() time.Time { return time.Unix(code.ExpiryTimestamp, 0) }
	repo.tx = nil
	if _, err := svc.Check(context.Background(), "u1", "cp1", 1500); err != nil {
		t.Fatalf("unexpected error at expiry instant: %v", err)
	}
	svc.now = func() time.Time { return time.Unix(code.ExpiryTimestamp+1, 0) }
	if _, err := svc.Check(context.Background(), "u1", "cp1", 1500); !errors.Is(err, domain.ErrCouponExpired) {
		t.Fatalf("expected expired just after expiry, got %v", err)
	}
}

func TestCheckAlreadyUsed(t *testing.T) {
	tx := &stubUsageTx{usage: &domain.UserCoupon{IsUsed: true, HasAvail: true}}
	svc := newService(&stubRepo{active: freshCoupon(), tx: tx})

	_, err := svc.Check(context.Background(), "u1", "cp1", 1500)
	if !errors.Is(err, domain.ErrCouponUsed) {
		t.Fatalf("expected already-used error, got %v", err)
	}
	if err.Error() != "You have already used this coupon code" {
		t.Fatalf("unexpected message: %q", err.Error())
	}
	if tx.reserved || tx.committed {
		t.Fatalf("usage must not be written on failure")
	}
	if !tx.rolledBack {
		t.Fatalf("expected rollback")
	}
}

func TestCheckReservedButNotUsedIsStillEligible(t *testing.T) {
	// has_avail alone means a prior check reserved the coupon without a
	// completed checkout; the coupon is not spent yet.
	tx := &stubUsageTx{usage: &domain.UserCoupon{HasAvail: true}}
	svc := newService(&stubRepo{active: freshCoupon(), tx: tx})

	if _, err := svc.Check(context.Background(), "u1", "cp1", 1500); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestCheckMinimumOrderValue(t *testing.T) {
	svc := newService(&stubRepo{active: freshCoupon()})

	_, err := svc.Check(context.Background(), "u1", "cp1", 999.99)
	var minErr *domain.MinOrderValueError
	if !errors.As(err, &minErr) {
		t.Fatalf("expected min order error, got %v", err)
	}
	if minErr.Minimum != 1000 {
		t.Fatalf("expected threshold 1000 in error, got %v", minErr.Minimum)
	}
	if !strings.Contains(err.Error(), "1000") {
		t.Fatalf("expected threshold in message, got %q", err.Error())
	}
}

func TestCheckHappyPathReserves(t *testing.T) {
	tx := &stubUsageTx{}
	repo := &stubRepo{active: freshCoupon(), tx: tx}
	svc := newService(repo)

	code, err := svc.Check(context.Background(), "u1", "cp1", 1500)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if code.ID != "cp1" {
		t.Fatalf("expected coupon back, got %+v", code)
	}
	if !tx.reserved || !tx.committed {
		t.Fatalf("expected reservation committed, got %+v", tx)
	}
	if tx.marked {
		t.Fatalf("check must not mark the coupon used")
	}
}

func TestRedeemMarksUsed(t *testing.T) {
	tx := &stubUsageTx{}
	svc := newService(&stubRepo{tx: tx})

	if err := svc.Redeem(context.Background(), "u1", "cp1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !tx.marked || !tx.committed {
		t.Fatalf("expected mark-used committed, got %+v", tx)
	}
}

func TestCreateValidation(t *testing.T) {
	svc := newService(&stubRepo{})
	future := time.Now().Add(time.Hour).Unix()

	cases := []struct {
		name string
		in   domain.CouponCode
	}{
		{"empty name", domain.CouponCode{ExpiryTimestamp: future, DiscountPercentage: 10}},
		{"zero discount", domain.CouponCode{Name: "X", ExpiryTimestamp: future}},
		{"discount over 100", domain.CouponCode{Name: "X", ExpiryTimestamp: future, DiscountPercentage: 101}},
		{"negative minimum", domain.CouponCode{Name: "X", ExpiryTimestamp: future, DiscountPercentage: 10, MinimumOrderValue: -1}},
		{"past expiry", domain.CouponCode{Name: "X", ExpiryTimestamp: time.Now().Add(-time.Hour).Unix(), DiscountPercentage: 10}},
	}
	for _, tc := range cases {
		if _, err := svc.Create(context.Background(), tc.in); err == nil {
			t.Errorf("%s: expected validation error", tc.name)
		}
	}
}
