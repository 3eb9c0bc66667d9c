package cart

import (
	"math"
	"testing"

	"kol-marketplace/internal/domain"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func cartWithSubtotal(subtotal float64) domain.Cart {
	return domain.Cart{
		PackageItems: []domain.PackageCartItem{
			{Quantity: 1, Package: domain.PackageHeader{Cost: subtotal}},
		},
	}
}

func TestManagementFeeTiers(t *testing.T) {
	cases := []struct {
		subtotal float64
		wantPct  float64
	}{
		{0, 15},
		{10000, 15},
		{24999.99, 15},
		{25000, 12.5},
		{49999.99, 12.5},
		{50000, 10},
		{74999.99, 10},
		{75000, 7.5},
		{99999.99, 7.5},
		{100000, 0},
		{250000, 0},
	}
	for _, tc := range cases {
		got := managementFeePct(tc.subtotal)
		if got != tc.wantPct {
			t.Errorf("subtotal %v: expected %v%%, got %v%%", tc.subtotal, tc.wantPct, got)
		}
	}
}

func TestPriceFeeRebate(t *testing.T) {
	for _, subtotal := range []float64{0, 1000, 24999, 60000, 99999} {
		p := Price(cartWithSubtotal(subtotal), 0)
		if !almostEqual(p.DiscountedFee, p.ManagementFee*0.95) {
			t.Errorf("subtotal %v: discounted fee %v is not 95%% of %v", subtotal, p.DiscountedFee, p.ManagementFee)
		}
	}
}

func TestPriceEndToEnd(t *testing.T) {
	c := domain.Cart{
		PackageItems: []domain.PackageCartItem{
			{Quantity: 1, Package: domain.PackageHeader{Cost: 30000}},
		},
		InfluencerItems: []domain.InfluencerCartItem{
			{Quantity: 1, Influencer: domain.Influencer{Price: 5000}},
		},
	}
	p := Price(c, 0)
	if p.Subtotal != 35000 {
		t.Fatalf("expected subtotal 35000, got %v", p.Subtotal)
	}
	if p.ManagementFeePct != 12.5 {
		t.Fatalf("expected 12.5%% fee tier, got %v", p.ManagementFeePct)
	}
	if p.ManagementFee != 4375 {
		t.Fatalf("expected fee 4375, got %v", p.ManagementFee)
	}
	if !almostEqual(p.DiscountedFee, 4156.25) {
		t.Fatalf("expected discounted fee 4156.25, got %v", p.DiscountedFee)
	}
	if !almostEqual(p.Total, 39156.25) {
		t.Fatalf("expected total 39156.25, got %v", p.Total)
	}
	if p.CutAmount != 39375 {
		t.Fatalf("expected cut amount 39375, got %v", p.CutAmount)
	}
}

func TestPriceCouponDiscount(t *testing.T) {
	p := Price(cartWithSubtotal(10000), 10)
	if p.CouponDiscountAmount != 1000 {
		t.Fatalf("expected coupon discount 1000, got %v", p.CouponDiscountAmount)
	}
	// 10000 - 1000 + (10000 * 15% * 0.95)
	if !almostEqual(p.Total, 9000+1425) {
		t.Fatalf("unexpected total %v", p.Total)
	}
}

func TestPriceIgnoresQuantity(t *testing.T) {
	c := domain.Cart{
		PackageItems: []domain.PackageCartItem{
			{Quantity: 4, Package: domain.PackageHeader{Cost: 500}},
		},
		InfluencerItems: []domain.InfluencerCartItem{
			{Quantity: 2, Influencer: domain.Influencer{Price: 300}},
		},
	}
	p := Price(c, 0)
	if p.Subtotal != 800 {
		t.Fatalf("expected subtotal 800 regardless of quantities, got %v", p.Subtotal)
	}
}

func TestPriceEmptyCart(t *testing.T) {
	p := Price(domain.Cart{}, 0)
	if p.Subtotal != 0 || p.ManagementFee != 0 || p.Total != 0 {
		t.Fatalf("expected zeroed pricing for empty cart, got %+v", p)
	}
	if p.ManagementFeePct != 15 {
		t.Fatalf("expected lowest tier for zero subtotal, got %v", p.ManagementFeePct)
	}
}
