package cart

import "kol-marketplace/internal/domain"

// Management fee bands by subtotal, lower bound inclusive, upper exclusive.
// Subtotals of 100000 and above pay no management fee.
var feeTiers = []struct {
	upper float64
	pct   float64
}{
	{25000, 15},
	{50000, 12.5},
	{75000, 10},
	{100000, 7.5},
}

// Every management fee carries a flat 5% rebate.
const feeRebate = 0.95

func managementFeePct(subtotal float64) float64 {
	for _, tier := range feeTiers {
		if subtotal < tier.upper {
			return tier.pct
		}
	}
	return 0
}

// Price computes the charge breakdown for a loaded cart. The subtotal sums
// one package cost and one influencer price per line item; line quantity is
// not a price multiplier. couponPct is 0 when no coupon is applied.
func Price(c domain.Cart, couponPct float64) domain.Pricing {
	var subtotal float64
	for _, item := range c.PackageItems {
		subtotal += item.Package.Cost
	}
	for _, item := range c.InfluencerItems {
		subtotal += item.Influencer.Price
	}

	pct := managementFeePct(subtotal)
	fee := subtotal * pct / 100
	discountedFee := fee * feeRebate
	couponAmount := subtotal * couponPct / 100

	return domain.Pricing{
		Subtotal:             subtotal,
		ManagementFeePct:     pct,
		ManagementFee:        fee,
		DiscountedFee:        discountedFee,
		CouponDiscountPct:    couponPct,
		CouponDiscountAmount: couponAmount,
		CutAmount:            subtotal + fee,
		Total:                subtotal - couponAmount + discountedFee,
	}
}
