// Package pricing computes order totals. It is pure: handlers feed it cart
// lines and coupon/credit state, and both order placement and invoice
// verification re-derive totals through it.
package pricing

import (
	"math"

	"foodfreaky/models"
)

type Line struct {
	Name     string
	Price    float64
	Quantity int
}

// CouponTerms carries just the discount parameters of a validated coupon.
type CouponTerms struct {
	Type  string // models.DiscountPercentage or models.DiscountFixed
	Value float64
}

type Quote struct {
	Subtotal    float64
	Tax         float64
	Delivery    float64
	Discount    float64
	MaxCredits  float64
	CreditsUsed float64
	Total       float64
}

// Tax brackets apply to restaurants only; fruit stalls are untaxed.
func taxRate(subtotal float64) float64 {
	switch {
	case subtotal < 500:
		return 0.09
	case subtotal < 750:
		return 0.085
	case subtotal < 1000:
		return 0.075
	default:
		return 0.0625
	}
}

func deliveryCharge(restaurantType string, subtotal float64) float64 {
	if restaurantType == models.TypeFruitStall && subtotal < 500 {
		return 30
	}
	return 50
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Compute derives the full price breakdown for a cart. requestedCredits and
// balance bound the credit redemption; pass zeros when credits are not in
// play. coupon may be nil.
func Compute(lines []Line, restaurantType string, coupon *CouponTerms, requestedCredits, balance float64) Quote {
	var q Quote

	for _, l := range lines {
		q.Subtotal += l.Price * float64(l.Quantity)
	}
	q.Subtotal = round2(q.Subtotal)

	if restaurantType != models.TypeFruitStall {
		q.Tax = round2(q.Subtotal * taxRate(q.Subtotal))
	}

	q.Delivery = deliveryCharge(restaurantType, q.Subtotal)

	if coupon != nil {
		switch coupon.Type {
		case models.DiscountPercentage:
			q.Discount = round2(q.Subtotal * coupon.Value / 100)
		case models.DiscountFixed:
			q.Discount = coupon.Value
		}
		// A coupon can at most zero out the items, never the fees.
		if q.Discount > q.Subtotal {
			q.Discount = q.Subtotal
		}
	}

	preCredit := q.Subtotal + q.Tax + q.Delivery - q.Discount
	q.MaxCredits = math.Floor(0.05 * preCredit)

	q.CreditsUsed = math.Min(requestedCredits, math.Min(balance, q.MaxCredits))
	if q.CreditsUsed < 0 {
		q.CreditsUsed = 0
	}

	q.Total = round2(math.Max(0, preCredit-q.CreditsUsed))
	return q
}
