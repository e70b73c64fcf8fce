package pricing

import (
	"testing"

	"foodfreaky/models"

	"github.com/stretchr/testify/assert"
)

func lines(subtotal float64) []Line {
	return []Line{{Name: "item", Price: subtotal, Quantity: 1}}
}

func TestTaxBrackets(t *testing.T) {
	tests := []struct {
		subtotal float64
		wantTax  float64
	}{
		{100, 9.00},
		{499.99, 45.00}, // 499.99 * 0.09 = 44.9991 → 45.00
		{500, 42.50},
		{600, 51.00},
		{749.99, 63.75},
		{750, 56.25},
		{999.99, 75.00},
		{1000, 62.50},
		{2000, 125.00},
	}
	for _, tt := range tests {
		q := Compute(lines(tt.subtotal), models.TypeRestaurant, nil, 0, 0)
		assert.InDelta(t, tt.wantTax, q.Tax, 0.001, "subtotal=%v", tt.subtotal)
	}
}

func TestFruitStallNeverTaxed(t *testing.T) {
	for _, subtotal := range []float64{10, 499, 500, 750, 1000, 5000} {
		q := Compute(lines(subtotal), models.TypeFruitStall, nil, 0, 0)
		assert.Zero(t, q.Tax, "subtotal=%v", subtotal)
	}
}

func TestDeliveryCharge(t *testing.T) {
	assert.Equal(t, 50.0, Compute(lines(100), models.TypeRestaurant, nil, 0, 0).Delivery)
	assert.Equal(t, 50.0, Compute(lines(2000), models.TypeRestaurant, nil, 0, 0).Delivery)
	assert.Equal(t, 30.0, Compute(lines(400), models.TypeFruitStall, nil, 0, 0).Delivery)
	assert.Equal(t, 50.0, Compute(lines(500), models.TypeFruitStall, nil, 0, 0).Delivery)
}

func TestDiscountClampedToSubtotal(t *testing.T) {
	fixed := &CouponTerms{Type: models.DiscountFixed, Value: 500}
	q := Compute(lines(200), models.TypeRestaurant, fixed, 0, 0)
	assert.Equal(t, 200.0, q.Discount)
	// fees survive the clamp
	assert.InDelta(t, q.Tax+q.Delivery, q.Total, 0.001)

	pct := &CouponTerms{Type: models.DiscountPercentage, Value: 20}
	q = Compute(lines(1000), models.TypeRestaurant, pct, 0, 0)
	assert.Equal(t, 200.0, q.Discount)
}

func TestFixedDiscountIndependentOfSubtotal(t *testing.T) {
	fixed := &CouponTerms{Type: models.DiscountFixed, Value: 75}
	for _, subtotal := range []float64{100, 600, 1200} {
		q := Compute(lines(subtotal), models.TypeRestaurant, fixed, 0, 0)
		assert.Equal(t, 75.0, q.Discount, "subtotal=%v", subtotal)
	}
}

func TestTotalNeverNegative(t *testing.T) {
	fixed := &CouponTerms{Type: models.DiscountFixed, Value: 10000}
	q := Compute(lines(50), models.TypeFruitStall, fixed, 10000, 10000)
	assert.GreaterOrEqual(t, q.Total, 0.0)
}

func TestRestaurantSubtotal600(t *testing.T) {
	q := Compute([]Line{{Name: "thali", Price: 300, Quantity: 2}}, models.TypeRestaurant, nil, 0, 0)
	assert.Equal(t, 600.0, q.Subtotal)
	assert.Equal(t, 51.0, q.Tax)
	assert.Equal(t, 50.0, q.Delivery)
	assert.Equal(t, 701.0, q.Total)
}

func TestFruitStallSubtotal400(t *testing.T) {
	q := Compute(lines(400), models.TypeFruitStall, nil, 0, 0)
	assert.Zero(t, q.Tax)
	assert.Equal(t, 30.0, q.Delivery)
	assert.Equal(t, 430.0, q.Total)
}

func TestCouponTwentyPercentOn1000(t *testing.T) {
	pct := &CouponTerms{Type: models.DiscountPercentage, Value: 20}
	q := Compute(lines(1000), models.TypeRestaurant, pct, 0, 0)
	assert.Equal(t, 200.0, q.Discount)
	assert.Equal(t, 62.5, q.Tax)
	assert.Equal(t, 50.0, q.Delivery)
	assert.Equal(t, 912.5, q.Total)
	assert.Equal(t, 45.0, q.MaxCredits) // floor(0.05*912.5)
}

func TestCreditsRedemption(t *testing.T) {
	pct := &CouponTerms{Type: models.DiscountPercentage, Value: 20}
	q := Compute(lines(1000), models.TypeRestaurant, pct, 45, 100)
	assert.Equal(t, 45.0, q.CreditsUsed)
	assert.Equal(t, 867.5, q.Total)
}

func TestCreditsBoundedByBalanceAndCap(t *testing.T) {
	// cap binds
	q := Compute(lines(1000), models.TypeRestaurant, nil, 1000, 1000)
	assert.Equal(t, q.MaxCredits, q.CreditsUsed)

	// balance binds
	q = Compute(lines(1000), models.TypeRestaurant, nil, 1000, 10)
	assert.Equal(t, 10.0, q.CreditsUsed)

	// request binds
	q = Compute(lines(1000), models.TypeRestaurant, nil, 5, 1000)
	assert.Equal(t, 5.0, q.CreditsUsed)

	// invariant: creditsUsed <= min(balance, maxCredits)
	assert.LessOrEqual(t, q.CreditsUsed, q.MaxCredits)
}

func TestNegativeCreditRequestIgnored(t *testing.T) {
	q := Compute(lines(1000), models.TypeRestaurant, nil, -20, 100)
	assert.Zero(t, q.CreditsUsed)
}
