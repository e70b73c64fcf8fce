package invoice

import (
	"testing"
	"time"

	"foodfreaky/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender(t *testing.T) {
	order := &models.Order{
		OrderID:         "ord-123",
		RestaurantName:  "Spice Villa",
		ShippingAddress: "Hostel B, Room 214",
		Items: []models.OrderItem{
			{Name: "Paneer Tikka", Quantity: 2, Price: 250},
			{Name: "Butter Naan", Quantity: 4, Price: 40},
		},
		ItemsPrice:    660,
		TaxPrice:      56.1,
		ShippingPrice: 50,
		TotalPrice:    766.1,
		Status:        models.StatusDelivered,
		CreatedAt:     time.Date(2025, 5, 20, 19, 30, 0, 0, time.UTC),
	}

	pdf, err := Render(order, "Asha", "asha@example.com")
	require.NoError(t, err)
	assert.NotEmpty(t, pdf)
	assert.Equal(t, "%PDF", string(pdf[:4]))
}

func TestRenderWithDiscountAndCredits(t *testing.T) {
	order := &models.Order{
		OrderID:        "ord-456",
		RestaurantName: "Fresh Fruits",
		Items:          []models.OrderItem{{Name: "Mango Box", Quantity: 1, Price: 400}},
		ItemsPrice:     400,
		ShippingPrice:  30,
		CouponCode:     "SAVE10",
		CreditsUsed:    15,
		TotalPrice:     375,
		CreatedAt:      time.Now(),
	}

	pdf, err := Render(order, "Ravi", "ravi@example.com")
	require.NoError(t, err)
	assert.NotEmpty(t, pdf)
}
