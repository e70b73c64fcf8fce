package restaurants

import (
	"testing"

	"foodfreaky/models"

	"github.com/stretchr/testify/assert"
)

func TestMenuPrice(t *testing.T) {
	r := &models.Restaurant{
		Menu: []models.MenuCategory{
			{Name: "Mains", Items: []models.MenuItem{
				{ItemID: "a1", Name: "Paneer Tikka", Price: 240},
				{ItemID: "a2", Name: "Dal Makhani", Price: 180},
			}},
			{Name: "Drinks", Items: []models.MenuItem{
				{ItemID: "b1", Name: "Lassi", Price: 60},
			}},
		},
	}

	price, ok := MenuPrice(r, "Dal Makhani")
	assert.True(t, ok)
	assert.Equal(t, 180.0, price)

	// lookup crosses category boundaries
	price, ok = MenuPrice(r, "Lassi")
	assert.True(t, ok)
	assert.Equal(t, 60.0, price)

	_, ok = MenuPrice(r, "Biryani")
	assert.False(t, ok)
}

func TestKindDefaultsToRestaurant(t *testing.T) {
	assert.Equal(t, models.TypeRestaurant, (&models.Restaurant{}).Kind())
	assert.Equal(t, models.TypeRestaurant, (&models.Restaurant{Type: models.TypeRestaurant}).Kind())
	assert.Equal(t, models.TypeFruitStall, (&models.Restaurant{Type: models.TypeFruitStall}).Kind())
}
