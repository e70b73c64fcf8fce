package authz

import (
	"testing"

	"foodfreaky/models"

	"github.com/stretchr/testify/assert"
)

func TestPolicy(t *testing.T) {
	tests := []struct {
		role   string
		action Action
		want   bool
	}{
		{models.RoleAdmin, ManageRestaurants, true},
		{models.RoleAdmin, UpdateOrderStatus, true},
		{models.RoleAdmin, ListAllOrders, true},
		{models.RoleDeliveryAdmin, UpdateOrderStatus, true},
		{models.RoleDeliveryAdmin, ListTodayOrders, true},
		{models.RoleDeliveryAdmin, ListAllOrders, false},
		{models.RoleDeliveryAdmin, ManageCoupons, false},
		{models.RoleDeliveryAdmin, ManageSettings, false},
		{models.RoleUser, UpdateOrderStatus, false},
		{models.RoleUser, ManageRestaurants, false},
		{"", ManageRestaurants, false},
		{"superadmin", ManageRestaurants, false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Can(tt.role, tt.action), "role=%q action=%q", tt.role, tt.action)
	}
}
