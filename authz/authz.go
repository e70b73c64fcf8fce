// Package authz holds the authorization policy as a single auditable table
// instead of role-string comparisons scattered through handlers.
package authz

import (
	"net/http"

	"foodfreaky/models"
	"foodfreaky/utils"

	"github.com/julienschmidt/httprouter"
)

type Action string

const (
	ManageRestaurants Action = "manage_restaurants"
	ManageCoupons     Action = "manage_coupons"
	ManageSettings    Action = "manage_settings"
	ManageUsers       Action = "manage_users"
	GrantCredits      Action = "grant_credits"
	ListAllOrders     Action = "list_all_orders"
	ListTodayOrders   Action = "list_today_orders"
	UpdateOrderStatus Action = "update_order_status"
	ReadAnyInvoice    Action = "read_any_invoice"
)

var policy = map[string]map[Action]bool{
	models.RoleAdmin: {
		ManageRestaurants: true,
		ManageCoupons:     true,
		ManageSettings:    true,
		ManageUsers:       true,
		GrantCredits:      true,
		ListAllOrders:     true,
		ListTodayOrders:   true,
		UpdateOrderStatus: true,
		ReadAnyInvoice:    true,
	},
	models.RoleDeliveryAdmin: {
		ListTodayOrders:   true,
		UpdateOrderStatus: true,
	},
}

// Can reports whether a role may perform an action.
func Can(role string, action Action) bool {
	return policy[role][action]
}

// Require wraps a handler and rejects callers whose role lacks the action.
// It expects Authenticate to have run first.
func Require(action Action, next httprouter.Handle) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		if !Can(utils.GetRoleFromRequest(r), action) {
			utils.RespondWithError(w, http.StatusForbidden, "Not authorized for this action")
			return
		}
		next(w, r, ps)
	}
}
