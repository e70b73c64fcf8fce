package routes

import (
	"foodfreaky/ratelim"

	"github.com/julienschmidt/httprouter"
)

func RoutesWrapper(router *httprouter.Router, rateLimiter *ratelim.RateLimiter) {
	AddAuthRoutes(router, rateLimiter)
	AddRestaurantRoutes(router, rateLimiter)
	AddOrderRoutes(router, rateLimiter)
	AddCouponRoutes(router, rateLimiter)
	AddCreditRoutes(router, rateLimiter)
	AddFavoriteRoutes(router, rateLimiter)
	AddSettingsRoutes(router, rateLimiter)
	AddAdminRoutes(router, rateLimiter)
	AddStaticRoutes(router)
}
