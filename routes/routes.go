package routes

import (
	"net/http"

	"foodfreaky/admin"
	"foodfreaky/auth"
	"foodfreaky/authz"
	"foodfreaky/coupons"
	"foodfreaky/credits"
	"foodfreaky/favorites"
	"foodfreaky/filemgr"
	"foodfreaky/middleware"
	"foodfreaky/orders"
	"foodfreaky/ratelim"
	"foodfreaky/restaurants"
	"foodfreaky/settings"

	"github.com/julienschmidt/httprouter"
)

func AddStaticRoutes(router *httprouter.Router) {
	router.ServeFiles("/static/restaurantpic/*filepath", http.Dir("static/restaurantpic"))
	router.ServeFiles("/static/userpic/*filepath", http.Dir("static/userpic"))
}

func AddAuthRoutes(router *httprouter.Router, rl *ratelim.RateLimiter) {
	router.POST("/api/auth/register", rl.Limit(auth.Register))
	router.POST("/api/auth/login", rl.Limit(auth.Login))
	router.POST("/api/auth/logout", middleware.Authenticate(auth.LogoutUser))
	router.POST("/api/auth/token/refresh", rl.Limit(middleware.Authenticate(auth.RefreshToken)))
	router.POST("/api/auth/verify-otp", rl.Limit(auth.VerifyOTPHandler))
	router.POST("/api/auth/resend-otp", rl.Limit(auth.ResendOTPHandler))
	router.POST("/api/auth/google", rl.Limit(auth.GoogleSignIn))
	router.POST("/api/auth/forgot-password", rl.Limit(auth.ForgotPassword))
	router.PUT("/api/auth/reset-password/:token", rl.Limit(auth.ResetPassword))

	router.GET("/api/auth/me", middleware.Authenticate(auth.Me))
	router.PUT("/api/auth/profile", middleware.Authenticate(auth.UpdateProfile))
}

func AddRestaurantRoutes(router *httprouter.Router, rl *ratelim.RateLimiter) {
	router.GET("/api/restaurants", rl.Limit(restaurants.GetRestaurants))
	router.GET("/api/restaurants/:id", rl.Limit(restaurants.GetRestaurant))
}

func AddOrderRoutes(router *httprouter.Router, rl *ratelim.RateLimiter) {
	router.POST("/api/orders", rl.Limit(middleware.Authenticate(orders.CreateOrder)))
	router.GET("/api/orders", middleware.Authenticate(orders.GetMyOrders))
	router.PUT("/api/orders/:id/cancel", middleware.Authenticate(orders.CancelOrder))
	router.GET("/api/orders/:id/invoice", middleware.Authenticate(orders.GetInvoice))
	router.GET("/api/orders/:id/updates", orders.OrderUpdatesWS)
}

func AddCouponRoutes(router *httprouter.Router, rl *ratelim.RateLimiter) {
	router.POST("/api/coupons/validate", rl.Limit(coupons.ValidateCouponHandler))
}

func AddCreditRoutes(router *httprouter.Router, rl *ratelim.RateLimiter) {
	router.GET("/api/credits", middleware.Authenticate(credits.GetCredits))
}

func AddFavoriteRoutes(router *httprouter.Router, rl *ratelim.RateLimiter) {
	router.GET("/api/favorites", middleware.Authenticate(favorites.GetFavorites))
	router.POST("/api/favorites/:restaurantId", middleware.Authenticate(favorites.AddFavorite))
	router.DELETE("/api/favorites/:restaurantId", middleware.Authenticate(favorites.RemoveFavorite))
}

func AddSettingsRoutes(router *httprouter.Router, rl *ratelim.RateLimiter) {
	router.GET("/api/settings", rl.Limit(settings.GetSettings))
}

func AddAdminRoutes(router *httprouter.Router, rl *ratelim.RateLimiter) {
	manageRestaurants := func(h httprouter.Handle) httprouter.Handle {
		return middleware.Authenticate(authz.Require(authz.ManageRestaurants, h))
	}

	router.POST("/api/admin/restaurants", manageRestaurants(admin.CreateRestaurant))
	router.GET("/api/admin/restaurants/:id", manageRestaurants(admin.GetRestaurantDetail))
	router.PUT("/api/admin/restaurants/:id", manageRestaurants(admin.UpdateRestaurant))
	router.DELETE("/api/admin/restaurants/:id", manageRestaurants(admin.DeleteRestaurant))
	router.POST("/api/admin/restaurants/:id/image", manageRestaurants(filemgr.UploadRestaurantImage))

	router.POST("/api/admin/restaurants/:id/categories", manageRestaurants(admin.AddMenuCategory))
	router.DELETE("/api/admin/restaurants/:id/categories/:category", manageRestaurants(admin.RemoveMenuCategory))
	router.POST("/api/admin/restaurants/:id/categories/:category/items", manageRestaurants(admin.AddMenuItem))
	router.PUT("/api/admin/restaurants/:id/categories/:category/items/:itemId", manageRestaurants(admin.UpdateMenuItem))
	router.DELETE("/api/admin/restaurants/:id/categories/:category/items/:itemId", manageRestaurants(admin.DeleteMenuItem))

	router.POST("/api/admin/coupons", middleware.Authenticate(authz.Require(authz.ManageCoupons, admin.CreateCoupon)))
	router.GET("/api/admin/coupons", middleware.Authenticate(authz.Require(authz.ManageCoupons, admin.ListCoupons)))
	router.DELETE("/api/admin/coupons/:code", middleware.Authenticate(authz.Require(authz.ManageCoupons, admin.DeleteCoupon)))

	router.GET("/api/admin/users", middleware.Authenticate(authz.Require(authz.ManageUsers, admin.ListUsers)))
	router.PUT("/api/admin/users/:id/role", middleware.Authenticate(authz.Require(authz.ManageUsers, admin.UpdateUserRole)))
	router.POST("/api/admin/users/:id/credits", middleware.Authenticate(authz.Require(authz.GrantCredits, admin.GrantCredits)))

	router.PUT("/api/admin/settings", middleware.Authenticate(authz.Require(authz.ManageSettings, settings.UpdateSettings)))

	router.GET("/api/admin/orders", middleware.Authenticate(authz.Require(authz.ListTodayOrders, orders.AdminListOrders)))
	router.PUT("/api/admin/orders/:id/status", middleware.Authenticate(authz.Require(authz.UpdateOrderStatus, orders.UpdateOrderStatus)))
}
