package routes

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"foodfreaky/ratelim"

	"github.com/julienschmidt/httprouter"
	"github.com/stretchr/testify/assert"
)

// Coupon validation serves logged-out users pricing a cart; only the rate
// limiter sits in front of it.
func TestCouponValidationIsPublic(t *testing.T) {
	router := httprouter.New()
	AddCouponRoutes(router, ratelim.NewRateLimiter())

	req := httptest.NewRequest(http.MethodPost, "/api/coupons/validate", strings.NewReader(`{}`))
	req.RemoteAddr = "203.0.113.7:4321"
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.NotEqual(t, http.StatusUnauthorized, w.Code)
	// The handler ran and rejected the empty payload, not the missing token.
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Coupon code is required")
}
