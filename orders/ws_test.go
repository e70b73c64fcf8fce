package orders

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/julienschmidt/httprouter"
	"github.com/stretchr/testify/assert"
)

// Watching an order's status stream requires a token; an order id alone is
// not enough.
func TestOrderUpdatesRejectsAnonymous(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/orders/ord-1/updates", nil)
	w := httptest.NewRecorder()

	OrderUpdatesWS(w, req, httprouter.Params{{Key: "id", Value: "ord-1"}})

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Missing or invalid token")
}

func TestOrderUpdatesRejectsGarbageToken(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/orders/ord-1/updates?token=not-a-jwt", nil)
	w := httptest.NewRecorder()

	OrderUpdatesWS(w, req, httprouter.Params{{Key: "id", Value: "ord-1"}})

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestOrderUpdatesRejectsGarbageBearerHeader(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/orders/ord-1/updates", nil)
	req.Header.Set("Authorization", "Bearer not-a-jwt")
	w := httptest.NewRecorder()

	OrderUpdatesWS(w, req, httprouter.Params{{Key: "id", Value: "ord-1"}})

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
