package orders

import (
	"context"
	"net/http"
	"sync"
	"time"

	"foodfreaky/auth"
	"foodfreaky/authz"
	"foodfreaky/db"
	"foodfreaky/middleware"
	"foodfreaky/models"
	"foodfreaky/utils"

	"github.com/gorilla/websocket"
	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

var (
	subscribers = make(map[string][]*websocket.Conn)
	mu          sync.Mutex
)

// OrderUpdatesWS handles GET /api/orders/:id/updates: the client holds the
// socket open and receives a message on every status change. Browsers cannot
// set headers on a websocket handshake, so the token may arrive as a ?token=
// query parameter instead of the Authorization header. Only the order's owner
// and staff who manage order statuses may watch the stream.
func OrderUpdatesWS(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	orderID := ps.ByName("id")

	tokenString := r.URL.Query().Get("token")
	if tokenString == "" {
		tokenString = r.Header.Get("Authorization")
	}
	claims, err := middleware.ValidateJWT(tokenString)
	if err != nil {
		utils.RespondWithError(w, http.StatusUnauthorized, "Missing or invalid token")
		return
	}
	if !auth.SessionActive(claims.UserID, tokenString) {
		utils.RespondWithError(w, http.StatusUnauthorized, "Session expired")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var order models.Order
	if err := db.OrderCollection.FindOne(ctx, bson.M{"orderid": orderID}).Decode(&order); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Order not found")
		return
	}
	if order.UserID != claims.UserID && !authz.Can(claims.Role, authz.UpdateOrderStatus) {
		utils.RespondWithError(w, http.StatusUnauthorized, "Not your order")
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		http.Error(w, "WebSocket upgrade failed", http.StatusBadRequest)
		return
	}

	mu.Lock()
	subscribers[orderID] = append(subscribers[orderID], conn)
	mu.Unlock()

	for {
		// Keeps the connection alive until the client disconnects.
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}

	mu.Lock()
	conns := subscribers[orderID]
	newList := make([]*websocket.Conn, 0, len(conns))
	for _, c := range conns {
		if c != conn {
			newList = append(newList, c)
		}
	}
	subscribers[orderID] = newList
	mu.Unlock()

	conn.Close()
}

// Broadcast pushes a status change to everyone watching an order.
func Broadcast(orderID string, status models.OrderStatus) {
	mu.Lock()
	defer mu.Unlock()

	conns := subscribers[orderID]
	newList := conns[:0]

	for _, conn := range conns {
		err := conn.WriteJSON(map[string]string{"orderId": orderID, "status": string(status)})
		if err == nil {
			newList = append(newList, conn)
		} else {
			conn.Close()
		}
	}

	subscribers[orderID] = newList
}
