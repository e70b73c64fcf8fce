package orders

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"foodfreaky/authz"
	"foodfreaky/db"
	"foodfreaky/models"
	"foodfreaky/mq"
	"foodfreaky/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// AdminListOrders handles GET /api/admin/orders. Admins see everything;
// delivery admins see today's orders only (a read-side filter, not a
// security boundary).
func AdminListOrders(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	role := utils.GetRoleFromRequest(r)
	opts := utils.ParseQueryOptions(r)

	filter := bson.M{}
	if opts.Status != "" {
		filter["status"] = opts.Status
	}

	if !authz.Can(role, authz.ListAllOrders) {
		filter["created_at"] = bson.M{"$gte": startOfDay(time.Now())}
	}

	findOpts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(int64((opts.Page - 1) * opts.Limit)).
		SetLimit(int64(opts.Limit))

	cursor, err := db.OrderCollection.Find(ctx, filter, findOpts)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch orders")
		return
	}
	defer cursor.Close(ctx)

	orders := []models.Order{}
	if err := cursor.All(ctx, &orders); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Error reading orders")
		return
	}

	total, _ := db.OrderCollection.CountDocuments(ctx, filter)

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"success": true,
		"data":    orders,
		"page":    opts.Page,
		"limit":   opts.Limit,
		"total":   total,
	})
}

// startOfDay returns midnight in the server's timezone. Truncate would give
// UTC midnight, which shifts "today" by the zone offset.
func startOfDay(now time.Time) time.Time {
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
}

// UpdateOrderStatus handles PUT /api/admin/orders/:id/status. The move into
// Delivered fires the invoice email through the event worker; that side
// effect can fail without touching the committed status change.
func UpdateOrderStatus(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	orderID := ps.ByName("id")

	var input struct {
		Status models.OrderStatus `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}

	if !IsKnownStatus(input.Status) {
		utils.RespondWithError(w, http.StatusBadRequest, "Unrecognized order status")
		return
	}

	var order models.Order
	if err := db.OrderCollection.FindOne(ctx, bson.M{"orderid": orderID}).Decode(&order); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Order not found")
		return
	}

	if err := CanTransition(order.Status, input.Status); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	// The status filter rejects the write if another admin raced us past
	// this state.
	res, err := db.OrderCollection.UpdateOne(ctx,
		bson.M{"orderid": orderID, "status": order.Status},
		bson.M{"$set": bson.M{"status": input.Status}})
	if err != nil || res.ModifiedCount == 0 {
		utils.RespondWithError(w, http.StatusBadRequest, "Order status changed concurrently, retry")
		return
	}

	Broadcast(orderID, input.Status)

	if input.Status == models.StatusDelivered {
		go mq.Emit(ctx, "order-delivered", models.Index{EntityType: "order", EntityId: orderID})
	}

	order.Status = input.Status
	utils.RespondWithData(w, http.StatusOK, order)
}
