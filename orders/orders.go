package orders

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"math"
	"net/http"
	"time"

	"foodfreaky/coupons"
	"foodfreaky/credits"
	"foodfreaky/db"
	"foodfreaky/models"
	"foodfreaky/mq"
	"foodfreaky/pricing"
	"foodfreaky/restaurants"
	"foodfreaky/settings"
	"foodfreaky/utils"

	"github.com/google/uuid"
	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// totalsTolerance absorbs client-side float rounding when comparing
// submitted totals against the server-derived quote.
const totalsTolerance = 0.01

type createOrderInput struct {
	RestaurantID    string             `json:"restaurantId"`
	Items           []models.OrderItem `json:"items"`
	CouponCode      string             `json:"couponCode"`
	CreditsToUse    float64            `json:"creditsToUse"`
	ShippingAddress string             `json:"shippingAddress"`
	ItemsPrice      float64            `json:"itemsPrice"`
	TaxPrice        float64            `json:"taxPrice"`
	ShippingPrice   float64            `json:"shippingPrice"`
	TotalPrice      float64            `json:"totalPrice"`
}

// CreateOrder handles POST /api/orders. Totals submitted by the client are
// re-derived from the live menu and coupon state; an order whose numbers
// disagree beyond the rounding tolerance is rejected rather than persisted
// verbatim.
func CreateOrder(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 15*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)

	var input createOrderInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}

	if len(input.Items) == 0 {
		utils.RespondWithError(w, http.StatusBadRequest, "No order items")
		return
	}
	if input.ShippingAddress == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Shipping address is required")
		return
	}

	appSettings, err := settings.Load(ctx)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to load settings")
		return
	}
	if !settings.OrderingOpen(appSettings, time.Now()) {
		utils.RespondWithError(w, http.StatusBadRequest, "Ordering is currently closed")
		return
	}

	restaurant, err := restaurants.FindByID(ctx, input.RestaurantID)
	if err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Restaurant not found")
		return
	}
	if !restaurant.AcceptingOrders {
		utils.RespondWithError(w, http.StatusBadRequest, "Restaurant is not accepting orders")
		return
	}

	// Price lines come from the live menu, not from the client.
	lines := make([]pricing.Line, 0, len(input.Items))
	for _, it := range input.Items {
		if it.Quantity <= 0 {
			utils.RespondWithError(w, http.StatusBadRequest, "Item quantities must be positive")
			return
		}
		price, ok := restaurants.MenuPrice(restaurant, it.Name)
		if !ok {
			utils.RespondWithError(w, http.StatusBadRequest, "Unknown menu item: "+it.Name)
			return
		}
		lines = append(lines, pricing.Line{Name: it.Name, Price: price, Quantity: it.Quantity})
	}

	var couponTerms *pricing.CouponTerms
	if input.CouponCode != "" {
		coupon, err := coupons.Lookup(ctx, input.CouponCode, time.Now())
		if err != nil {
			utils.RespondWithError(w, http.StatusBadRequest, "Coupon is no longer valid")
			return
		}
		couponTerms = &pricing.CouponTerms{Type: coupon.DiscountType, Value: coupon.Value}
	}

	var user models.User
	if err := db.UserCollection.FindOne(ctx, bson.M{"userid": userID}).Decode(&user); err != nil {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	quote := pricing.Compute(lines, restaurant.Kind(), couponTerms, input.CreditsToUse, user.Credits)

	if math.Abs(quote.Total-input.TotalPrice) > totalsTolerance ||
		math.Abs(quote.Subtotal-input.ItemsPrice) > totalsTolerance ||
		math.Abs(quote.Tax-input.TaxPrice) > totalsTolerance ||
		math.Abs(quote.Delivery-input.ShippingPrice) > totalsTolerance {
		utils.RespondWithError(w, http.StatusBadRequest, "Submitted totals do not match current menu and coupon state")
		return
	}

	// Commit the coupon use before the order so the usage limit cannot be
	// oversubscribed by concurrent placements.
	if input.CouponCode != "" {
		if err := coupons.Redeem(ctx, input.CouponCode); err != nil {
			if errors.Is(err, coupons.ErrLimitReached) {
				utils.RespondWithError(w, http.StatusBadRequest, "Coupon usage limit reached")
				return
			}
			utils.RespondWithError(w, http.StatusInternalServerError, "Failed to redeem coupon")
			return
		}
	}

	orderID := uuid.NewString()

	if quote.CreditsUsed > 0 {
		if err := credits.Redeem(ctx, userID, quote.CreditsUsed, orderID); err != nil {
			releaseCouponSlot(ctx, input.CouponCode)
			utils.RespondWithError(w, http.StatusBadRequest, "Insufficient credit balance")
			return
		}
	}

	// Snapshot: name/price/qty copied now, decoupled from future menu edits.
	items := make([]models.OrderItem, len(lines))
	for i, l := range lines {
		items[i] = models.OrderItem{Name: l.Name, Quantity: l.Quantity, Price: l.Price}
	}

	order := models.Order{
		OrderID:         orderID,
		UserID:          userID,
		RestaurantID:    restaurant.RestaurantID,
		RestaurantName:  restaurant.Name,
		Items:           items,
		ItemsPrice:      quote.Subtotal,
		TaxPrice:        quote.Tax,
		ShippingPrice:   quote.Delivery,
		TotalPrice:      quote.Total,
		CouponCode:      utils.NormalizeCode(input.CouponCode),
		CreditsUsed:     quote.CreditsUsed,
		ShippingAddress: input.ShippingAddress,
		Status:          models.StatusWaiting,
		CreatedAt:       time.Now(),
	}
	if input.CouponCode == "" {
		order.CouponCode = ""
	}

	if _, err := db.OrderCollection.InsertOne(ctx, order); err != nil {
		log.Printf("CreateOrder insert error: %v", err)
		// Undo the credit debit and coupon slot; the order never existed.
		if quote.CreditsUsed > 0 {
			if rerr := credits.Refund(ctx, userID, quote.CreditsUsed, orderID); rerr != nil {
				log.Printf("CreateOrder credit rollback failed for %s: %v", userID, rerr)
			}
		}
		releaseCouponSlot(ctx, input.CouponCode)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to place order")
		return
	}

	go mq.Emit(ctx, "order-placed", models.Index{EntityType: "order", EntityId: order.OrderID})

	utils.RespondWithData(w, http.StatusCreated, order)
}

// releaseCouponSlot undoes a committed coupon redemption on a placement
// failure so the aborted order does not burn a usage-limit slot.
func releaseCouponSlot(ctx context.Context, code string) {
	if code == "" {
		return
	}
	if err := coupons.Release(ctx, code); err != nil {
		log.Printf("CreateOrder coupon release failed for %s: %v", code, err)
	}
}

// GetMyOrders handles GET /api/orders, newest first.
func GetMyOrders(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)

	findOpts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := db.OrderCollection.Find(ctx, bson.M{"userid": userID}, findOpts)
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

	utils.RespondWithData(w, http.StatusOK, orders)
}

// CancelOrder handles PUT /api/orders/:id/cancel. Only the owner, and only
// while the restaurant has not yet accepted.
func CancelOrder(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	orderID := ps.ByName("id")

	var order models.Order
	if err := db.OrderCollection.FindOne(ctx, bson.M{"orderid": orderID}).Decode(&order); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Order not found")
		return
	}

	if order.UserID != userID {
		utils.RespondWithError(w, http.StatusUnauthorized, "Not your order")
		return
	}

	if err := CanTransition(order.Status, models.StatusCancelled); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Order can no longer be cancelled")
		return
	}

	// The status filter makes the cancel a no-op if the restaurant accepted
	// in the meantime.
	res, err := db.OrderCollection.UpdateOne(ctx,
		bson.M{"orderid": orderID, "status": models.StatusWaiting},
		bson.M{"$set": bson.M{"status": models.StatusCancelled}})
	if err != nil || res.ModifiedCount == 0 {
		utils.RespondWithError(w, http.StatusBadRequest, "Order can no longer be cancelled")
		return
	}

	if order.CreditsUsed > 0 {
		if err := credits.Refund(ctx, userID, order.CreditsUsed, orderID); err != nil {
			log.Printf("CancelOrder credit refund failed for %s: %v", userID, err)
		}
	}

	Broadcast(orderID, models.StatusCancelled)
	go mq.Emit(ctx, "order-cancelled", models.Index{EntityType: "order", EntityId: orderID})

	order.Status = models.StatusCancelled
	utils.RespondWithData(w, http.StatusOK, order)
}
