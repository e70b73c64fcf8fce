package restaurants

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"foodfreaky/db"
	"foodfreaky/models"
	"foodfreaky/rdx"
	"foodfreaky/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func cacheKey(id string) string {
	return "restaurant:" + id
}

// InvalidateCache drops the cached copies touched by an admin write.
func InvalidateCache(restaurantID string) {
	if err := rdx.RdxDel(cacheKey(restaurantID)); err != nil {
		// cache only; nothing to do
		return
	}
}

// GetRestaurants handles GET /api/restaurants. The menu field is omitted
// from list views; clients fetch it per restaurant.
func GetRestaurants(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	opts := utils.ParseQueryOptions(r)

	filter := bson.M{}
	if opts.Search != "" {
		filter["name"] = bson.M{"$regex": opts.Search, "$options": "i"}
	}

	findOpts := options.Find().
		SetProjection(bson.M{"menu": 0}).
		SetSort(bson.D{{Key: "name", Value: 1}}).
		SetSkip(int64((opts.Page - 1) * opts.Limit)).
		SetLimit(int64(opts.Limit))

	cursor, err := db.RestaurantCollection.Find(ctx, filter, findOpts)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch restaurants")
		return
	}
	defer cursor.Close(ctx)

	restaurants := []models.Restaurant{}
	if err := cursor.All(ctx, &restaurants); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Error reading restaurants")
		return
	}

	total, err := db.RestaurantCollection.CountDocuments(ctx, filter)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to count restaurants")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"success": true,
		"data":    restaurants,
		"page":    opts.Page,
		"limit":   opts.Limit,
		"total":   total,
	})
}

// GetRestaurant handles GET /api/restaurants/:id, menu included, served from
// the Redis cache when warm.
func GetRestaurant(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	restaurantID := ps.ByName("id")

	if cached, err := rdx.RdxGet(cacheKey(restaurantID)); err == nil && cached != "" {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(cached))
		return
	}

	var restaurant models.Restaurant
	err := db.RestaurantCollection.FindOne(ctx, bson.M{"restaurantid": restaurantID}).Decode(&restaurant)
	if err != nil {
		utils.RespondWithError(w, http.StatusNotFound, fmt.Sprintf("Restaurant %s not found", restaurantID))
		return
	}

	payload := utils.M{"success": true, "data": restaurant}
	if data, err := json.Marshal(payload); err == nil {
		_ = rdx.SetWithExpiry(cacheKey(restaurantID), string(data), 5*time.Minute)
	}

	utils.RespondWithJSON(w, http.StatusOK, payload)
}

// FindByID loads a restaurant for internal use (order placement pricing).
func FindByID(ctx context.Context, restaurantID string) (*models.Restaurant, error) {
	var restaurant models.Restaurant
	err := db.RestaurantCollection.FindOne(ctx, bson.M{"restaurantid": restaurantID}).Decode(&restaurant)
	if err != nil {
		return nil, err
	}
	return &restaurant, nil
}

// MenuPrice looks up an item by name across the menu. Order placement uses
// this to re-derive prices from authoritative menu state.
func MenuPrice(restaurant *models.Restaurant, itemName string) (float64, bool) {
	for _, cat := range restaurant.Menu {
		for _, item := range cat.Items {
			if item.Name == itemName {
				return item.Price, true
			}
		}
	}
	return 0, false
}
