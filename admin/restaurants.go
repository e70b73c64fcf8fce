package admin

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"foodfreaky/db"
	"foodfreaky/models"
	"foodfreaky/mq"
	"foodfreaky/restaurants"
	"foodfreaky/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type restaurantInput struct {
	Name            string   `json:"name"`
	Cuisine         string   `json:"cuisine"`
	DeliveryTime    string   `json:"deliveryTime"`
	Tags            []string `json:"tags"`
	AcceptingOrders *bool    `json:"acceptingOrders"`
	Type            string   `json:"type"`
}

func validRestaurantType(t string) bool {
	return t == "" || t == models.TypeRestaurant || t == models.TypeFruitStall
}

// CreateRestaurant handles POST /api/admin/restaurants. Names are unique; a
// duplicate is a 400, not a 500.
func CreateRestaurant(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var input restaurantInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil || input.Name == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Restaurant name is required")
		return
	}
	if !validRestaurantType(input.Type) {
		utils.RespondWithError(w, http.StatusBadRequest, "Unknown restaurant type")
		return
	}

	err := db.RestaurantCollection.FindOne(ctx, bson.M{"name": input.Name}).Err()
	if err == nil {
		utils.RespondWithError(w, http.StatusBadRequest, "A restaurant with this name already exists")
		return
	} else if err != mongo.ErrNoDocuments {
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	accepting := true
	if input.AcceptingOrders != nil {
		accepting = *input.AcceptingOrders
	}

	now := time.Now()
	restaurant := models.Restaurant{
		RestaurantID:    "r" + utils.GenerateRandomString(10),
		Name:            input.Name,
		Cuisine:         input.Cuisine,
		DeliveryTime:    input.DeliveryTime,
		Tags:            input.Tags,
		AcceptingOrders: accepting,
		Type:            input.Type,
		Menu:            []models.MenuCategory{},
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if _, err := db.RestaurantCollection.InsertOne(ctx, restaurant); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to create restaurant")
		return
	}

	_ = mq.Notify("restaurant-created", models.Index{EntityType: "restaurant", EntityId: restaurant.RestaurantID})
	utils.RespondWithData(w, http.StatusCreated, restaurant)
}

// GetRestaurantDetail handles GET /api/admin/restaurants/:id, menu included.
func GetRestaurantDetail(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var restaurant models.Restaurant
	err := db.RestaurantCollection.FindOne(ctx, bson.M{"restaurantid": ps.ByName("id")}).Decode(&restaurant)
	if err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Restaurant not found")
		return
	}
	utils.RespondWithData(w, http.StatusOK, restaurant)
}

// UpdateRestaurant handles PUT /api/admin/restaurants/:id.
func UpdateRestaurant(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	restaurantID := ps.ByName("id")

	var input restaurantInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}
	if !validRestaurantType(input.Type) {
		utils.RespondWithError(w, http.StatusBadRequest, "Unknown restaurant type")
		return
	}

	set := bson.M{"updated_at": time.Now()}
	if input.Name != "" {
		set["name"] = input.Name
	}
	if input.Cuisine != "" {
		set["cuisine"] = input.Cuisine
	}
	if input.DeliveryTime != "" {
		set["delivery_time"] = input.DeliveryTime
	}
	if input.Tags != nil {
		set["tags"] = input.Tags
	}
	if input.AcceptingOrders != nil {
		set["accepting_orders"] = *input.AcceptingOrders
	}
	if input.Type != "" {
		set["type"] = input.Type
	}

	res, err := db.RestaurantCollection.UpdateOne(ctx,
		bson.M{"restaurantid": restaurantID}, bson.M{"$set": set})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update restaurant")
		return
	}
	if res.MatchedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Restaurant not found")
		return
	}

	restaurants.InvalidateCache(restaurantID)
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"success": true, "msg": "Restaurant updated"})
}

// DeleteRestaurant handles DELETE /api/admin/restaurants/:id.
func DeleteRestaurant(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	restaurantID := ps.ByName("id")

	res, err := db.RestaurantCollection.DeleteOne(ctx, bson.M{"restaurantid": restaurantID})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to delete restaurant")
		return
	}
	if res.DeletedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Restaurant not found")
		return
	}

	restaurants.InvalidateCache(restaurantID)
	_ = mq.Notify("restaurant-deleted", models.Index{EntityType: "restaurant", EntityId: restaurantID})
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"success": true, "msg": "Restaurant deleted"})
}
