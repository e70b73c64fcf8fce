package admin

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"foodfreaky/db"
	"foodfreaky/models"
	"foodfreaky/restaurants"
	"foodfreaky/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
)

// AddMenuCategory handles POST /api/admin/restaurants/:id/categories.
func AddMenuCategory(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	restaurantID := ps.ByName("id")

	var input struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil || input.Name == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Category name is required")
		return
	}

	// Guard against duplicate category names on the same menu.
	err := db.RestaurantCollection.FindOne(ctx, bson.M{
		"restaurantid": restaurantID,
		"menu.name":    input.Name,
	}).Err()
	if err == nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Category already exists")
		return
	}

	category := models.MenuCategory{Name: input.Name, Items: []models.MenuItem{}}
	res, err := db.RestaurantCollection.UpdateOne(ctx,
		bson.M{"restaurantid": restaurantID},
		bson.M{"$push": bson.M{"menu": category}, "$set": bson.M{"updated_at": time.Now()}})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to add category")
		return
	}
	if res.MatchedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Restaurant not found")
		return
	}

	restaurants.InvalidateCache(restaurantID)
	utils.RespondWithData(w, http.StatusCreated, category)
}

// RemoveMenuCategory handles DELETE /api/admin/restaurants/:id/categories/:category.
func RemoveMenuCategory(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	restaurantID := ps.ByName("id")
	category := ps.ByName("category")

	res, err := db.RestaurantCollection.UpdateOne(ctx,
		bson.M{"restaurantid": restaurantID},
		bson.M{"$pull": bson.M{"menu": bson.M{"name": category}}, "$set": bson.M{"updated_at": time.Now()}})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to remove category")
		return
	}
	if res.MatchedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Restaurant not found")
		return
	}

	restaurants.InvalidateCache(restaurantID)
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"success": true, "msg": "Category removed"})
}

type menuItemInput struct {
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Description string  `json:"description"`
	Emoji       string  `json:"emoji"`
	Image       string  `json:"image"`
}

// AddMenuItem handles POST /api/admin/restaurants/:id/categories/:category/items.
// Each item gets a stable id so later updates and deletes can target it.
func AddMenuItem(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	restaurantID := ps.ByName("id")
	category := ps.ByName("category")

	var input menuItemInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil || input.Name == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Item name is required")
		return
	}
	if input.Price < 0 {
		utils.RespondWithError(w, http.StatusBadRequest, "Price must be non-negative")
		return
	}

	item := models.MenuItem{
		ItemID:      utils.GenerateRandomString(14),
		Name:        input.Name,
		Price:       input.Price,
		Description: input.Description,
		Emoji:       input.Emoji,
		Image:       input.Image,
	}

	res, err := db.RestaurantCollection.UpdateOne(ctx,
		bson.M{"restaurantid": restaurantID, "menu.name": category},
		bson.M{"$push": bson.M{"menu.$.items": item}, "$set": bson.M{"updated_at": time.Now()}})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to add item")
		return
	}
	if res.MatchedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Restaurant or category not found")
		return
	}

	restaurants.InvalidateCache(restaurantID)
	utils.RespondWithData(w, http.StatusCreated, item)
}

// UpdateMenuItem handles PUT /api/admin/restaurants/:id/categories/:category/items/:itemId.
func UpdateMenuItem(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	restaurantID := ps.ByName("id")
	category := ps.ByName("category")
	itemID := ps.ByName("itemId")

	var input menuItemInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}
	if input.Price < 0 {
		utils.RespondWithError(w, http.StatusBadRequest, "Price must be non-negative")
		return
	}

	set := bson.M{"updated_at": time.Now()}
	if input.Name != "" {
		set["menu.$[cat].items.$[item].name"] = input.Name
	}
	if input.Price > 0 {
		set["menu.$[cat].items.$[item].price"] = input.Price
	}
	if input.Description != "" {
		set["menu.$[cat].items.$[item].description"] = input.Description
	}
	if input.Emoji != "" {
		set["menu.$[cat].items.$[item].emoji"] = input.Emoji
	}
	if input.Image != "" {
		set["menu.$[cat].items.$[item].image"] = input.Image
	}

	arrayFilters := []interface{}{
		bson.M{"cat.name": category},
		bson.M{"item.itemid": itemID},
	}

	res, err := db.RestaurantCollection.UpdateOne(ctx,
		bson.M{"restaurantid": restaurantID},
		bson.M{"$set": set},
		mongoArrayFilterOpts(arrayFilters))
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update item")
		return
	}
	if res.MatchedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Restaurant not found")
		return
	}

	restaurants.InvalidateCache(restaurantID)
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"success": true, "msg": "Item updated"})
}

// DeleteMenuItem handles DELETE /api/admin/restaurants/:id/categories/:category/items/:itemId.
func DeleteMenuItem(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	restaurantID := ps.ByName("id")
	category := ps.ByName("category")
	itemID := ps.ByName("itemId")

	res, err := db.RestaurantCollection.UpdateOne(ctx,
		bson.M{"restaurantid": restaurantID, "menu.name": category},
		bson.M{
			"$pull": bson.M{"menu.$.items": bson.M{"itemid": itemID}},
			"$set":  bson.M{"updated_at": time.Now()},
		})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to delete item")
		return
	}
	if res.MatchedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Restaurant or category not found")
		return
	}

	restaurants.InvalidateCache(restaurantID)
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"success": true, "msg": "Item deleted"})
}
