package favorites

import (
	"context"
	"net/http"
	"time"

	"foodfreaky/db"
	"foodfreaky/models"
	"foodfreaky/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// GetFavorites handles GET /api/favorites, resolving the stored references
// to restaurant summaries (menu omitted, as in list views).
func GetFavorites(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)

	var user models.User
	if err := db.UserCollection.FindOne(ctx, bson.M{"userid": userID}).Decode(&user); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "User not found")
		return
	}

	restaurants := []models.Restaurant{}
	if len(user.Favorites) > 0 {
		findOpts := options.Find().SetProjection(bson.M{"menu": 0})
		cursor, err := db.RestaurantCollection.Find(ctx,
			bson.M{"restaurantid": bson.M{"$in": user.Favorites}}, findOpts)
		if err != nil {
			utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch favorites")
			return
		}
		defer cursor.Close(ctx)
		if err := cursor.All(ctx, &restaurants); err != nil {
			utils.RespondWithError(w, http.StatusInternalServerError, "Error reading favorites")
			return
		}
	}

	utils.RespondWithData(w, http.StatusOK, restaurants)
}

// AddFavorite handles POST /api/favorites/:restaurantId. $addToSet gives the
// set semantics: adding twice is a no-op.
func AddFavorite(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	restaurantID := ps.ByName("restaurantId")

	if err := db.RestaurantCollection.FindOne(ctx, bson.M{"restaurantid": restaurantID}).Err(); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Restaurant not found")
		return
	}

	_, err := db.UserCollection.UpdateOne(ctx,
		bson.M{"userid": userID},
		bson.M{"$addToSet": bson.M{"favorites": restaurantID}})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to add favorite")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"success": true, "msg": "Added to favorites"})
}

// RemoveFavorite handles DELETE /api/favorites/:restaurantId.
func RemoveFavorite(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	restaurantID := ps.ByName("restaurantId")

	_, err := db.UserCollection.UpdateOne(ctx,
		bson.M{"userid": userID},
		bson.M{"$pull": bson.M{"favorites": restaurantID}})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to remove favorite")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"success": true, "msg": "Removed from favorites"})
}
