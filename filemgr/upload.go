package filemgr

import (
	"context"
	"net/http"
	"time"

	"foodfreaky/db"
	"foodfreaky/restaurants"
	"foodfreaky/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
)

// UploadRestaurantImage handles POST /api/admin/restaurants/:id/image. The
// form field is "image".
func UploadRestaurantImage(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 15*time.Second)
	defer cancel()

	restaurantID := ps.ByName("id")

	if err := db.RestaurantCollection.FindOne(ctx, bson.M{"restaurantid": restaurantID}).Err(); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Restaurant not found")
		return
	}

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Unable to parse form")
		return
	}

	fileName, err := SaveFormFile(r.MultipartForm, "image", EntityRestaurant)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Image upload failed: "+err.Error())
		return
	}

	_, err = db.RestaurantCollection.UpdateOne(ctx,
		bson.M{"restaurantid": restaurantID},
		bson.M{"$set": bson.M{"image": fileName, "updated_at": time.Now()}})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update restaurant")
		return
	}

	restaurants.InvalidateCache(restaurantID)
	utils.RespondWithData(w, http.StatusOK, utils.M{"image": fileName})
}
