package admin

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"foodfreaky/credits"
	"foodfreaky/db"
	"foodfreaky/models"
	"foodfreaky/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ListUsers handles GET /api/admin/users.
func ListUsers(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	opts := utils.ParseQueryOptions(r)

	filter := bson.M{}
	if opts.Search != "" {
		filter["$or"] = []bson.M{
			{"name": bson.M{"$regex": opts.Search, "$options": "i"}},
			{"email": bson.M{"$regex": opts.Search, "$options": "i"}},
		}
	}

	findOpts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(int64((opts.Page - 1) * opts.Limit)).
		SetLimit(int64(opts.Limit))

	cursor, err := db.UserCollection.Find(ctx, filter, findOpts)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch users")
		return
	}
	defer cursor.Close(ctx)

	users := []models.User{}
	if err := cursor.All(ctx, &users); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Error reading users")
		return
	}

	utils.RespondWithData(w, http.StatusOK, users)
}

// UpdateUserRole handles PUT /api/admin/users/:id/role.
func UpdateUserRole(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var input struct {
		Role string `json:"role"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}

	switch input.Role {
	case models.RoleUser, models.RoleDeliveryAdmin, models.RoleAdmin:
	default:
		utils.RespondWithError(w, http.StatusBadRequest, "Unknown role")
		return
	}

	res, err := db.UserCollection.UpdateOne(ctx,
		bson.M{"userid": ps.ByName("id")},
		bson.M{"$set": bson.M{"role": input.Role, "updated_at": time.Now()}})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update role")
		return
	}
	if res.MatchedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "User not found")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"success": true, "msg": "Role updated"})
}

// GrantCredits handles POST /api/admin/users/:id/credits.
func GrantCredits(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID := ps.ByName("id")

	var input struct {
		Amount float64 `json:"amount"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil || input.Amount <= 0 {
		utils.RespondWithError(w, http.StatusBadRequest, "Amount must be positive")
		return
	}

	if err := db.UserCollection.FindOne(ctx, bson.M{"userid": userID}).Err(); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "User not found")
		return
	}

	if err := credits.Grant(ctx, userID, input.Amount); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to grant credits")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"success": true, "msg": "Credits granted"})
}
