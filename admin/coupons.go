package admin

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"foodfreaky/db"
	"foodfreaky/models"
	"foodfreaky/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CreateCoupon handles POST /api/admin/coupons.
func CreateCoupon(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var input struct {
		Code         string     `json:"code"`
		DiscountType string     `json:"discountType"`
		Value        float64    `json:"value"`
		ExpiresAt    *time.Time `json:"expiresAt"`
		UsageLimit   int        `json:"usageLimit"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil || input.Code == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Coupon code is required")
		return
	}

	if input.DiscountType != models.DiscountPercentage && input.DiscountType != models.DiscountFixed {
		utils.RespondWithError(w, http.StatusBadRequest, "discountType must be percentage or fixed")
		return
	}
	if input.Value <= 0 || (input.DiscountType == models.DiscountPercentage && input.Value > 100) {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid discount value")
		return
	}

	code := utils.NormalizeCode(input.Code)

	err := db.CouponCollection.FindOne(ctx, bson.M{"code": code}).Err()
	if err == nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Coupon code already exists")
		return
	} else if err != mongo.ErrNoDocuments {
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	coupon := models.Coupon{
		Code:         code,
		DiscountType: input.DiscountType,
		Value:        input.Value,
		ExpiresAt:    input.ExpiresAt,
		Active:       true,
		UsageLimit:   input.UsageLimit,
		TimesUsed:    0,
		CreatedAt:    time.Now(),
	}

	if _, err := db.CouponCollection.InsertOne(ctx, coupon); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to create coupon")
		return
	}

	utils.RespondWithData(w, http.StatusCreated, coupon)
}

// ListCoupons handles GET /api/admin/coupons.
func ListCoupons(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	findOpts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := db.CouponCollection.Find(ctx, bson.M{}, findOpts)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch coupons")
		return
	}
	defer cursor.Close(ctx)

	coupons := []models.Coupon{}
	if err := cursor.All(ctx, &coupons); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Error reading coupons")
		return
	}

	utils.RespondWithData(w, http.StatusOK, coupons)
}

// DeleteCoupon handles DELETE /api/admin/coupons/:code.
func DeleteCoupon(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	code := utils.NormalizeCode(ps.ByName("code"))

	res, err := db.CouponCollection.DeleteOne(ctx, bson.M{"code": code})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to delete coupon")
		return
	}
	if res.DeletedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Coupon not found")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"success": true, "msg": "Coupon deleted"})
}
