package coupons

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"foodfreaky/db"
	"foodfreaky/models"
	"foodfreaky/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

var (
	ErrNotFound     = errors.New("coupon not found or inactive")
	ErrExpired      = errors.New("coupon has expired")
	ErrLimitReached = errors.New("coupon usage limit reached")
)

// Check applies the redeemability rules to an already-loaded coupon.
func Check(c *models.Coupon, now time.Time) error {
	if !c.Active {
		return ErrNotFound
	}
	if c.ExpiresAt != nil && now.After(*c.ExpiresAt) {
		return ErrExpired
	}
	if c.UsageLimit > 0 && c.TimesUsed >= c.UsageLimit {
		return ErrLimitReached
	}
	return nil
}

// Lookup fetches a coupon by normalized code and checks redeemability.
func Lookup(ctx context.Context, code string, now time.Time) (*models.Coupon, error) {
	var coupon models.Coupon
	err := db.CouponCollection.FindOne(ctx, bson.M{"code": utils.NormalizeCode(code)}).Decode(&coupon)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if err := Check(&coupon, now); err != nil {
		return nil, err
	}
	return &coupon, nil
}

// ValidateCouponHandler handles POST /api/coupons/validate. Absent or
// inactive codes are a 404; expired or exhausted ones a 400. The coupon is
// returned for the client to price against; redemption is only committed at
// order placement.
func ValidateCouponHandler(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var req struct {
		Code string `json:"code"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Code == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Coupon code is required")
		return
	}

	coupon, err := Lookup(ctx, req.Code, time.Now())
	switch {
	case err == nil:
		utils.RespondWithData(w, http.StatusOK, coupon)
	case errors.Is(err, ErrNotFound):
		utils.RespondWithError(w, http.StatusNotFound, "Invalid coupon code")
	case errors.Is(err, ErrExpired):
		utils.RespondWithError(w, http.StatusBadRequest, "Coupon has expired")
	case errors.Is(err, ErrLimitReached):
		utils.RespondWithError(w, http.StatusBadRequest, "Coupon usage limit reached")
	default:
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to validate coupon")
	}
}

func redeemFilter(code string) bson.M {
	return bson.M{
		"code":   utils.NormalizeCode(code),
		"active": true,
		"$or": []bson.M{
			{"usage_limit": bson.M{"$exists": false}},
			{"usage_limit": 0},
			{"$expr": bson.M{"$lt": []string{"$times_used", "$usage_limit"}}},
		},
	}
}

func redeemUpdate() bson.M {
	return bson.M{"$inc": bson.M{"times_used": 1}}
}

func releaseFilter(code string) bson.M {
	return bson.M{
		"code":       utils.NormalizeCode(code),
		"times_used": bson.M{"$gt": 0},
	}
}

func releaseUpdate() bson.M {
	return bson.M{"$inc": bson.M{"times_used": -1}}
}

// Redeem atomically increments timesUsed, refusing codes already at their
// usage limit. The filter re-states the limit so two concurrent placements
// cannot both take the last slot.
func Redeem(ctx context.Context, code string) error {
	res, err := db.CouponCollection.UpdateOne(ctx, redeemFilter(code), redeemUpdate())
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrLimitReached
	}
	return nil
}

// Release hands back a usage slot taken by Redeem when the placement that
// claimed it never persisted. The counter guard keeps a stray double release
// from going negative.
func Release(ctx context.Context, code string) error {
	_, err := db.CouponCollection.UpdateOne(ctx, releaseFilter(code), releaseUpdate())
	return err
}
