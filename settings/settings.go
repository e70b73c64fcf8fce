package settings

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"foodfreaky/db"
	"foodfreaky/models"
	"foodfreaky/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Load returns the app settings singleton, creating it with defaults on
// first read.
func Load(ctx context.Context) (models.AppSettings, error) {
	var s models.AppSettings
	err := db.SettingsCollection.FindOne(ctx, bson.M{"key": models.AppSettingsKey}).Decode(&s)
	if err == mongo.ErrNoDocuments {
		s = models.DefaultAppSettings()
		opts := options.Update().SetUpsert(true)
		_, err = db.SettingsCollection.UpdateOne(ctx,
			bson.M{"key": models.AppSettingsKey},
			bson.M{"$setOnInsert": s}, opts)
	}
	return s, err
}

// OrderingOpen reports whether orders are currently accepted: the global
// flag must be on and the clock must be before the daily closing time.
func OrderingOpen(s models.AppSettings, now time.Time) bool {
	if !s.OrderingEnabled {
		return false
	}
	parts := strings.SplitN(s.OrderClosingTime, ":", 2)
	if len(parts) != 2 {
		return true // malformed closing time never locks customers out
	}
	hh, err1 := strconv.Atoi(parts[0])
	mm, err2 := strconv.Atoi(parts[1])
	if err1 != nil || err2 != nil {
		return true
	}
	closing := time.Date(now.Year(), now.Month(), now.Day(), hh, mm, 0, 0, now.Location())
	return now.Before(closing)
}

// GetSettings handles GET /api/settings (public read).
func GetSettings(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	s, err := Load(ctx)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to load settings")
		return
	}
	utils.RespondWithData(w, http.StatusOK, s)
}

// UpdateSettings handles PUT /api/admin/settings.
func UpdateSettings(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var body struct {
		OrderingEnabled  *bool   `json:"orderingEnabled"`
		OrderClosingTime *string `json:"orderClosingTime"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}

	set := bson.M{}
	if body.OrderingEnabled != nil {
		set["ordering_enabled"] = *body.OrderingEnabled
	}
	if body.OrderClosingTime != nil {
		if !validClosingTime(*body.OrderClosingTime) {
			utils.RespondWithError(w, http.StatusBadRequest, "orderClosingTime must be HH:MM")
			return
		}
		set["order_closing_time"] = *body.OrderClosingTime
	}
	if len(set) == 0 {
		utils.RespondWithError(w, http.StatusBadRequest, "Nothing to update")
		return
	}

	opts := options.Update().SetUpsert(true)
	if _, err := db.SettingsCollection.UpdateOne(ctx,
		bson.M{"key": models.AppSettingsKey}, bson.M{"$set": set}, opts); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update settings")
		return
	}

	s, err := Load(ctx)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to load settings")
		return
	}
	utils.RespondWithData(w, http.StatusOK, s)
}

func validClosingTime(v string) bool {
	parts := strings.SplitN(v, ":", 2)
	if len(parts) != 2 {
		return false
	}
	hh, err1 := strconv.Atoi(parts[0])
	mm, err2 := strconv.Atoi(parts[1])
	return err1 == nil && err2 == nil && hh >= 0 && hh <= 23 && mm >= 0 && mm <= 59
}
