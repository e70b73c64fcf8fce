package credits

import (
	"context"
	"errors"
	"net/http"
	"time"

	"foodfreaky/db"
	"foodfreaky/models"
	"foodfreaky/utils"

	"github.com/google/uuid"
	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var ErrInsufficientBalance = errors.New("insufficient credit balance")

func writeEntry(ctx context.Context, userID string, amount float64, reason, orderID string) {
	entry := models.CreditEntry{
		EntryID:   uuid.NewString(),
		UserID:    userID,
		Amount:    amount,
		Reason:    reason,
		OrderID:   orderID,
		CreatedAt: time.Now(),
	}
	// Ledger writes are best effort; the balance on the user doc is the
	// authoritative number.
	_, _ = db.CreditsCollection.InsertOne(ctx, entry)
}

// Redeem debits credits from a user's balance. The balance guard is part of
// the update filter so two concurrent redemptions cannot overdraw.
func Redeem(ctx context.Context, userID string, amount float64, orderID string) error {
	res, err := db.UserCollection.UpdateOne(ctx,
		bson.M{"userid": userID, "credits": bson.M{"$gte": amount}},
		bson.M{"$inc": bson.M{"credits": -amount}})
	if err != nil {
		return err
	}
	if res.ModifiedCount == 0 {
		return ErrInsufficientBalance
	}
	writeEntry(ctx, userID, -amount, "order redemption", orderID)
	return nil
}

// Grant adds credits to a user's balance outside the order flow.
func Grant(ctx context.Context, userID string, amount float64) error {
	_, err := db.UserCollection.UpdateOne(ctx,
		bson.M{"userid": userID},
		bson.M{"$inc": bson.M{"credits": amount}})
	if err != nil {
		return err
	}
	writeEntry(ctx, userID, amount, "admin grant", "")
	return nil
}

// Refund returns credits to a user's balance.
func Refund(ctx context.Context, userID string, amount float64, orderID string) error {
	_, err := db.UserCollection.UpdateOne(ctx,
		bson.M{"userid": userID},
		bson.M{"$inc": bson.M{"credits": amount}})
	if err != nil {
		return err
	}
	writeEntry(ctx, userID, amount, "order refund", orderID)
	return nil
}

// GetCredits handles GET /api/credits: balance plus ledger, newest first.
func GetCredits(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)

	var user models.User
	if err := db.UserCollection.FindOne(ctx, bson.M{"userid": userID}).Decode(&user); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "User not found")
		return
	}

	findOpts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}).SetLimit(50)
	cursor, err := db.CreditsCollection.Find(ctx, bson.M{"userid": userID}, findOpts)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch credit history")
		return
	}
	defer cursor.Close(ctx)

	entries := []models.CreditEntry{}
	if err := cursor.All(ctx, &entries); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Error reading credit history")
		return
	}

	utils.RespondWithData(w, http.StatusOK, utils.M{
		"balance": user.Credits,
		"history": entries,
	})
}
