package auth

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"foodfreaky/db"
	"foodfreaky/emailer"
	"foodfreaky/models"
	"foodfreaky/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"golang.org/x/crypto/bcrypt"
)

// ForgotPassword handles POST /api/auth/forgot-password. The response is the
// same whether or not the email exists, so the endpoint cannot be used to
// enumerate accounts.
func ForgotPassword(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var input struct {
		Email string `json:"email"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil || input.Email == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Email is required")
		return
	}

	neutral := func() {
		utils.RespondWithJSON(w, http.StatusOK, utils.M{"success": true, "msg": "If the account exists, a reset link has been sent"})
	}

	email := strings.ToLower(strings.TrimSpace(input.Email))
	var user models.User
	if err := db.UserCollection.FindOne(ctx, bson.M{"email": email}).Decode(&user); err != nil {
		neutral()
		return
	}

	token, err := generateSecureToken()
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to generate reset token")
		return
	}

	_, err = db.UserCollection.UpdateOne(ctx,
		bson.M{"userid": user.UserID},
		bson.M{"$set": bson.M{
			"reset_token_hash": hashToken(token),
			"reset_expiry":     time.Now().Add(resetTTL),
		}})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to store reset token")
		return
	}

	frontend := os.Getenv("FRONTEND_URL")
	if frontend == "" {
		frontend = "http://localhost:3000"
	}
	link := frontend + "/resetpassword/" + token

	if err := emailer.Send(email, "Reset your FoodFreaky password",
		"You requested a password reset.\n\nReset link (valid 30 minutes): "+link+
			"\n\nIf you did not request this, ignore this email."); err != nil {
		log.Printf("Failed to send reset email to %s: %v", email, err)
	}

	neutral()
}

// ResetPassword handles PUT /api/auth/reset-password/:token.
func ResetPassword(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	token := ps.ByName("token")
	var input struct {
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil || len(input.Password) < 6 {
		utils.RespondWithError(w, http.StatusBadRequest, "A password of at least 6 characters is required")
		return
	}

	var user models.User
	err := db.UserCollection.FindOne(ctx, bson.M{
		"reset_token_hash": hashToken(token),
		"reset_expiry":     bson.M{"$gt": time.Now()},
	}).Decode(&user)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid or expired reset token")
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Could not process password")
		return
	}

	_, err = db.UserCollection.UpdateOne(ctx,
		bson.M{"userid": user.UserID},
		bson.M{
			"$set":   bson.M{"password": string(hashedPassword), "updated_at": time.Now()},
			"$unset": bson.M{"reset_token_hash": "", "reset_expiry": ""},
		})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to reset password")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"success": true, "msg": "Password has been reset"})
}
