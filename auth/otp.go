package auth

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"time"

	"foodfreaky/db"
	"foodfreaky/emailer"
	"foodfreaky/models"
	"foodfreaky/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
)

// VerifyOTPHandler handles POST /api/auth/verify-otp: marks the account
// verified, clears the transient OTP fields and issues a session token.
func VerifyOTPHandler(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var input struct {
		Email string `json:"email"`
		OTP   string `json:"otp"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil || input.Email == "" || input.OTP == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Email and OTP are required")
		return
	}

	var user models.User
	err := db.UserCollection.FindOne(ctx, bson.M{"email": strings.ToLower(strings.TrimSpace(input.Email))}).Decode(&user)
	if err != nil {
		utils.RespondWithError(w, http.StatusUnauthorized, "Invalid or expired OTP")
		return
	}

	if user.OTPHash == "" || user.OTPHash != hashToken(input.OTP) || time.Now().After(user.OTPExpiry) {
		utils.RespondWithError(w, http.StatusUnauthorized, "Invalid or expired OTP")
		return
	}

	_, err = db.UserCollection.UpdateOne(ctx,
		bson.M{"userid": user.UserID},
		bson.M{
			"$set":   bson.M{"is_verified": true, "updated_at": time.Now()},
			"$unset": bson.M{"otp_hash": "", "otp_expiry": ""},
		})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to verify user")
		return
	}

	user.IsVerified = true
	tokenString, err := issueToken(&user)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to generate token")
		return
	}

	utils.RespondWithData(w, http.StatusOK, utils.M{
		"token": tokenString,
		"user":  user,
	})
}

// ResendOTPHandler regenerates the OTP for a still-unverified account.
func ResendOTPHandler(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var input struct {
		Email string `json:"email"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil || input.Email == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Email is required")
		return
	}

	email := strings.ToLower(strings.TrimSpace(input.Email))
	var user models.User
	if err := db.UserCollection.FindOne(ctx, bson.M{"email": email}).Decode(&user); err != nil {
		// Same response whether or not the account exists.
		utils.RespondWithJSON(w, http.StatusOK, utils.M{"success": true, "msg": "If the account exists, a new OTP has been sent"})
		return
	}

	if user.IsVerified {
		utils.RespondWithError(w, http.StatusBadRequest, "Account is already verified")
		return
	}

	otp := utils.GenerateRandomDigitString(6)
	_, err := db.UserCollection.UpdateOne(ctx,
		bson.M{"userid": user.UserID},
		bson.M{"$set": bson.M{"otp_hash": hashToken(otp), "otp_expiry": time.Now().Add(otpTTL)}})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to refresh OTP")
		return
	}

	if err := emailer.Send(email, "Your new FoodFreaky verification code",
		"Your verification code is: "+otp+"\n\nIt expires in 10 minutes."); err != nil {
		log.Printf("Failed to resend OTP email to %s: %v", email, err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to send verification email")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"success": true, "msg": "If the account exists, a new OTP has been sent"})
}
