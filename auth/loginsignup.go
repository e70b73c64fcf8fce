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
	"foodfreaky/rdx"
	"foodfreaky/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"
)

// Register handles POST /api/auth/register. The account starts unverified;
// a 6-digit OTP good for ten minutes is mailed out, and verify-otp completes
// the flow.
func Register(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var input struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid input")
		return
	}

	input.Email = strings.ToLower(strings.TrimSpace(input.Email))
	if input.Name == "" || input.Email == "" || len(input.Password) < 6 {
		utils.RespondWithError(w, http.StatusBadRequest, "Name, email and a password of at least 6 characters are required")
		return
	}

	err := db.UserCollection.FindOne(ctx, bson.M{"email": input.Email}).Err()
	if err == nil {
		utils.RespondWithError(w, http.StatusBadRequest, "An account with this email already exists")
		return
	} else if err != mongo.ErrNoDocuments {
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("Failed to hash password for %s: %v", input.Email, err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Could not process password")
		return
	}

	otp := utils.GenerateRandomDigitString(6)
	now := time.Now()

	user := models.User{
		UserID:     "u" + utils.GenerateRandomString(10),
		Name:       input.Name,
		Email:      input.Email,
		Password:   string(hashedPassword),
		Role:       models.RoleUser,
		IsVerified: false,
		Favorites:  []string{},
		OTPHash:    hashToken(otp),
		OTPExpiry:  now.Add(otpTTL),
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := emailer.Send(user.Email, "Verify your FoodFreaky account",
		"Your verification code is: "+otp+"\n\nIt expires in 10 minutes."); err != nil {
		log.Printf("Failed to send OTP email to %s: %v", user.Email, err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to send verification email")
		return
	}

	if _, err := db.UserCollection.InsertOne(ctx, user); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to register user")
		return
	}

	utils.RespondWithJSON(w, http.StatusCreated, utils.M{
		"success": true,
		"msg":     "OTP sent to email. Please verify to complete registration.",
	})
}

// Login handles POST /api/auth/login. Only verified accounts may log in.
func Login(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var input struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid input")
		return
	}

	var storedUser models.User
	err := db.UserCollection.FindOne(ctx, bson.M{"email": strings.ToLower(strings.TrimSpace(input.Email))}).Decode(&storedUser)
	if err != nil {
		utils.RespondWithError(w, http.StatusUnauthorized, "Invalid email or password")
		return
	}

	if storedUser.Password == "" {
		// Google-only account
		utils.RespondWithError(w, http.StatusUnauthorized, "Please sign in with Google")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(storedUser.Password), []byte(input.Password)); err != nil {
		utils.RespondWithError(w, http.StatusUnauthorized, "Invalid email or password")
		return
	}

	if !storedUser.IsVerified {
		utils.RespondWithError(w, http.StatusUnauthorized, "Account not verified. Please check your email for the OTP.")
		return
	}

	tokenString, err := issueToken(&storedUser)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to generate token")
		return
	}

	_, _ = db.UserCollection.UpdateOne(ctx,
		bson.M{"userid": storedUser.UserID},
		bson.M{"$set": bson.M{"last_login": time.Now()}})

	utils.RespondWithData(w, http.StatusOK, utils.M{
		"token": tokenString,
		"user":  storedUser,
	})
}

// RefreshToken rotates the caller's session: a fresh 12h token is issued and
// its hash replaces the old one in Redis.
func RefreshToken(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)

	var user models.User
	if err := db.UserCollection.FindOne(ctx, bson.M{"userid": userID}).Decode(&user); err != nil {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	tokenString, err := issueToken(&user)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to generate token")
		return
	}

	utils.RespondWithData(w, http.StatusOK, utils.M{"token": tokenString})
}

// LogoutUser drops the caller's session token hash.
func LogoutUser(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	if _, err := rdx.RdxHdel(tokenHashes, userID); err != nil {
		log.Printf("Error removing token from Redis: %v", err)
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"success": true, "msg": "Logged out"})
}
