package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"foodfreaky/db"
	"foodfreaky/models"
	"foodfreaky/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// GoogleIdentity is what the verifier extracts from a valid ID token.
type GoogleIdentity struct {
	Subject string
	Email   string
	Name    string
}

// IDTokenVerifier checks a Google ID token. The production implementation
// calls Google's tokeninfo endpoint; tests substitute their own.
type IDTokenVerifier interface {
	Verify(ctx context.Context, idToken string) (*GoogleIdentity, error)
}

type tokeninfoVerifier struct {
	client *http.Client
}

func (v *tokeninfoVerifier) Verify(ctx context.Context, idToken string) (*GoogleIdentity, error) {
	endpoint := "https://oauth2.googleapis.com/tokeninfo?id_token=" + url.QueryEscape(idToken)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}

	resp, err := v.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("tokeninfo rejected token: %s", resp.Status)
	}

	var info struct {
		Sub   string `json:"sub"`
		Aud   string `json:"aud"`
		Email string `json:"email"`
		Name  string `json:"name"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, err
	}

	if clientID := os.Getenv("GOOGLE_CLIENT_ID"); clientID != "" && info.Aud != clientID {
		return nil, fmt.Errorf("token audience mismatch")
	}
	if info.Email == "" {
		return nil, fmt.Errorf("token carries no email")
	}

	return &GoogleIdentity{Subject: info.Sub, Email: info.Email, Name: info.Name}, nil
}

// Verifier is swapped out in tests.
var Verifier IDTokenVerifier = &tokeninfoVerifier{client: &http.Client{Timeout: 10 * time.Second}}

// GoogleSignIn handles POST /api/auth/google: exchanges a verified Google ID
// token for a session, creating a verified account on first sign-in.
func GoogleSignIn(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 15*time.Second)
	defer cancel()

	var input struct {
		IDToken string `json:"idToken"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil || input.IDToken == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "idToken is required")
		return
	}

	identity, err := Verifier.Verify(ctx, input.IDToken)
	if err != nil {
		utils.RespondWithError(w, http.StatusUnauthorized, "Google sign-in failed")
		return
	}

	email := strings.ToLower(identity.Email)
	var user models.User
	err = db.UserCollection.FindOne(ctx, bson.M{
		"$or": []bson.M{{"googleid": identity.Subject}, {"email": email}},
	}).Decode(&user)

	switch {
	case err == mongo.ErrNoDocuments:
		now := time.Now()
		user = models.User{
			UserID:     "u" + utils.GenerateRandomString(10),
			Name:       identity.Name,
			Email:      email,
			GoogleID:   identity.Subject,
			Role:       models.RoleUser,
			IsVerified: true,
			Favorites:  []string{},
			CreatedAt:  now,
			UpdatedAt:  now,
		}
		if _, err := db.UserCollection.InsertOne(ctx, user); err != nil {
			utils.RespondWithError(w, http.StatusInternalServerError, "Failed to create account")
			return
		}
	case err != nil:
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	default:
		// Existing email account signing in with Google the first time.
		if user.GoogleID == "" {
			_, _ = db.UserCollection.UpdateOne(ctx,
				bson.M{"userid": user.UserID},
				bson.M{"$set": bson.M{"googleid": identity.Subject, "is_verified": true}})
			user.IsVerified = true
		}
	}

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
