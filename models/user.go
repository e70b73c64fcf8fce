package models

import "time"

// Roles a user can hold.
const (
	RoleUser          = "user"
	RoleDeliveryAdmin = "deliveryadmin"
	RoleAdmin         = "admin"
)

type User struct {
	UserID     string   `json:"userId" bson:"userid"`
	Name       string   `json:"name" bson:"name"`
	Email      string   `json:"email" bson:"email"`
	Password   string   `json:"-" bson:"password,omitempty"`
	GoogleID   string   `json:"-" bson:"googleid,omitempty"`
	Role       string   `json:"role" bson:"role"`
	IsVerified bool     `json:"isVerified" bson:"is_verified"`
	Favorites  []string `json:"favorites" bson:"favorites"`
	Credits    float64  `json:"credits" bson:"credits"`

	// Transient verification state, cleared after use.
	OTPHash        string    `json:"-" bson:"otp_hash,omitempty"`
	OTPExpiry      time.Time `json:"-" bson:"otp_expiry,omitempty"`
	ResetTokenHash string    `json:"-" bson:"reset_token_hash,omitempty"`
	ResetExpiry    time.Time `json:"-" bson:"reset_expiry,omitempty"`

	CreatedAt time.Time `json:"createdAt" bson:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updated_at"`
}
