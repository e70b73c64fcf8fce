package db

import (
	"context"
	"log"
	"os"
	"time"

	"foodfreaky/globals"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	UserCollection       *mongo.Collection
	RestaurantCollection *mongo.Collection
	OrderCollection      *mongo.Collection
	CouponCollection     *mongo.Collection
	SettingsCollection   *mongo.Collection
	CreditsCollection    *mongo.Collection
	Client               *mongo.Client
)

// Init connects to MongoDB and wires the collection handles. The URI and the
// other critical env vars are required; the process refuses to start without
// them rather than limping along half-configured.
func Init() {
	uri := os.Getenv("MONGODB_URI")
	if uri == "" {
		log.Fatal("MONGODB_URI is not set")
	}
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		log.Fatal("JWT_SECRET is not set")
	}
	globals.JwtSecret = []byte(secret)
	if os.Getenv("SMTP_USER") == "" || os.Getenv("SMTP_PASS") == "" {
		log.Fatal("SMTP_USER / SMTP_PASS are not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var err error
	Client, err = mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	if err := Client.Ping(ctx, nil); err != nil {
		log.Fatalf("MongoDB ping failed: %v", err)
	}

	database := Client.Database("foodfreaky")
	UserCollection = database.Collection("users")
	RestaurantCollection = database.Collection("restaurants")
	OrderCollection = database.Collection("orders")
	CouponCollection = database.Collection("coupons")
	SettingsCollection = database.Collection("settings")
	CreditsCollection = database.Collection("credits")
}

// Close disconnects the client; used on graceful shutdown.
func Close() {
	if Client == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := Client.Disconnect(ctx); err != nil {
		log.Printf("MongoDB disconnect error: %v", err)
	}
}
