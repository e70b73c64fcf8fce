package models

import "time"

// Restaurant types. An absent type reads as TypeRestaurant for documents
// created before the field existed.
const (
	TypeRestaurant = "restaurant"
	TypeFruitStall = "fruit_stall"
)

type MenuItem struct {
	ItemID      string  `json:"itemId" bson:"itemid"`
	Name        string  `json:"name" bson:"name"`
	Price       float64 `json:"price" bson:"price"`
	Description string  `json:"description,omitempty" bson:"description,omitempty"`
	Emoji       string  `json:"emoji,omitempty" bson:"emoji,omitempty"`
	Image       string  `json:"image,omitempty" bson:"image,omitempty"`
}

type MenuCategory struct {
	Name  string     `json:"name" bson:"name"`
	Items []MenuItem `json:"items" bson:"items"`
}

type Restaurant struct {
	RestaurantID    string         `json:"restaurantId" bson:"restaurantid"`
	Name            string         `json:"name" bson:"name"`
	Cuisine         string         `json:"cuisine" bson:"cuisine"`
	DeliveryTime    string         `json:"deliveryTime" bson:"delivery_time"`
	Tags            []string       `json:"tags" bson:"tags"`
	AcceptingOrders bool           `json:"acceptingOrders" bson:"accepting_orders"`
	Type            string         `json:"type,omitempty" bson:"type,omitempty"`
	Image           string         `json:"image,omitempty" bson:"image,omitempty"`
	Menu            []MenuCategory `json:"menu,omitempty" bson:"menu,omitempty"`
	CreatedAt       time.Time      `json:"createdAt" bson:"created_at"`
	UpdatedAt       time.Time      `json:"updatedAt" bson:"updated_at"`
}

// Kind returns the effective restaurant type.
func (r *Restaurant) Kind() string {
	if r.Type == TypeFruitStall {
		return TypeFruitStall
	}
	return TypeRestaurant
}
