package models

import "time"

type OrderStatus string

const (
	StatusWaiting        OrderStatus = "Waiting for Acceptance"
	StatusAccepted       OrderStatus = "Accepted"
	StatusPreparing      OrderStatus = "Preparing Food"
	StatusOutForDelivery OrderStatus = "Out for Delivery"
	StatusDelivered      OrderStatus = "Delivered"
	StatusCancelled      OrderStatus = "Cancelled"
)

// OrderItem is a snapshot of a menu line at order time. Prices are copied,
// never re-read from the live menu, so later menu edits cannot rewrite
// historical orders or invoices.
type OrderItem struct {
	Name     string  `json:"name" bson:"name"`
	Quantity int     `json:"quantity" bson:"quantity"`
	Price    float64 `json:"price" bson:"price"`
}

type Order struct {
	OrderID         string      `json:"orderId" bson:"orderid"`
	UserID          string      `json:"userId" bson:"userid"`
	RestaurantID    string      `json:"restaurantId" bson:"restaurantid"`
	RestaurantName  string      `json:"restaurantName" bson:"restaurant_name"`
	Items           []OrderItem `json:"items" bson:"items"`
	ItemsPrice      float64     `json:"itemsPrice" bson:"items_price"`
	TaxPrice        float64     `json:"taxPrice" bson:"tax_price"`
	ShippingPrice   float64     `json:"shippingPrice" bson:"shipping_price"`
	TotalPrice      float64     `json:"totalPrice" bson:"total_price"`
	CouponCode      string      `json:"couponCode,omitempty" bson:"coupon_code,omitempty"`
	CreditsUsed     float64     `json:"creditsUsed,omitempty" bson:"credits_used,omitempty"`
	ShippingAddress string      `json:"shippingAddress" bson:"shipping_address"`
	Status          OrderStatus `json:"status" bson:"status"`
	CreatedAt       time.Time   `json:"createdAt" bson:"created_at"`
}
