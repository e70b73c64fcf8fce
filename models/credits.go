package models

import "time"

// CreditEntry is one movement on a user's credit balance. Amount is negative
// for redemptions and positive for refunds or grants.
type CreditEntry struct {
	EntryID   string    `json:"entryId" bson:"entryid"`
	UserID    string    `json:"userId" bson:"userid"`
	Amount    float64   `json:"amount" bson:"amount"`
	Reason    string    `json:"reason" bson:"reason"`
	OrderID   string    `json:"orderId,omitempty" bson:"orderid,omitempty"`
	CreatedAt time.Time `json:"createdAt" bson:"created_at"`
}
