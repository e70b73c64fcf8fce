package models

import "time"

const (
	DiscountPercentage = "percentage"
	DiscountFixed      = "fixed"
)

type Coupon struct {
	Code         string     `json:"code" bson:"code"`
	DiscountType string     `json:"discountType" bson:"discount_type"`
	Value        float64    `json:"value" bson:"value"`
	ExpiresAt    *time.Time `json:"expiresAt,omitempty" bson:"expires_at,omitempty"`
	Active       bool       `json:"active" bson:"active"`
	UsageLimit   int        `json:"usageLimit,omitempty" bson:"usage_limit,omitempty"`
	TimesUsed    int        `json:"timesUsed" bson:"times_used"`
	CreatedAt    time.Time  `json:"createdAt" bson:"created_at"`
}
