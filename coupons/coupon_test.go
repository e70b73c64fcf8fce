package coupons

import (
	"testing"
	"time"

	"foodfreaky/models"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"
)

func TestCheck(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)

	tests := []struct {
		name   string
		coupon models.Coupon
		want   error
	}{
		{"active no expiry", models.Coupon{Active: true}, nil},
		{"inactive", models.Coupon{Active: false}, ErrNotFound},
		{"expired", models.Coupon{Active: true, ExpiresAt: &past}, ErrExpired},
		{"not yet expired", models.Coupon{Active: true, ExpiresAt: &future}, nil},
		{"limit reached", models.Coupon{Active: true, UsageLimit: 3, TimesUsed: 3}, ErrLimitReached},
		{"limit exceeded", models.Coupon{Active: true, UsageLimit: 3, TimesUsed: 5}, ErrLimitReached},
		{"under limit", models.Coupon{Active: true, UsageLimit: 3, TimesUsed: 2}, nil},
		{"zero limit means unlimited", models.Coupon{Active: true, UsageLimit: 0, TimesUsed: 999}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := tt.coupon
			assert.Equal(t, tt.want, Check(&c, now))
		})
	}
}

// A redemption and its compensating release must be exact inverses, so a
// placement that fails after Redeem hands the usage slot back instead of
// burning it.
func TestRedeemAndReleaseDocuments(t *testing.T) {
	filter := redeemFilter("save10")
	assert.Equal(t, "SAVE10", filter["code"])
	assert.Equal(t, true, filter["active"])
	// The limit guard lives in the filter so two concurrent placements
	// cannot both take the last slot.
	guards, ok := filter["$or"].([]bson.M)
	assert.True(t, ok)
	assert.Len(t, guards, 3)

	assert.Equal(t, bson.M{"$inc": bson.M{"times_used": 1}}, redeemUpdate())
	assert.Equal(t, bson.M{"$inc": bson.M{"times_used": -1}}, releaseUpdate())

	release := releaseFilter("save10")
	assert.Equal(t, "SAVE10", release["code"])
	// A stray double release must not drive the counter negative.
	assert.Equal(t, bson.M{"$gt": 0}, release["times_used"])
}
