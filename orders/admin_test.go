package orders

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// The today filter for delivery admins must start at local midnight. Shortly
// after midnight in a zone ahead of UTC, a UTC-based truncation would still
// point at yesterday.
func TestStartOfDayUsesLocalMidnight(t *testing.T) {
	ist := time.FixedZone("IST", 5*3600+1800)
	now := time.Date(2025, 6, 1, 0, 30, 0, 0, ist)

	got := startOfDay(now)

	assert.Equal(t, 0, got.Hour())
	assert.Equal(t, 0, got.Minute())
	assert.Equal(t, now.Day(), got.Day())
	assert.Equal(t, now.Month(), got.Month())
	assert.Equal(t, ist, got.Location())
	assert.NotEqual(t, now.Truncate(24*time.Hour), got)
	assert.True(t, got.Before(now))
}

func TestStartOfDayIdempotentAtMidnight(t *testing.T) {
	midnight := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, midnight, startOfDay(midnight))
}
