package settings

import (
	"testing"
	"time"

	"foodfreaky/models"

	"github.com/stretchr/testify/assert"
)

func at(hh, mm int) time.Time {
	return time.Date(2025, 6, 1, hh, mm, 0, 0, time.UTC)
}

func TestOrderingOpen(t *testing.T) {
	s := models.AppSettings{OrderingEnabled: true, OrderClosingTime: "22:00"}

	assert.True(t, OrderingOpen(s, at(12, 0)))
	assert.True(t, OrderingOpen(s, at(21, 59)))
	assert.False(t, OrderingOpen(s, at(22, 0)))
	assert.False(t, OrderingOpen(s, at(23, 30)))

	s.OrderingEnabled = false
	assert.False(t, OrderingOpen(s, at(12, 0)))
}

func TestOrderingOpenMalformedClosingTime(t *testing.T) {
	s := models.AppSettings{OrderingEnabled: true, OrderClosingTime: "bogus"}
	assert.True(t, OrderingOpen(s, at(23, 59)))
}

func TestValidClosingTime(t *testing.T) {
	assert.True(t, validClosingTime("22:00"))
	assert.True(t, validClosingTime("0:5"))
	assert.False(t, validClosingTime("24:00"))
	assert.False(t, validClosingTime("12:60"))
	assert.False(t, validClosingTime("noon"))
}
