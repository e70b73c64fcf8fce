package orders

import (
	"testing"

	"foodfreaky/models"

	"github.com/stretchr/testify/assert"
)

func TestForwardChain(t *testing.T) {
	chain := []models.OrderStatus{
		models.StatusWaiting,
		models.StatusAccepted,
		models.StatusPreparing,
		models.StatusOutForDelivery,
		models.StatusDelivered,
	}
	for i := 0; i < len(chain)-1; i++ {
		assert.NoError(t, CanTransition(chain[i], chain[i+1]))
	}
}

func TestNoBackwardsTransitions(t *testing.T) {
	assert.Error(t, CanTransition(models.StatusAccepted, models.StatusWaiting))
	assert.Error(t, CanTransition(models.StatusDelivered, models.StatusOutForDelivery))
	assert.Error(t, CanTransition(models.StatusPreparing, models.StatusAccepted))
}

func TestCancelOnlyFromWaiting(t *testing.T) {
	assert.NoError(t, CanTransition(models.StatusWaiting, models.StatusCancelled))
	for _, from := range []models.OrderStatus{
		models.StatusAccepted,
		models.StatusPreparing,
		models.StatusOutForDelivery,
		models.StatusDelivered,
	} {
		assert.Error(t, CanTransition(from, models.StatusCancelled), "from=%s", from)
	}
}

func TestTerminalStates(t *testing.T) {
	for _, to := range []models.OrderStatus{
		models.StatusWaiting, models.StatusAccepted, models.StatusPreparing,
		models.StatusOutForDelivery, models.StatusDelivered, models.StatusCancelled,
	} {
		assert.Error(t, CanTransition(models.StatusDelivered, to))
		assert.Error(t, CanTransition(models.StatusCancelled, to))
	}
}

func TestSkippingStatesRejected(t *testing.T) {
	assert.Error(t, CanTransition(models.StatusWaiting, models.StatusDelivered))
	assert.Error(t, CanTransition(models.StatusAccepted, models.StatusOutForDelivery))
}

func TestIsKnownStatus(t *testing.T) {
	assert.True(t, IsKnownStatus(models.StatusWaiting))
	assert.True(t, IsKnownStatus(models.StatusCancelled))
	assert.False(t, IsKnownStatus("Shipped"))
	assert.False(t, IsKnownStatus(""))
}
