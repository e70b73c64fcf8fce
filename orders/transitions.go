package orders

import (
	"errors"

	"foodfreaky/models"
)

// validTransitions is the authoritative order state machine: a forward-only
// chain with cancellation possible only before the restaurant accepts.
var validTransitions = map[models.OrderStatus][]models.OrderStatus{
	models.StatusWaiting:        {models.StatusAccepted, models.StatusCancelled},
	models.StatusAccepted:       {models.StatusPreparing},
	models.StatusPreparing:      {models.StatusOutForDelivery},
	models.StatusOutForDelivery: {models.StatusDelivered},
	models.StatusDelivered:      {},
	models.StatusCancelled:      {},
}

// IsKnownStatus reports whether s is one of the recognized enum values.
func IsKnownStatus(s models.OrderStatus) bool {
	_, ok := validTransitions[s]
	return ok
}

// CanTransition checks whether an order may move from one status to another.
func CanTransition(from, to models.OrderStatus) error {
	for _, next := range validTransitions[from] {
		if next == to {
			return nil
		}
	}
	return errors.New("invalid transition: " + string(from) + " to " + string(to))
}
