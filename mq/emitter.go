package mq

import (
	"context"
	"encoding/json"
	"log"

	"foodfreaky/models"
	"foodfreaky/rdx"
)

const orderEventsChannel = "order-events"

// Notify logs a lifecycle event locally. Used where pub/sub delivery adds
// nothing (cache invalidations already happened in-line).
func Notify(eventName string, content models.Index) error {
	log.Printf("[mq] %s %+v", eventName, content)
	return nil
}

// Emit publishes an event to the order channel. Delivery is best effort: a
// down Redis loses the event but never the operation that produced it.
func Emit(ctx context.Context, eventName string, content models.Index) {
	content.Method = eventName
	data, err := json.Marshal(content)
	if err != nil {
		log.Printf("[Emit] Failed to marshal event content: %v", err)
		return
	}

	if err := rdx.Conn.Publish(context.Background(), orderEventsChannel, data).Err(); err != nil {
		log.Printf("[Emit] Failed to publish %s: %v", eventName, err)
	}
}
