package mq

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"foodfreaky/db"
	"foodfreaky/emailer"
	"foodfreaky/invoice"
	"foodfreaky/models"
	"foodfreaky/rdx"

	"go.mongodb.org/mongo-driver/bson"
)

// StartOrderWorker consumes order lifecycle events. The one event with a
// heavy side effect is order-delivered: render the invoice and mail it to
// the customer. Failures are logged and dropped; the status update that
// produced the event has long since committed.
func StartOrderWorker() {
	ctx := context.Background()
	sub := rdx.Conn.Subscribe(ctx, orderEventsChannel)
	ch := sub.Channel()

	log.Println("[OrderWorker] Listening for order events...")

	for msg := range ch {
		var event models.Index
		if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
			log.Printf("[OrderWorker] Failed to parse event: %v", err)
			continue
		}

		if event.Method == "order-delivered" {
			if err := sendDeliveredInvoice(ctx, event.EntityId); err != nil {
				log.Printf("[OrderWorker] Invoice email for %s failed: %v", event.EntityId, err)
			}
		}
	}
}

func sendDeliveredInvoice(ctx context.Context, orderID string) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	var order models.Order
	if err := db.OrderCollection.FindOne(ctx, bson.M{"orderid": orderID}).Decode(&order); err != nil {
		return fmt.Errorf("load order: %w", err)
	}

	var user models.User
	if err := db.UserCollection.FindOne(ctx, bson.M{"userid": order.UserID}).Decode(&user); err != nil {
		return fmt.Errorf("load user: %w", err)
	}

	pdf, err := invoice.Render(&order, user.Name, user.Email)
	if err != nil {
		return fmt.Errorf("render invoice: %w", err)
	}

	body := fmt.Sprintf(
		"Hi %s,\n\nYour order from %s has been delivered. The invoice is attached.\n\nTotal paid: %.2f\n\nBon appetit!\nFoodFreaky",
		user.Name, order.RestaurantName, order.TotalPrice)

	return emailer.SendWithPDF(user.Email, "Your FoodFreaky order was delivered", body, pdf, "invoice-"+order.OrderID+".pdf")
}
