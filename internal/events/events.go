package events

import (
	"context"
	"time"

	"fernwear/internal/model"
)

// OrderCreatedEvent is published after an order is recorded for a newly
// created checkout session.
type OrderCreatedEvent struct {
	Event       string           `json:"event"`
	OrderID     string           `json:"order_id"`
	OrderNumber string           `json:"order_number"`
	UserID      string           `json:"user_id"`
	SessionID   string           `json:"session_id"`
	TotalAmount int64            `json:"total_amount"`
	Items       []OrderEventItem `json:"items"`
	Timestamp   time.Time        `json:"timestamp"`
}

// OrderEventItem is a line item snapshot within an order event.
type OrderEventItem struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
	UnitPrice int64  `json:"unit_price"`
}

// EventOrderCreated is the event name for OrderCreatedEvent.
const EventOrderCreated = "order.created"

// Publisher emits order lifecycle events. Publishing is best-effort from
// the checkout path: failures are logged by the caller, never surfaced.
type Publisher interface {
	PublishOrderCreated(ctx context.Context, order *model.Order, items []model.OrderItem) error
	Close() error
}

// NewOrderCreatedEvent builds the event payload for an order.
func NewOrderCreatedEvent(order *model.Order, items []model.OrderItem) OrderCreatedEvent {
	eventItems := make([]OrderEventItem, len(items))
	for i, item := range items {
		eventItems[i] = OrderEventItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
		}
	}

	return OrderCreatedEvent{
		Event:       EventOrderCreated,
		OrderID:     order.ID.String(),
		OrderNumber: order.OrderNumber,
		UserID:      order.UserID,
		SessionID:   order.CheckoutSessionID,
		TotalAmount: order.TotalAmount,
		Items:       eventItems,
		Timestamp:   time.Now().UTC(),
	}
}

// nopPublisher discards all events. Used when event publishing is disabled.
type nopPublisher struct{}

// NewNopPublisher creates a publisher that discards events.
func NewNopPublisher() Publisher {
	return nopPublisher{}
}

func (nopPublisher) PublishOrderCreated(_ context.Context, _ *model.Order, _ []model.OrderItem) error {
	return nil
}

func (nopPublisher) Close() error {
	return nil
}
