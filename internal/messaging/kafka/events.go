package kafka

import (
	"time"
)

// EventType определяет тип события заказа.
type EventType string

const (
	EventTypeOrderCreated EventType = "order.created"
	EventTypeOrderUpdated EventType = "order.updated"
	EventTypeOrderDeleted EventType = "order.deleted"
)

// Topics для Kafka.
const (
	TopicOrderEvents     = "orders.order.events"
	TopicDeadLetterQueue = "orders.dlq" // Dead Letter Queue для failed messages
)

// AggregateTypeOrder — тип агрегата в outbox-сообщениях заказов.
const AggregateTypeOrder = "order"

// OrderEvent представляет событие жизненного цикла заказа.
type OrderEvent struct {
	EventType EventType `json:"event_type"`
	OrderID   string    `json:"order_id"`
	// Value — итоговая сумма заказа в строковом десятичном виде.
	Value     string    `json:"value,omitempty"`
	ItemCount int       `json:"item_count"`
	Timestamp time.Time `json:"timestamp"`
}

// NewOrderEvent создаёт новое событие заказа.
func NewOrderEvent(eventType EventType, orderID, value string, itemCount int) *OrderEvent {
	return &OrderEvent{
		EventType: eventType,
		OrderID:   orderID,
		Value:     value,
		ItemCount: itemCount,
		Timestamp: time.Now().UTC(),
	}
}
