package models

import (
	"time"

	"github.com/google/uuid"
)

// EventType tags an outbox row so the relay knows which topic the
// payload belongs to and consumers know how to decode it.
type EventType string

const (
	EventOrderCreated    EventType = "ORDER_CREATED"
	EventOrderPaid       EventType = "ORDER_PAID"
	EventOrderCancelling EventType = "ORDER_CANCELLING"

	EventPaymentRequest  EventType = "PAYMENT_REQUEST"
	EventApprovalRequest EventType = "RESTAURANT_APPROVAL_REQUEST"
	EventRefundRequest   EventType = "REFUND_REQUEST"
)

type OrderCreatedEvent struct {
	OrderID    uuid.UUID `json:"order_uuid"`
	CustomerID uuid.UUID `json:"customer_uuid"`
	Price      Money     `json:"price"`
	CreatedAt  time.Time `json:"created_at"`
}

type OrderPaidEvent struct {
	OrderID uuid.UUID `json:"order_uuid"`
	SagaID  uuid.UUID `json:"saga_uuid"`
}

type OrderCancellingEvent struct {
	OrderID uuid.UUID `json:"order_uuid"`
	Reason  string    `json:"reason"`
}
