package models

import (
	"time"

	"github.com/google/uuid"

	internalErrors "github.com/forkful/food_ordering_system/order_service/internal/lib/errors"
)

type OrderStatus int

const (
	OrderStatusUndefined OrderStatus = iota
	OrderStatusPending
	OrderStatusPaid
	OrderStatusApproved
	OrderStatusCancelling
	OrderStatusCancelled
)

func (s OrderStatus) String() string {
	switch s {
	case OrderStatusPending:
		return "PENDING"
	case OrderStatusPaid:
		return "PAID"
	case OrderStatusApproved:
		return "APPROVED"
	case OrderStatusCancelling:
		return "CANCELLING"
	case OrderStatusCancelled:
		return "CANCELLED"
	default:
		return "UNDEFINED"
	}
}

// IsTerminal reports whether no further business transition is
// permitted from s.
func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusApproved || s == OrderStatusCancelled
}

type Address struct {
	Street     string `json:"street"`
	PostalCode string `json:"postal_code"`
	City       string `json:"city"`
}

type OrderItem struct {
	ProductID uuid.UUID `json:"product_uuid"`
	Quantity  int64     `json:"quantity"`
	Price     Money     `json:"price"`
	SubTotal  Money     `json:"sub_total"`
}

// Order is the aggregate root. All status changes go through its
// methods; repositories only persist what the aggregate produced.
type Order struct {
	ID              uuid.UUID
	TrackingID      uuid.UUID
	CustomerID      uuid.UUID
	RestaurantID    uuid.UUID
	DeliveryAddress Address
	Items           []OrderItem
	Price           Money
	Status          OrderStatus
	FailureMessages []string
	CreatedAt       time.Time

	// Version backs the optimistic-concurrency check on persistence.
	Version int64
}

// NewOrder validates the proposed order against the restaurant snapshot
// and, if every check passes, returns the aggregate in PENDING with a
// freshly assigned tracking id.
func NewOrder(
	customerID uuid.UUID,
	restaurantID uuid.UUID,
	deliveryAddress Address,
	items []OrderItem,
	price Money,
	restaurant *Restaurant,
) (*Order, error) {
	order := &Order{
		ID:              uuid.New(),
		TrackingID:      uuid.New(),
		CustomerID:      customerID,
		RestaurantID:    restaurantID,
		DeliveryAddress: deliveryAddress,
		Items:           items,
		Price:           price,
		CreatedAt:       time.Now().UTC(),
	}

	if err := ValidateOrder(order, restaurant); err != nil {
		return nil, err
	}

	order.Status = OrderStatusPending

	return order, nil
}

// SagaID returns the id correlating saga messages to this order. The
// saga is 1:1 with the order, so the order id doubles as the saga id.
func (o *Order) SagaID() uuid.UUID {
	return o.ID
}

func (o *Order) Pay() error {
	if o.Status != OrderStatusPending {
		return internalErrors.ErrIllegalStateTransition
	}

	o.Status = OrderStatusPaid

	return nil
}

func (o *Order) Approve() error {
	if o.Status != OrderStatusPaid {
		return internalErrors.ErrIllegalStateTransition
	}

	o.Status = OrderStatusApproved

	return nil
}

// InitCancel moves the order to CANCELLING and records why. Calling it
// on an order that is already CANCELLING or CANCELLED is a no-op so
// duplicate failure messages stay harmless.
func (o *Order) InitCancel(failureMessages ...string) error {
	switch o.Status {
	case OrderStatusCancelling, OrderStatusCancelled:
		return nil
	case OrderStatusPending, OrderStatusPaid:
		o.Status = OrderStatusCancelling
		o.appendFailureMessages(failureMessages)
		return nil
	default:
		return internalErrors.ErrIllegalStateTransition
	}
}

// Cancel finalizes the cancellation. An order that never reached PAID
// may be cancelled straight from PENDING.
func (o *Order) Cancel(failureMessages ...string) error {
	switch o.Status {
	case OrderStatusCancelled:
		return nil
	case OrderStatusCancelling, OrderStatusPending:
		o.Status = OrderStatusCancelled
		o.appendFailureMessages(failureMessages)
		return nil
	default:
		return internalErrors.ErrIllegalStateTransition
	}
}

func (o *Order) appendFailureMessages(messages []string) {
	for _, msg := range messages {
		if msg == "" {
			continue
		}
		o.FailureMessages = append(o.FailureMessages, msg)
	}
}
