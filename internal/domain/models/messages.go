package models

import "github.com/google/uuid"

// Outbound requests to the payment and restaurant approval services.

type PaymentRequest struct {
	SagaID     uuid.UUID `json:"saga_uuid"`
	OrderID    uuid.UUID `json:"order_uuid"`
	CustomerID uuid.UUID `json:"customer_uuid"`
	Amount     Money     `json:"amount"`
}

type ApprovalRequestItem struct {
	ProductID uuid.UUID `json:"product_uuid"`
	Quantity  int64     `json:"quantity"`
}

type RestaurantApprovalRequest struct {
	SagaID       uuid.UUID             `json:"saga_uuid"`
	OrderID      uuid.UUID             `json:"order_uuid"`
	RestaurantID uuid.UUID             `json:"restaurant_uuid"`
	Items        []ApprovalRequestItem `json:"items"`
}

type RefundRequest struct {
	SagaID  uuid.UUID `json:"saga_uuid"`
	OrderID uuid.UUID `json:"order_uuid"`
	Amount  Money     `json:"amount"`
}

// Inbound responses. Every response carries the saga id; a response
// whose saga id maps to no known order is acknowledged without effect.

type PaymentResponseStatus string

const (
	PaymentCompleted PaymentResponseStatus = "COMPLETED"
	PaymentFailed    PaymentResponseStatus = "FAILED"
)

type PaymentResponse struct {
	SagaID          uuid.UUID             `json:"saga_uuid"`
	OrderID         uuid.UUID             `json:"order_uuid"`
	Status          PaymentResponseStatus `json:"status"`
	FailureMessages []string              `json:"failure_messages"`
}

type ApprovalResponseStatus string

const (
	ApprovalApproved ApprovalResponseStatus = "APPROVED"
	ApprovalRejected ApprovalResponseStatus = "REJECTED"
)

type RestaurantApprovalResponse struct {
	SagaID          uuid.UUID              `json:"saga_uuid"`
	OrderID         uuid.UUID              `json:"order_uuid"`
	Status          ApprovalResponseStatus `json:"status"`
	FailureMessages []string               `json:"failure_messages"`
}

type RefundResponseStatus string

const (
	RefundCompleted RefundResponseStatus = "COMPLETED"
	RefundFailed    RefundResponseStatus = "FAILED"
)

type RefundResponse struct {
	SagaID  uuid.UUID            `json:"saga_uuid"`
	OrderID uuid.UUID            `json:"order_uuid"`
	Status  RefundResponseStatus `json:"status"`
}
