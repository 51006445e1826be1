package errors

import "errors"

var (
	ErrOrderNotFound      = errors.New("order not found")
	ErrCustomerNotFound   = errors.New("customer not found")
	ErrRestaurantNotFound = errors.New("restaurant not found")

	ErrPriceMismatch        = errors.New("order total does not match the sum of item subtotals")
	ErrProductPriceMismatch = errors.New("order item price does not match the restaurant catalog")
	ErrProductNotInCatalog  = errors.New("ordered product is not in the restaurant catalog")
	ErrRestaurantNotActive  = errors.New("restaurant is not active")
	ErrEmptyOrderItems      = errors.New("order must contain at least one item")
	ErrInvalidQuantity      = errors.New("order item quantity must be positive")

	ErrIllegalStateTransition = errors.New("order status does not permit this transition")
	ErrConcurrentUpdate       = errors.New("order was modified concurrently")
	ErrUnknownSaga            = errors.New("message does not correlate to a known order")
)
