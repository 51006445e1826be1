package create

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/forkful/food_ordering_system/order_service/internal/domain/models"
	internalErrors "github.com/forkful/food_ordering_system/order_service/internal/lib/errors"
	createService "github.com/forkful/food_ordering_system/order_service/internal/services/order/create"
	"github.com/forkful/food_ordering_system/order_service/pkg/logger"
)

type orderCreator interface {
	Create(ctx context.Context, cmd createService.Command) (*models.Order, error)
}

type Handler struct {
	log logger.Logger

	orderCreator orderCreator
}

func NewHandler(log logger.Logger, orderCreator orderCreator) *Handler {
	return &Handler{
		log:          log,
		orderCreator: orderCreator,
	}
}

type CreateOrderResponse struct {
	OrderUUID    string `json:"order_uuid"`
	TrackingUUID string `json:"tracking_uuid"`
	Status       string `json:"status"`
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var request CreateOrderRequest

	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		h.log.Error("failed to decode request", logger.Err(err))
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := request.validateRequest(); err != nil {
		h.log.Error("failed to validate request", logger.Err(err))
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	cmd, err := request.toCommand()
	if err != nil {
		h.log.Error("failed to map request", logger.Err(err))
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	order, err := h.orderCreator.Create(r.Context(), cmd)
	if err != nil {
		h.log.Error("failed to create order", logger.Err(err))
		http.Error(w, err.Error(), statusFromError(err))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err = json.NewEncoder(w).Encode(CreateOrderResponse{
		OrderUUID:    order.ID.String(),
		TrackingUUID: order.TrackingID.String(),
		Status:       order.Status.String(),
	}); err != nil {
		h.log.Error("failed to encode response", logger.Err(err))
	}
}

func statusFromError(err error) int {
	switch {
	case errors.Is(err, internalErrors.ErrCustomerNotFound),
		errors.Is(err, internalErrors.ErrRestaurantNotFound):
		return http.StatusNotFound
	case errors.Is(err, internalErrors.ErrPriceMismatch),
		errors.Is(err, internalErrors.ErrProductPriceMismatch),
		errors.Is(err, internalErrors.ErrProductNotInCatalog),
		errors.Is(err, internalErrors.ErrRestaurantNotActive),
		errors.Is(err, internalErrors.ErrEmptyOrderItems),
		errors.Is(err, internalErrors.ErrInvalidQuantity):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
