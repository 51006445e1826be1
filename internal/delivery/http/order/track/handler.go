package track

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/forkful/food_ordering_system/order_service/internal/domain/models"
	internalErrors "github.com/forkful/food_ordering_system/order_service/internal/lib/errors"
	"github.com/forkful/food_ordering_system/order_service/pkg/logger"
)

var errInvalidTrackingUUID = errors.New("invalid tracking_uuid")

type orderTracker interface {
	Track(ctx context.Context, trackingUUID uuid.UUID) (*models.Order, error)
}

type Handler struct {
	log logger.Logger

	orderTracker orderTracker
}

func NewHandler(log logger.Logger, orderTracker orderTracker) *Handler {
	return &Handler{
		log:          log,
		orderTracker: orderTracker,
	}
}

type TrackOrderResponse struct {
	TrackingUUID    string   `json:"tracking_uuid"`
	Status          string   `json:"status"`
	FailureMessages []string `json:"failure_messages,omitempty"`
}

func (h *Handler) Track(w http.ResponseWriter, r *http.Request) {
	trackingUUID, err := uuid.Parse(chi.URLParam(r, "tracking_uuid"))
	if err != nil {
		http.Error(w, errInvalidTrackingUUID.Error(), http.StatusBadRequest)
		return
	}

	order, err := h.orderTracker.Track(r.Context(), trackingUUID)
	if err != nil {
		if errors.Is(err, internalErrors.ErrOrderNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		h.log.Error("failed to track order", logger.Err(err))
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)

	if err = json.NewEncoder(w).Encode(TrackOrderResponse{
		TrackingUUID:    order.TrackingID.String(),
		Status:          order.Status.String(),
		FailureMessages: order.FailureMessages,
	}); err != nil {
		h.log.Error("failed to encode response", logger.Err(err))
	}
}
