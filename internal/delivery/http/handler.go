package orderhttp

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/forkful/food_ordering_system/order_service/internal/delivery/http/order/create"
	"github.com/forkful/food_ordering_system/order_service/internal/delivery/http/order/track"
	"github.com/forkful/food_ordering_system/order_service/internal/domain/models"
	createService "github.com/forkful/food_ordering_system/order_service/internal/services/order/create"
	"github.com/forkful/food_ordering_system/order_service/pkg/logger"
)

type OrderCreator interface {
	Create(ctx context.Context, cmd createService.Command) (*models.Order, error)
}

type OrderTracker interface {
	Track(ctx context.Context, trackingUUID uuid.UUID) (*models.Order, error)
}

type Handler struct {
	log logger.Logger

	createHandler *create.Handler
	trackHandler  *track.Handler
}

func NewHandler(log logger.Logger, creator OrderCreator, tracker OrderTracker) *Handler {
	return &Handler{
		log:           log,
		createHandler: create.NewHandler(log, creator),
		trackHandler:  track.NewHandler(log, tracker),
	}
}

func (h *Handler) InitRoutes() http.Handler {
	mux := chi.NewRouter()

	mux.Route("/order", func(r chi.Router) {
		r.Post("/", h.createHandler.Create)
		r.Get("/{tracking_uuid}", h.trackHandler.Track)
	})

	return mux
}
