package track

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/forkful/food_ordering_system/order_service/internal/cache"
	"github.com/forkful/food_ordering_system/order_service/internal/domain/models"
	"github.com/forkful/food_ordering_system/order_service/pkg/logger"
)

type orderGetter interface {
	ByTrackingID(ctx context.Context, trackingUUID uuid.UUID) (*models.Order, error)
}

type Service struct {
	log logger.Logger

	orders orderGetter
	cache  cache.CacheI[uuid.UUID, *models.Order]
}

func New(
	log logger.Logger,
	orders orderGetter,
	orderCache cache.CacheI[uuid.UUID, *models.Order],
) *Service {
	return &Service{
		log:    log,
		orders: orders,
		cache:  orderCache,
	}
}

// Track returns the order behind a customer-facing tracking id. Cached
// entries may lag a saga transition by one TTL window; the repository is
// the source of truth once the entry expires.
func (s *Service) Track(ctx context.Context, trackingUUID uuid.UUID) (*models.Order, error) {
	const op = "services.order.track.Track"

	if order, ok := s.cache.Get(trackingUUID); ok && order != nil {
		// A cached terminal order can no longer change.
		if order.Status.IsTerminal() {
			return order, nil
		}
	}

	order, err := s.orders.ByTrackingID(ctx, trackingUUID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	_ = s.cache.Add(trackingUUID, order)

	return order, nil
}
