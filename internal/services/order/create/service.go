package create

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/forkful/food_ordering_system/order_service/internal/cache"
	"github.com/forkful/food_ordering_system/order_service/internal/domain/models"
	"github.com/forkful/food_ordering_system/order_service/pkg/logger"
)

type orderCreator interface {
	Create(ctx context.Context, order *models.Order, initialMessages ...models.OutBoxMessage) error
}

type customerFinder interface {
	Find(ctx context.Context, customerUUID uuid.UUID) (*models.Customer, error)
}

type restaurantFinder interface {
	Snapshot(ctx context.Context, restaurantUUID uuid.UUID, productUUIDs []uuid.UUID) (*models.Restaurant, error)
}

// Command is the validated shape of an inbound create request. Domain
// checks (prices, catalog, restaurant state) happen in the aggregate,
// not here.
type Command struct {
	CustomerID   uuid.UUID
	RestaurantID uuid.UUID
	Address      models.Address
	Items        []models.OrderItem
	Price        models.Money
}

type Service struct {
	log logger.Logger

	orders      orderCreator
	customers   customerFinder
	restaurants restaurantFinder

	cache cache.CacheI[uuid.UUID, *models.Order]
}

func New(
	log logger.Logger,
	orders orderCreator,
	customers customerFinder,
	restaurants restaurantFinder,
	orderCache cache.CacheI[uuid.UUID, *models.Order],
) *Service {
	return &Service{
		log:         log,
		orders:      orders,
		customers:   customers,
		restaurants: restaurants,
		cache:       orderCache,
	}
}

// Create runs the create half of the orchestrator: resolve the
// collaborator snapshots, initiate the aggregate, and persist order plus
// OrderCreatedEvent in one transaction. The saga takes over from the
// published event.
func (s *Service) Create(ctx context.Context, cmd Command) (*models.Order, error) {
	const op = "services.order.create.Create"

	if _, err := s.customers.Find(ctx, cmd.CustomerID); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	productIDs := make([]uuid.UUID, 0, len(cmd.Items))
	for _, item := range cmd.Items {
		productIDs = append(productIDs, item.ProductID)
	}

	snapshot, err := s.restaurants.Snapshot(ctx, cmd.RestaurantID, productIDs)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	order, err := models.NewOrder(cmd.CustomerID, cmd.RestaurantID, cmd.Address, cmd.Items, cmd.Price, snapshot)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	createdMsg, err := models.NewOutBoxMessage(models.EventOrderCreated, models.OrderCreatedEvent{
		OrderID:    order.ID,
		CustomerID: order.CustomerID,
		Price:      order.Price,
		CreatedAt:  order.CreatedAt,
	})
	if err != nil {
		return nil, fmt.Errorf("%s: marshal event: %w", op, err)
	}

	if err = s.orders.Create(ctx, order, createdMsg); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	_ = s.cache.Add(order.TrackingID, order)

	s.log.InfoContext(ctx, op,
		logger.String("order_uuid", order.ID.String()),
		logger.String("tracking_uuid", order.TrackingID.String()),
	)

	return order, nil
}
