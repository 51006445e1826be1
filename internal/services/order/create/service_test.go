package create

import (
	"context"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/stretchr/testify/require"

	"github.com/forkful/food_ordering_system/order_service/internal/domain/models"
	internalErrors "github.com/forkful/food_ordering_system/order_service/internal/lib/errors"
	"github.com/forkful/food_ordering_system/order_service/internal/repository/mocks"
	"github.com/forkful/food_ordering_system/order_service/pkg/logger"
)

type fixture struct {
	svc         *Service
	orders      *mocks.MockOrderRepository
	customers   *mocks.MockCustomerRepository
	restaurants *mocks.MockRestaurantRepository
	cache       *expirable.LRU[uuid.UUID, *models.Order]
}

func newFixture(t *testing.T) fixture {
	t.Helper()

	ctl := gomock.NewController(t)
	t.Cleanup(ctl.Finish)

	orders := mocks.NewMockOrderRepository(ctl)
	customers := mocks.NewMockCustomerRepository(ctl)
	restaurants := mocks.NewMockRestaurantRepository(ctl)
	orderCache := expirable.NewLRU[uuid.UUID, *models.Order](16, nil, time.Minute)

	return fixture{
		svc:         New(logger.NewSlogLogger(logger.EnvLocal), orders, customers, restaurants, orderCache),
		orders:      orders,
		customers:   customers,
		restaurants: restaurants,
		cache:       orderCache,
	}
}

func testCommand(restaurant *models.Restaurant, productID uuid.UUID) Command {
	return Command{
		CustomerID:   uuid.New(),
		RestaurantID: restaurant.ID,
		Address:      models.Address{Street: "1 Main St", PostalCode: "10001", City: "Springfield"},
		Items: []models.OrderItem{
			{ProductID: productID, Quantity: 1, Price: models.MustMoney("50.00"), SubTotal: models.MustMoney("50.00")},
			{ProductID: productID, Quantity: 3, Price: models.MustMoney("50.00"), SubTotal: models.MustMoney("150.00")},
		},
		Price: models.MustMoney("200.00"),
	}
}

func testSnapshot() (*models.Restaurant, uuid.UUID) {
	productID := uuid.New()
	return &models.Restaurant{
		ID:     uuid.New(),
		Active: true,
		Products: map[uuid.UUID]models.Product{
			productID: {ID: productID, Name: "pad thai", Price: models.MustMoney("50.00")},
		},
	}, productID
}

func TestCreatePersistsOrderWithCreatedEvent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	restaurant, productID := testSnapshot()
	cmd := testCommand(restaurant, productID)

	f.customers.EXPECT().Find(ctx, cmd.CustomerID).Return(&models.Customer{ID: cmd.CustomerID}, nil)
	f.restaurants.EXPECT().
		Snapshot(ctx, cmd.RestaurantID, []uuid.UUID{productID, productID}).
		Return(restaurant, nil)
	f.orders.EXPECT().Create(ctx, gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, order *models.Order, initialMessages ...models.OutBoxMessage) error {
			require.Equal(t, models.OrderStatusPending, order.Status)
			require.True(t, order.Price.Equals(models.MustMoney("200.00")))
			require.Len(t, initialMessages, 1)
			require.Equal(t, models.EventOrderCreated, initialMessages[0].EventType)
			return nil
		},
	)

	order, err := f.svc.Create(ctx, cmd)
	require.NoError(t, err)
	require.NotEqual(t, uuid.Nil, order.ID)
	require.NotEqual(t, uuid.Nil, order.TrackingID)

	cached, ok := f.cache.Get(order.TrackingID)
	require.True(t, ok)
	require.Same(t, order, cached)
}

func TestCreateRejectsUnknownCustomer(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	restaurant, productID := testSnapshot()
	cmd := testCommand(restaurant, productID)

	f.customers.EXPECT().Find(ctx, cmd.CustomerID).Return(nil, internalErrors.ErrCustomerNotFound)

	_, err := f.svc.Create(ctx, cmd)
	require.ErrorIs(t, err, internalErrors.ErrCustomerNotFound)
}

func TestCreateRejectsUnknownRestaurant(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	restaurant, productID := testSnapshot()
	cmd := testCommand(restaurant, productID)

	f.customers.EXPECT().Find(ctx, cmd.CustomerID).Return(&models.Customer{ID: cmd.CustomerID}, nil)
	f.restaurants.EXPECT().
		Snapshot(ctx, cmd.RestaurantID, gomock.Any()).
		Return(nil, internalErrors.ErrRestaurantNotFound)

	_, err := f.svc.Create(ctx, cmd)
	require.ErrorIs(t, err, internalErrors.ErrRestaurantNotFound)
}

func TestCreateRejectsPriceMismatchWithoutPersisting(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	restaurant, productID := testSnapshot()
	cmd := testCommand(restaurant, productID)
	cmd.Price = models.MustMoney("250.00")

	f.customers.EXPECT().Find(ctx, cmd.CustomerID).Return(&models.Customer{ID: cmd.CustomerID}, nil)
	f.restaurants.EXPECT().Snapshot(ctx, cmd.RestaurantID, gomock.Any()).Return(restaurant, nil)

	_, err := f.svc.Create(ctx, cmd)
	require.ErrorIs(t, err, internalErrors.ErrPriceMismatch)
	require.Zero(t, f.cache.Len())
}
