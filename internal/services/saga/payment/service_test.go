package payment

import (
	"context"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/forkful/food_ordering_system/order_service/internal/domain/models"
	internalErrors "github.com/forkful/food_ordering_system/order_service/internal/lib/errors"
	"github.com/forkful/food_ordering_system/order_service/internal/repository/mocks"
	"github.com/forkful/food_ordering_system/order_service/internal/repository/saga"
	"github.com/forkful/food_ordering_system/order_service/pkg/logger"
)

func newTestOrder(t *testing.T) *models.Order {
	t.Helper()

	productID := uuid.New()
	restaurant := &models.Restaurant{
		ID:     uuid.New(),
		Active: true,
		Products: map[uuid.UUID]models.Product{
			productID: {ID: productID, Name: "pad thai", Price: models.MustMoney("25.00")},
		},
	}

	order, err := models.NewOrder(
		uuid.New(), restaurant.ID,
		models.Address{Street: "1 Main St", PostalCode: "10001", City: "Springfield"},
		[]models.OrderItem{
			{ProductID: productID, Quantity: 2, Price: models.MustMoney("25.00"), SubTotal: models.MustMoney("50.00")},
		},
		models.MustMoney("50.00"), restaurant,
	)
	require.NoError(t, err)

	return order
}

func newService(t *testing.T) (*Service, *mocks.MockOrderRepository, *mocks.MockStepCommitter) {
	t.Helper()

	ctl := gomock.NewController(t)
	t.Cleanup(ctl.Finish)

	orders := mocks.NewMockOrderRepository(ctl)
	steps := mocks.NewMockStepCommitter(ctl)

	return New(logger.NewSlogLogger(logger.EnvLocal), orders, steps, 5*time.Minute), orders, steps
}

func TestStartSchedulesPaymentRequest(t *testing.T) {
	svc, orders, steps := newService(t)
	ctx := context.Background()
	order := newTestOrder(t)

	orders.EXPECT().ByID(ctx, order.ID).Return(order, nil)
	steps.EXPECT().CommitStep(ctx, gomock.Any()).DoAndReturn(
		func(_ context.Context, step saga.Step) (bool, error) {
			require.Equal(t, order.ID, step.SagaID)
			require.Equal(t, models.PaymentSagaName, step.SagaName)
			require.Equal(t, models.SagaStatusStarted, step.Status)
			require.Nil(t, step.Order)
			require.Len(t, step.Messages, 1)
			require.Equal(t, models.EventPaymentRequest, step.Messages[0].EventType)
			return true, nil
		},
	)

	err := svc.Start(ctx, models.OrderCreatedEvent{OrderID: order.ID, CustomerID: order.CustomerID})
	require.NoError(t, err)
}

func TestStartDuplicateEventIsAcknowledged(t *testing.T) {
	svc, orders, steps := newService(t)
	ctx := context.Background()
	order := newTestOrder(t)

	orders.EXPECT().ByID(ctx, order.ID).Return(order, nil)
	steps.EXPECT().CommitStep(ctx, gomock.Any()).Return(false, nil)

	require.NoError(t, svc.Start(ctx, models.OrderCreatedEvent{OrderID: order.ID}))
}

func TestStartUnknownOrder(t *testing.T) {
	svc, orders, _ := newService(t)
	ctx := context.Background()
	orderID := uuid.New()

	orders.EXPECT().ByID(ctx, orderID).Return(nil, internalErrors.ErrOrderNotFound)

	err := svc.Start(ctx, models.OrderCreatedEvent{OrderID: orderID})
	require.ErrorIs(t, err, internalErrors.ErrUnknownSaga)
}

func TestPaymentCompletedAdvancesOrderToPaid(t *testing.T) {
	svc, orders, steps := newService(t)
	ctx := context.Background()
	order := newTestOrder(t)

	orders.EXPECT().ByID(ctx, order.ID).Return(order, nil)
	steps.EXPECT().CommitStep(ctx, gomock.Any()).DoAndReturn(
		func(_ context.Context, step saga.Step) (bool, error) {
			require.Equal(t, models.SagaStatusSucceeded, step.Status)
			require.Equal(t, models.OrderStatusPaid, step.Order.Status)
			require.Len(t, step.Messages, 1)
			require.Equal(t, models.EventOrderPaid, step.Messages[0].EventType)
			return true, nil
		},
	)

	err := svc.HandleResponse(ctx, models.PaymentResponse{
		SagaID:  order.SagaID(),
		OrderID: order.ID,
		Status:  models.PaymentCompleted,
	})
	require.NoError(t, err)
	require.Equal(t, models.OrderStatusPaid, order.Status)
}

func TestDuplicatePaymentCompletedHasNoSecondEffect(t *testing.T) {
	svc, orders, steps := newService(t)
	ctx := context.Background()
	order := newTestOrder(t)

	response := models.PaymentResponse{
		SagaID:  order.SagaID(),
		OrderID: order.ID,
		Status:  models.PaymentCompleted,
	}

	orders.EXPECT().ByID(ctx, order.ID).Return(order, nil).Times(2)
	// Exactly one step commit despite two deliveries.
	steps.EXPECT().CommitStep(ctx, gomock.Any()).Return(true, nil).Times(1)

	require.NoError(t, svc.HandleResponse(ctx, response))
	require.NoError(t, svc.HandleResponse(ctx, response))
	require.Equal(t, models.OrderStatusPaid, order.Status)
}

func TestPaymentFailedCancelsOrder(t *testing.T) {
	svc, orders, steps := newService(t)
	ctx := context.Background()
	order := newTestOrder(t)

	orders.EXPECT().ByID(ctx, order.ID).Return(order, nil)
	steps.EXPECT().CommitStep(ctx, gomock.Any()).DoAndReturn(
		func(_ context.Context, step saga.Step) (bool, error) {
			require.Equal(t, models.SagaStatusFailed, step.Status)
			require.Equal(t, models.OrderStatusCancelled, step.Order.Status)
			require.Len(t, step.Messages, 1)
			require.Equal(t, models.EventOrderCancelling, step.Messages[0].EventType)
			return true, nil
		},
	)

	err := svc.HandleResponse(ctx, models.PaymentResponse{
		SagaID:          order.SagaID(),
		OrderID:         order.ID,
		Status:          models.PaymentFailed,
		FailureMessages: []string{"card declined"},
	})
	require.NoError(t, err)
	require.Equal(t, []string{"card declined"}, order.FailureMessages)
}

func TestResponseWithForeignSagaIDIsRejected(t *testing.T) {
	svc, orders, _ := newService(t)
	ctx := context.Background()
	order := newTestOrder(t)

	orders.EXPECT().ByID(ctx, order.ID).Return(order, nil)

	err := svc.HandleResponse(ctx, models.PaymentResponse{
		SagaID:  uuid.New(),
		OrderID: order.ID,
		Status:  models.PaymentCompleted,
	})
	require.ErrorIs(t, err, internalErrors.ErrUnknownSaga)
	require.Equal(t, models.OrderStatusPending, order.Status)
}

func TestExpireStaleCancelsPendingOrders(t *testing.T) {
	svc, orders, steps := newService(t)
	ctx := context.Background()
	order := newTestOrder(t)

	orders.EXPECT().StalePendingIDs(ctx, gomock.Any(), reaperBatchSize).Return([]uuid.UUID{order.ID}, nil)
	orders.EXPECT().ByID(ctx, order.ID).Return(order, nil)
	steps.EXPECT().CommitStep(ctx, gomock.Any()).DoAndReturn(
		func(_ context.Context, step saga.Step) (bool, error) {
			require.Equal(t, models.SagaStatusFailed, step.Status)
			require.Equal(t, models.OrderStatusCancelled, step.Order.Status)
			return true, nil
		},
	)

	require.NoError(t, svc.ExpireStale(ctx))
	require.Equal(t, []string{"payment response timed out"}, order.FailureMessages)
}

func TestExpireStaleSkipsOrdersThatMovedOn(t *testing.T) {
	svc, orders, _ := newService(t)
	ctx := context.Background()
	order := newTestOrder(t)
	require.NoError(t, order.Pay())

	orders.EXPECT().StalePendingIDs(ctx, gomock.Any(), reaperBatchSize).Return([]uuid.UUID{order.ID}, nil)
	orders.EXPECT().ByID(ctx, order.ID).Return(order, nil)

	require.NoError(t, svc.ExpireStale(ctx))
	require.Equal(t, models.OrderStatusPaid, order.Status)
}
