package models

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	internalErrors "github.com/forkful/food_ordering_system/order_service/internal/lib/errors"
)

var (
	testCustomerID   = uuid.New()
	testRestaurantID = uuid.New()
	testProductID    = uuid.New()
)

func testRestaurant() *Restaurant {
	return &Restaurant{
		ID:     testRestaurantID,
		Active: true,
		Products: map[uuid.UUID]Product{
			testProductID: {ID: testProductID, Name: "margherita", Price: MustMoney("50.00")},
		},
	}
}

func testItems() []OrderItem {
	return []OrderItem{
		{ProductID: testProductID, Quantity: 1, Price: MustMoney("50.00"), SubTotal: MustMoney("50.00")},
		{ProductID: testProductID, Quantity: 3, Price: MustMoney("50.00"), SubTotal: MustMoney("150.00")},
	}
}

func testAddress() Address {
	return Address{Street: "1 Main St", PostalCode: "10001", City: "Springfield"}
}

func newTestOrder(t *testing.T) *Order {
	t.Helper()

	order, err := NewOrder(
		testCustomerID, testRestaurantID, testAddress(),
		testItems(), MustMoney("200.00"), testRestaurant(),
	)
	require.NoError(t, err)

	return order
}

func TestNewOrder(t *testing.T) {
	order := newTestOrder(t)

	require.Equal(t, OrderStatusPending, order.Status)
	require.True(t, order.Price.Equals(MustMoney("200.00")))
	require.NotEqual(t, uuid.Nil, order.ID)
	require.NotEqual(t, uuid.Nil, order.TrackingID)
	require.Equal(t, order.ID, order.SagaID())
}

func TestNewOrderValidationErrors(t *testing.T) {
	inactive := testRestaurant()
	inactive.Active = false

	wrongCatalogPrice := testRestaurant()
	wrongCatalogPrice.Products[testProductID] = Product{
		ID: testProductID, Name: "margherita", Price: MustMoney("49.00"),
	}

	badQuantity := testItems()
	badQuantity[0].Quantity = 0

	badSubTotal := testItems()
	badSubTotal[1].SubTotal = MustMoney("140.00")

	tCases := []struct {
		name       string
		items      []OrderItem
		price      Money
		restaurant *Restaurant
		expErr     error
	}{
		{
			name:       "declared_price_mismatch",
			items:      testItems(),
			price:      MustMoney("250.00"),
			restaurant: testRestaurant(),
			expErr:     internalErrors.ErrPriceMismatch,
		},
		{
			name:       "item_subtotal_mismatch",
			items:      badSubTotal,
			price:      MustMoney("200.00"),
			restaurant: testRestaurant(),
			expErr:     internalErrors.ErrPriceMismatch,
		},
		{
			name:       "catalog_price_mismatch",
			items:      testItems(),
			price:      MustMoney("200.00"),
			restaurant: wrongCatalogPrice,
			expErr:     internalErrors.ErrProductPriceMismatch,
		},
		{
			name: "product_not_in_catalog",
			items: []OrderItem{
				{ProductID: uuid.New(), Quantity: 1, Price: MustMoney("50.00"), SubTotal: MustMoney("50.00")},
			},
			price:      MustMoney("50.00"),
			restaurant: testRestaurant(),
			expErr:     internalErrors.ErrProductNotInCatalog,
		},
		{
			name:       "restaurant_not_active",
			items:      testItems(),
			price:      MustMoney("200.00"),
			restaurant: inactive,
			expErr:     internalErrors.ErrRestaurantNotActive,
		},
		{
			name:       "empty_items",
			items:      nil,
			price:      MustMoney("0.00"),
			restaurant: testRestaurant(),
			expErr:     internalErrors.ErrEmptyOrderItems,
		},
		{
			name:       "zero_quantity",
			items:      badQuantity,
			price:      MustMoney("200.00"),
			restaurant: testRestaurant(),
			expErr:     internalErrors.ErrInvalidQuantity,
		},
	}

	for _, tCase := range tCases {
		t.Run(tCase.name, func(t *testing.T) {
			_, err := NewOrder(
				testCustomerID, testRestaurantID, testAddress(),
				tCase.items, tCase.price, tCase.restaurant,
			)
			require.Error(t, err)
			require.ErrorIs(t, err, tCase.expErr)
		})
	}
}

func TestOrderSuccessPath(t *testing.T) {
	order := newTestOrder(t)

	require.NoError(t, order.Pay())
	require.Equal(t, OrderStatusPaid, order.Status)

	require.NoError(t, order.Approve())
	require.Equal(t, OrderStatusApproved, order.Status)
	require.True(t, order.Status.IsTerminal())
}

func TestOrderPayRequiresPending(t *testing.T) {
	order := newTestOrder(t)
	require.NoError(t, order.Pay())

	require.ErrorIs(t, order.Pay(), internalErrors.ErrIllegalStateTransition)
}

func TestOrderApproveRequiresPaid(t *testing.T) {
	order := newTestOrder(t)

	require.ErrorIs(t, order.Approve(), internalErrors.ErrIllegalStateTransition)
}

func TestOrderCancellationFromPending(t *testing.T) {
	order := newTestOrder(t)

	require.NoError(t, order.InitCancel("payment declined"))
	require.Equal(t, OrderStatusCancelling, order.Status)
	require.Equal(t, []string{"payment declined"}, order.FailureMessages)

	require.NoError(t, order.Cancel())
	require.Equal(t, OrderStatusCancelled, order.Status)
	require.True(t, order.Status.IsTerminal())
}

func TestOrderCancellationFromPaid(t *testing.T) {
	order := newTestOrder(t)
	require.NoError(t, order.Pay())

	require.NoError(t, order.InitCancel("restaurant rejected the order"))
	require.Equal(t, OrderStatusCancelling, order.Status)

	require.NoError(t, order.Cancel())
	require.Equal(t, OrderStatusCancelled, order.Status)
}

func TestOrderCancelDirectlyFromPending(t *testing.T) {
	order := newTestOrder(t)

	require.NoError(t, order.Cancel("payment response timed out"))
	require.Equal(t, OrderStatusCancelled, order.Status)
}

func TestOrderInitCancelIdempotent(t *testing.T) {
	order := newTestOrder(t)

	require.NoError(t, order.InitCancel("first reason"))
	require.NoError(t, order.InitCancel("second delivery of the same failure"))

	require.Equal(t, OrderStatusCancelling, order.Status)
	require.Equal(t, []string{"first reason"}, order.FailureMessages)
}

func TestOrderTerminalStatesRejectTransitions(t *testing.T) {
	approved := newTestOrder(t)
	require.NoError(t, approved.Pay())
	require.NoError(t, approved.Approve())

	require.ErrorIs(t, approved.Pay(), internalErrors.ErrIllegalStateTransition)
	require.ErrorIs(t, approved.InitCancel("too late"), internalErrors.ErrIllegalStateTransition)
	require.ErrorIs(t, approved.Cancel(), internalErrors.ErrIllegalStateTransition)

	cancelled := newTestOrder(t)
	require.NoError(t, cancelled.Cancel())

	require.ErrorIs(t, cancelled.Pay(), internalErrors.ErrIllegalStateTransition)
	require.NoError(t, cancelled.Cancel())
	require.Equal(t, OrderStatusCancelled, cancelled.Status)
}
