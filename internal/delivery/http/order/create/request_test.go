package create

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/forkful/food_ordering_system/order_service/internal/domain/models"
)

func validRequest() CreateOrderRequest {
	return CreateOrderRequest{
		CustomerUUID:   uuid.New().String(),
		RestaurantUUID: uuid.New().String(),
		Address: AddressRequest{
			Street:     "1 Main St",
			PostalCode: "10001",
			City:       "Springfield",
		},
		Items: []ItemRequest{
			{ProductUUID: uuid.New().String(), Quantity: 1, Price: "50.00", SubTotal: "50.00"},
			{ProductUUID: uuid.New().String(), Quantity: 3, Price: "50.00", SubTotal: "150.00"},
		},
		Price: "200.00",
	}
}

func TestValidateRequest(t *testing.T) {
	cases := []struct {
		name    string
		mutate  func(req *CreateOrderRequest)
		wantErr bool
	}{
		{
			name:   "valid request",
			mutate: func(req *CreateOrderRequest) {},
		},
		{
			name:    "missing customer uuid",
			mutate:  func(req *CreateOrderRequest) { req.CustomerUUID = "" },
			wantErr: true,
		},
		{
			name:    "malformed restaurant uuid",
			mutate:  func(req *CreateOrderRequest) { req.RestaurantUUID = "not-a-uuid" },
			wantErr: true,
		},
		{
			name:    "no items",
			mutate:  func(req *CreateOrderRequest) { req.Items = nil },
			wantErr: true,
		},
		{
			name:    "zero quantity",
			mutate:  func(req *CreateOrderRequest) { req.Items[0].Quantity = 0 },
			wantErr: true,
		},
		{
			name:    "negative quantity",
			mutate:  func(req *CreateOrderRequest) { req.Items[0].Quantity = -1 },
			wantErr: true,
		},
		{
			name:    "missing street",
			mutate:  func(req *CreateOrderRequest) { req.Address.Street = "" },
			wantErr: true,
		},
		{
			name:    "missing price",
			mutate:  func(req *CreateOrderRequest) { req.Price = "" },
			wantErr: true,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := validRequest()
			tc.mutate(&req)

			err := req.validateRequest()
			if tc.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestToCommand(t *testing.T) {
	req := validRequest()

	cmd, err := req.toCommand()
	require.NoError(t, err)

	require.Equal(t, req.CustomerUUID, cmd.CustomerID.String())
	require.Equal(t, req.RestaurantUUID, cmd.RestaurantID.String())
	require.True(t, cmd.Price.Equals(models.MustMoney("200.00")))
	require.Len(t, cmd.Items, 2)
	require.Equal(t, int64(3), cmd.Items[1].Quantity)
	require.True(t, cmd.Items[1].SubTotal.Equals(models.MustMoney("150.00")))
}

func TestToCommandRejectsBadPrice(t *testing.T) {
	req := validRequest()
	req.Price = "two hundred"

	_, err := req.toCommand()
	require.ErrorIs(t, err, errInvalidPrice)
}

func TestToCommandRejectsNegativeItemPrice(t *testing.T) {
	req := validRequest()
	req.Items[0].Price = "-50.00"

	_, err := req.toCommand()
	require.ErrorIs(t, err, errInvalidPrice)
}
