package create

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/forkful/food_ordering_system/order_service/internal/domain/models"
	createService "github.com/forkful/food_ordering_system/order_service/internal/services/order/create"
)

var (
	errInvalidPrice    = errors.New("invalid price")
	errInvalidQuantity = errors.New("invalid quantity")
)

var validate = validator.New()

type CreateOrderRequest struct {
	CustomerUUID   string         `json:"customer_uuid" validate:"required,uuid"`
	RestaurantUUID string         `json:"restaurant_uuid" validate:"required,uuid"`
	Address        AddressRequest `json:"address" validate:"required"`
	Items          []ItemRequest  `json:"items" validate:"required,min=1,dive"`
	Price          string         `json:"price" validate:"required"`
}

type AddressRequest struct {
	Street     string `json:"street" validate:"required"`
	PostalCode string `json:"postal_code" validate:"required"`
	City       string `json:"city" validate:"required"`
}

type ItemRequest struct {
	ProductUUID string `json:"product_uuid" validate:"required,uuid"`
	Quantity    int64  `json:"quantity" validate:"required,gt=0"`
	Price       string `json:"price" validate:"required"`
	SubTotal    string `json:"sub_total" validate:"required"`
}

func (req *CreateOrderRequest) validateRequest() error {
	return validate.Struct(req)
}

func (req *CreateOrderRequest) toCommand() (createService.Command, error) {
	price, err := models.NewMoneyFromString(req.Price)
	if err != nil {
		return createService.Command{}, fmt.Errorf("%w: %s", errInvalidPrice, req.Price)
	}

	items := make([]models.OrderItem, 0, len(req.Items))
	for _, item := range req.Items {
		if item.Quantity <= 0 {
			return createService.Command{}, errInvalidQuantity
		}

		itemPrice, err := models.NewMoneyFromString(item.Price)
		if err != nil {
			return createService.Command{}, fmt.Errorf("%w: %s", errInvalidPrice, item.Price)
		}

		subTotal, err := models.NewMoneyFromString(item.SubTotal)
		if err != nil {
			return createService.Command{}, fmt.Errorf("%w: %s", errInvalidPrice, item.SubTotal)
		}

		items = append(items, models.OrderItem{
			ProductID: uuid.MustParse(item.ProductUUID),
			Quantity:  item.Quantity,
			Price:     itemPrice,
			SubTotal:  subTotal,
		})
	}

	return createService.Command{
		CustomerID:   uuid.MustParse(req.CustomerUUID),
		RestaurantID: uuid.MustParse(req.RestaurantUUID),
		Address: models.Address{
			Street:     req.Address.Street,
			PostalCode: req.Address.PostalCode,
			City:       req.Address.City,
		},
		Items: items,
		Price: price,
	}, nil
}
