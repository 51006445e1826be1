package models

import (
	"fmt"

	internalErrors "github.com/forkful/food_ordering_system/order_service/internal/lib/errors"
)

// ValidateOrder runs every create-time check against the restaurant
// snapshot. It is deterministic and side-effect free, so saga steps may
// re-run it on replay without consequence.
func ValidateOrder(order *Order, restaurant *Restaurant) error {
	if !restaurant.Active {
		return internalErrors.ErrRestaurantNotActive
	}

	if len(order.Items) == 0 {
		return internalErrors.ErrEmptyOrderItems
	}

	total := ZeroMoney
	for _, item := range order.Items {
		if err := validateItem(item, restaurant); err != nil {
			return err
		}
		total = total.Add(item.SubTotal)
	}

	if !total.Equals(order.Price) {
		return fmt.Errorf("%w: declared %s, items total %s",
			internalErrors.ErrPriceMismatch, order.Price, total)
	}

	return nil
}

func validateItem(item OrderItem, restaurant *Restaurant) error {
	if item.Quantity <= 0 {
		return fmt.Errorf("%w: product %s", internalErrors.ErrInvalidQuantity, item.ProductID)
	}

	if !item.SubTotal.Equals(item.Price.MultiplyInt(item.Quantity)) {
		return fmt.Errorf("%w: product %s", internalErrors.ErrPriceMismatch, item.ProductID)
	}

	product, ok := restaurant.Products[item.ProductID]
	if !ok {
		return fmt.Errorf("%w: product %s", internalErrors.ErrProductNotInCatalog, item.ProductID)
	}

	if !product.Price.Equals(item.Price) {
		return fmt.Errorf("%w: product %s priced %s, catalog has %s",
			internalErrors.ErrProductPriceMismatch, item.ProductID, item.Price, product.Price)
	}

	return nil
}
