package restaurant

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/forkful/food_ordering_system/order_service/internal/domain/models"
	internalErrors "github.com/forkful/food_ordering_system/order_service/internal/lib/errors"
	"github.com/forkful/food_ordering_system/order_service/pkg/logger"
)

type Repository struct {
	log logger.Logger
	db  *sqlx.DB
}

func New(log logger.Logger, db *sqlx.DB) *Repository {
	return &Repository{log: log, db: db}
}

// Snapshot loads the restaurant and the slice of its catalog the order
// references. Products outside productUUIDs are not fetched; validation
// treats a missing key as "not in catalog".
func (r *Repository) Snapshot(
	ctx context.Context,
	restaurantUUID uuid.UUID,
	productUUIDs []uuid.UUID,
) (*models.Restaurant, error) {
	const op = "repository.restaurant.Snapshot"

	const restaurantQuery = `SELECT uuid, active FROM restaurants WHERE uuid = $1`

	snapshot := models.Restaurant{
		Products: make(map[uuid.UUID]models.Product, len(productUUIDs)),
	}

	if err := r.db.QueryRowContext(ctx, restaurantQuery, restaurantUUID).
		Scan(&snapshot.ID, &snapshot.Active); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, internalErrors.ErrRestaurantNotFound
		}
		r.log.Error(op, logger.Err(err))
		return nil, fmt.Errorf("%s: scan restaurant: %w", op, err)
	}

	const productsQuery = `
		SELECT product_uuid, name, price
		FROM restaurant_products
		WHERE restaurant_uuid = $1 AND product_uuid = ANY($2)`

	rows, err := r.db.QueryContext(ctx, productsQuery, restaurantUUID, pq.Array(productUUIDs))
	if err != nil {
		r.log.Error(op, logger.Err(err))
		return nil, fmt.Errorf("%s: execute statement: %w", op, err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			product models.Product
			price   string
		)
		if err = rows.Scan(&product.ID, &product.Name, &price); err != nil {
			r.log.Error(op, logger.Err(err))
			return nil, fmt.Errorf("%s: scan product: %w", op, err)
		}

		if product.Price, err = models.NewMoneyFromString(price); err != nil {
			return nil, fmt.Errorf("%s: parse product price: %w", op, err)
		}

		snapshot.Products[product.ID] = product
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("%s: rows error: %w", op, rows.Err())
	}

	return &snapshot, nil
}
