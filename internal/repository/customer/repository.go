package customer

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

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

func (r *Repository) Find(ctx context.Context, customerUUID uuid.UUID) (*models.Customer, error) {
	const op = "repository.customer.Find"

	const query = `SELECT uuid FROM customers WHERE uuid = $1`

	var customer models.Customer
	if err := r.db.QueryRowContext(ctx, query, customerUUID).Scan(&customer.ID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, internalErrors.ErrCustomerNotFound
		}
		r.log.Error(op, logger.Err(err))
		return nil, fmt.Errorf("%s: scan customer: %w", op, err)
	}

	return &customer, nil
}
