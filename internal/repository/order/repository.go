package order

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/forkful/food_ordering_system/order_service/internal/domain/models"
	internalErrors "github.com/forkful/food_ordering_system/order_service/internal/lib/errors"
	"github.com/forkful/food_ordering_system/order_service/pkg/logger"
)

type outBoxInserter interface {
	InsertTx(ctx context.Context, tx *sqlx.Tx, messages ...models.OutBoxMessage) error
}

type Repository struct {
	log logger.Logger
	db  *sqlx.DB

	outBox outBoxInserter
}

func NewOrderRepository(log logger.Logger, db *sqlx.DB, outBox outBoxInserter) *Repository {
	return &Repository{
		log:    log,
		db:     db,
		outBox: outBox,
	}
}

// Create persists the order, its items and the initial outbox message in
// a single transaction, so the order never exists without its
// OrderCreatedEvent being scheduled.
func (r *Repository) Create(
	ctx context.Context,
	order *models.Order,
	initialMessages ...models.OutBoxMessage,
) (err error) {
	const op = "repository.order.Create"

	tx, err := r.db.BeginTxx(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable})
	if err != nil {
		r.log.Error(op, logger.Err(err))
		return fmt.Errorf("%s: begin transaction: %w", op, err)
	}

	defer func() {
		if err != nil {
			if rollBackErr := tx.Rollback(); rollBackErr != nil {
				err = errors.Join(err, fmt.Errorf("%s: rollback transaction: %w", op, rollBackErr))
			}
		}
	}()

	const orderQuery = `
		INSERT INTO orders
			(uuid, tracking_uuid, customer_uuid, restaurant_uuid,
			 street, postal_code, city, price, status, failure_messages, created_at, version)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`

	if _, err = tx.ExecContext(ctx, orderQuery,
		order.ID, order.TrackingID, order.CustomerID, order.RestaurantID,
		order.DeliveryAddress.Street, order.DeliveryAddress.PostalCode, order.DeliveryAddress.City,
		order.Price.String(), int(order.Status), pq.StringArray(order.FailureMessages),
		order.CreatedAt, order.Version,
	); err != nil {
		r.log.Error(op, logger.Err(err))
		return fmt.Errorf("%s: insert order: %w", op, err)
	}

	const itemQuery = `
		INSERT INTO order_items (order_uuid, product_uuid, quantity, price, sub_total)
		VALUES ($1, $2, $3, $4, $5)`

	for _, item := range order.Items {
		if _, err = tx.ExecContext(ctx, itemQuery,
			order.ID, item.ProductID, item.Quantity, item.Price.String(), item.SubTotal.String(),
		); err != nil {
			r.log.Error(op, logger.Err(err))
			return fmt.Errorf("%s: insert order item: %w", op, err)
		}
	}

	if err = r.outBox.InsertTx(ctx, tx, initialMessages...); err != nil {
		r.log.Error(op, logger.Err(err))
		return fmt.Errorf("%s: insert outbox: %w", op, err)
	}

	if err = tx.Commit(); err != nil {
		r.log.Error(op, logger.Err(err))
		return fmt.Errorf("%s: commit transaction: %w", op, err)
	}

	return nil
}

func (r *Repository) ByID(ctx context.Context, orderUUID uuid.UUID) (*models.Order, error) {
	const op = "repository.order.ByID"

	const query = orderSelect + ` WHERE o.uuid = $1`

	return r.scanOrder(ctx, op, query, orderUUID)
}

func (r *Repository) ByTrackingID(ctx context.Context, trackingUUID uuid.UUID) (*models.Order, error) {
	const op = "repository.order.ByTrackingID"

	const query = orderSelect + ` WHERE o.tracking_uuid = $1`

	return r.scanOrder(ctx, op, query, trackingUUID)
}

// StalePendingIDs returns orders still PENDING that were created before
// the cutoff. The payment reaper fails these closed.
func (r *Repository) StalePendingIDs(ctx context.Context, cutoff time.Time, limit int) ([]uuid.UUID, error) {
	const op = "repository.order.StalePendingIDs"

	const query = `
		SELECT uuid FROM orders
		WHERE status = $1 AND created_at < $2
		ORDER BY created_at
		LIMIT $3`

	rows, err := r.db.QueryContext(ctx, query, int(models.OrderStatusPending), cutoff, limit)
	if err != nil {
		r.log.Error(op, logger.Err(err))
		return nil, fmt.Errorf("%s: execute statement: %w", op, err)
	}
	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err = rows.Scan(&id); err != nil {
			r.log.Error(op, logger.Err(err))
			return nil, fmt.Errorf("%s: scan error: %w", op, err)
		}
		ids = append(ids, id)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("%s: rows error: %w", op, rows.Err())
	}

	return ids, nil
}

const orderSelect = `
	SELECT o.uuid, o.tracking_uuid, o.customer_uuid, o.restaurant_uuid,
	       o.street, o.postal_code, o.city,
	       o.price, o.status, o.failure_messages, o.created_at, o.version
	FROM orders o`

func (r *Repository) scanOrder(ctx context.Context, op, query string, arg any) (*models.Order, error) {
	row := r.db.QueryRowContext(ctx, query, arg)

	var (
		order           models.Order
		price           string
		status          int
		failureMessages pq.StringArray
	)

	if err := row.Scan(
		&order.ID, &order.TrackingID, &order.CustomerID, &order.RestaurantID,
		&order.DeliveryAddress.Street, &order.DeliveryAddress.PostalCode, &order.DeliveryAddress.City,
		&price, &status, &failureMessages, &order.CreatedAt, &order.Version,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, internalErrors.ErrOrderNotFound
		}
		r.log.Error(op, logger.Err(err))
		return nil, fmt.Errorf("%s: scan order: %w", op, err)
	}

	priceMoney, err := models.NewMoneyFromString(price)
	if err != nil {
		return nil, fmt.Errorf("%s: parse price: %w", op, err)
	}

	order.Price = priceMoney
	order.Status = models.OrderStatus(status)
	order.FailureMessages = failureMessages

	items, err := r.orderItems(ctx, op, order.ID)
	if err != nil {
		return nil, err
	}
	order.Items = items

	return &order, nil
}

func (r *Repository) orderItems(ctx context.Context, op string, orderUUID uuid.UUID) ([]models.OrderItem, error) {
	const query = `
		SELECT product_uuid, quantity, price, sub_total
		FROM order_items
		WHERE order_uuid = $1`

	rows, err := r.db.QueryContext(ctx, query, orderUUID)
	if err != nil {
		r.log.Error(op, logger.Err(err))
		return nil, fmt.Errorf("%s: execute statement: %w", op, err)
	}
	defer rows.Close()

	var items []models.OrderItem
	for rows.Next() {
		var (
			item     models.OrderItem
			price    string
			subTotal string
		)
		if err = rows.Scan(&item.ProductID, &item.Quantity, &price, &subTotal); err != nil {
			r.log.Error(op, logger.Err(err))
			return nil, fmt.Errorf("%s: scan order item: %w", op, err)
		}

		if item.Price, err = models.NewMoneyFromString(price); err != nil {
			return nil, fmt.Errorf("%s: parse item price: %w", op, err)
		}
		if item.SubTotal, err = models.NewMoneyFromString(subTotal); err != nil {
			return nil, fmt.Errorf("%s: parse item sub_total: %w", op, err)
		}

		items = append(items, item)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("%s: rows error: %w", op, rows.Err())
	}

	return items, nil
}
