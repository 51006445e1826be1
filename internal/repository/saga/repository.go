package saga

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

type ledgerRepository interface {
	RecordIfNewTx(ctx context.Context, tx *sqlx.Tx, sagaID uuid.UUID, sagaName string, status models.SagaStatus) (bool, error)
}

type outBoxRepository interface {
	InsertTx(ctx context.Context, tx *sqlx.Tx, messages ...models.OutBoxMessage) error
}

// Step is one saga transition: the ledger entry that makes it
// idempotent, the order state it produces, and the messages it
// schedules. CommitStep persists all of it atomically — both or
// neither.
type Step struct {
	SagaID   uuid.UUID
	SagaName string
	Status   models.SagaStatus

	// Order, when set, is written back with an optimistic version
	// check.
	Order *models.Order

	Messages []models.OutBoxMessage
}

type Repository struct {
	log logger.Logger
	db  *sqlx.DB

	ledger ledgerRepository
	outBox outBoxRepository
}

func New(log logger.Logger, db *sqlx.DB, ledger ledgerRepository, outBox outBoxRepository) *Repository {
	return &Repository{
		log:    log,
		db:     db,
		ledger: ledger,
		outBox: outBox,
	}
}

// CommitStep applies one saga transition. It reports false with a nil
// error when the ledger already holds the (saga id, name, status)
// triple — the caller received a duplicate and must not act on it.
func (r *Repository) CommitStep(ctx context.Context, step Step) (applied bool, err error) {
	const op = "repository.saga.CommitStep"

	tx, err := r.db.BeginTxx(ctx, &sql.TxOptions{Isolation: sql.LevelReadCommitted})
	if err != nil {
		r.log.Error(op, logger.Err(err))
		return false, fmt.Errorf("%s: begin transaction: %w", op, err)
	}

	defer func() {
		if err != nil || !applied {
			if rollBackErr := tx.Rollback(); rollBackErr != nil && !errors.Is(rollBackErr, sql.ErrTxDone) {
				err = errors.Join(err, fmt.Errorf("%s: rollback transaction: %w", op, rollBackErr))
			}
		}
	}()

	isNew, err := r.ledger.RecordIfNewTx(ctx, tx, step.SagaID, step.SagaName, step.Status)
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	if !isNew {
		return false, nil
	}

	if step.Order != nil {
		if err = r.updateOrder(ctx, tx, step.Order); err != nil {
			return false, fmt.Errorf("%s: %w", op, err)
		}
	}

	if len(step.Messages) > 0 {
		if err = r.outBox.InsertTx(ctx, tx, step.Messages...); err != nil {
			return false, fmt.Errorf("%s: %w", op, err)
		}
	}

	if err = tx.Commit(); err != nil {
		r.log.Error(op, logger.Err(err))
		return false, fmt.Errorf("%s: commit transaction: %w", op, err)
	}

	if step.Order != nil {
		step.Order.Version++
	}

	return true, nil
}

func (r *Repository) updateOrder(ctx context.Context, tx *sqlx.Tx, order *models.Order) error {
	const query = `
		UPDATE orders
		SET status = $1, failure_messages = $2, version = version + 1
		WHERE uuid = $3 AND version = $4`

	res, err := tx.ExecContext(ctx, query,
		int(order.Status), pq.StringArray(order.FailureMessages), order.ID, order.Version,
	)
	if err != nil {
		r.log.Error("repository.saga.updateOrder", logger.Err(err))
		return fmt.Errorf("update order: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return internalErrors.ErrConcurrentUpdate
	}

	return nil
}
