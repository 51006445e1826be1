package ledger

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/forkful/food_ordering_system/order_service/internal/domain/models"
	"github.com/forkful/food_ordering_system/order_service/pkg/logger"
)

// Repository is the idempotency ledger. A (saga id, saga name, status)
// triple inserts once; every later attempt is reported as a duplicate.
// The guarantee comes from the table's unique constraint, so it holds
// across concurrent consumer workers.
type Repository struct {
	log logger.Logger
	db  *sqlx.DB
}

func New(log logger.Logger, db *sqlx.DB) *Repository {
	return &Repository{log: log, db: db}
}

const insertQuery = `
	INSERT INTO processed_events (saga_uuid, saga_name, status)
	VALUES ($1, $2, $3)
	ON CONFLICT (saga_uuid, saga_name, status) DO NOTHING`

// RecordIfNew reports true when this transition has not been applied
// before. A false return means the caller must acknowledge the message
// without any business effect.
func (r *Repository) RecordIfNew(
	ctx context.Context,
	sagaID uuid.UUID,
	sagaName string,
	status models.SagaStatus,
) (bool, error) {
	const op = "repository.ledger.RecordIfNew"

	res, err := r.db.ExecContext(ctx, insertQuery, sagaID, sagaName, string(status))
	if err != nil {
		r.log.Error(op, logger.Err(err))
		return false, fmt.Errorf("%s: insert ledger entry: %w", op, err)
	}

	return recordedNew(res)
}

// RecordIfNewTx is RecordIfNew inside the caller's transaction. Saga
// steps use it so the ledger entry and the order update are one atomic
// write.
func (r *Repository) RecordIfNewTx(
	ctx context.Context,
	tx *sqlx.Tx,
	sagaID uuid.UUID,
	sagaName string,
	status models.SagaStatus,
) (bool, error) {
	const op = "repository.ledger.RecordIfNewTx"

	res, err := tx.ExecContext(ctx, insertQuery, sagaID, sagaName, string(status))
	if err != nil {
		r.log.Error(op, logger.Err(err))
		return false, fmt.Errorf("%s: insert ledger entry: %w", op, err)
	}

	return recordedNew(res)
}

func recordedNew(res interface{ RowsAffected() (int64, error) }) (bool, error) {
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}

	return affected == 1, nil
}
