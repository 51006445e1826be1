package outbox

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/forkful/food_ordering_system/order_service/internal/domain/models"
	"github.com/forkful/food_ordering_system/order_service/pkg/logger"
)

type Repository struct {
	log logger.Logger
	db  *sqlx.DB
}

func New(log logger.Logger, db *sqlx.DB) *Repository {
	return &Repository{log: log, db: db}
}

// InsertTx appends messages to the outbox inside the caller's
// transaction, so the business change and its publication commit or
// roll back together.
func (r *Repository) InsertTx(ctx context.Context, tx *sqlx.Tx, messages ...models.OutBoxMessage) error {
	const op = "repository.outbox.InsertTx"

	const query = `INSERT INTO outbox (event_type, payload) VALUES ($1, $2)`

	for _, msg := range messages {
		if _, err := tx.ExecContext(ctx, query, string(msg.EventType), []byte(msg.Payload)); err != nil {
			r.log.Error(op, logger.Err(err))
			return fmt.Errorf("%s: insert outbox message: %w", op, err)
		}
	}

	return nil
}
