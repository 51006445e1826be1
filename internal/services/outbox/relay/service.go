package relay

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/IBM/sarama"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/forkful/food_ordering_system/order_service/internal/config"
	"github.com/forkful/food_ordering_system/order_service/internal/domain/models"
	"github.com/forkful/food_ordering_system/order_service/pkg/logger"
)

const messageSendLimit = 100

// Service drains unsent outbox rows to Kafka. Rows are marked sent
// inside the transaction before producing: if the database dies
// mid-batch the transaction aborts and nothing was published; if the
// produce fails the transaction aborts and the rows are picked up again.
// Downstream consumers tolerate the resulting at-least-once delivery
// through their own ledgers.
type Service struct {
	log logger.Logger

	db          *sqlx.DB
	producer    sarama.SyncProducer
	kafkaConfig config.KafkaConfig
}

func New(
	log logger.Logger,
	db *sqlx.DB,
	producer sarama.SyncProducer,
	kafkaConfig config.KafkaConfig,
) *Service {
	return &Service{
		log:         log,
		db:          db,
		producer:    producer,
		kafkaConfig: kafkaConfig,
	}
}

// Run drains the outbox on every tick until the context is cancelled.
func (s *Service) Run(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if err := s.ProduceMessages(ctx); err != nil {
				s.log.Error("outbox relay", logger.Err(err))
			}
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

func (s *Service) ProduceMessages(ctx context.Context) (err error) {
	const op = "services.outbox.relay.ProduceMessages"

	tx, err := s.db.BeginTxx(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable})
	if err != nil {
		return fmt.Errorf("%s: begin transaction: %w", op, err)
	}

	defer func() {
		if err != nil {
			if rollBackErr := tx.Rollback(); rollBackErr != nil && !errors.Is(rollBackErr, sql.ErrTxDone) {
				err = errors.Join(err, fmt.Errorf("%s: rollback transaction: %w", op, rollBackErr))
			}
		}
	}()

	const selectQuery = `
		SELECT id, event_type, payload
		FROM outbox
		WHERE sent = FALSE
		ORDER BY id
		LIMIT $1`

	rows, err := tx.QueryContext(ctx, selectQuery, messageSendLimit)
	if err != nil {
		return fmt.Errorf("%s: query outbox: %w", op, err)
	}
	defer rows.Close()

	var (
		ids            []int64
		saramaMessages []*sarama.ProducerMessage
	)

	for rows.Next() {
		var msg models.OutBoxMessage
		if err = rows.Scan(&msg.ID, &msg.EventType, &msg.Payload); err != nil {
			return fmt.Errorf("%s: scan outbox: %w", op, err)
		}

		topic, ok := s.topicFor(msg.EventType)
		if !ok {
			s.log.Error(op, logger.String("unroutable event type", string(msg.EventType)))
			ids = append(ids, msg.ID)
			continue
		}

		saramaMessages = append(saramaMessages, &sarama.ProducerMessage{
			Topic: topic,
			Value: sarama.ByteEncoder(msg.Payload),
			Headers: []sarama.RecordHeader{
				{Key: []byte("event_type"), Value: []byte(msg.EventType)},
			},
		})

		ids = append(ids, msg.ID)
	}
	if rows.Err() != nil {
		return fmt.Errorf("%s: rows error: %w", op, rows.Err())
	}

	if len(ids) == 0 {
		return tx.Commit()
	}

	const updateQuery = `UPDATE outbox SET sent = TRUE WHERE id = ANY($1)`

	if _, err = tx.ExecContext(ctx, updateQuery, pq.Array(ids)); err != nil {
		return fmt.Errorf("%s: update outbox: %w", op, err)
	}

	if len(saramaMessages) > 0 {
		if err = s.producer.SendMessages(saramaMessages); err != nil {
			return fmt.Errorf("%s: send messages: %w", op, err)
		}
	}

	return tx.Commit()
}

func (s *Service) topicFor(eventType models.EventType) (string, bool) {
	switch eventType {
	case models.EventOrderCreated, models.EventOrderPaid, models.EventOrderCancelling:
		return s.kafkaConfig.OrderEventTopic, true
	case models.EventPaymentRequest:
		return s.kafkaConfig.PaymentRequestTopic, true
	case models.EventApprovalRequest:
		return s.kafkaConfig.ApprovalRequestTopic, true
	case models.EventRefundRequest:
		return s.kafkaConfig.RefundRequestTopic, true
	default:
		return "", false
	}
}
