package payment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/forkful/food_ordering_system/order_service/internal/domain/models"
	internalErrors "github.com/forkful/food_ordering_system/order_service/internal/lib/errors"
	"github.com/forkful/food_ordering_system/order_service/internal/repository/saga"
	"github.com/forkful/food_ordering_system/order_service/pkg/logger"
)

type orderGetter interface {
	ByID(ctx context.Context, orderUUID uuid.UUID) (*models.Order, error)
	StalePendingIDs(ctx context.Context, cutoff time.Time, limit int) ([]uuid.UUID, error)
}

type stepCommitter interface {
	CommitStep(ctx context.Context, step saga.Step) (bool, error)
}

const reaperBatchSize = 100

// Service drives the payment leg: request payment when an order is
// created, advance to PAID on success, cancel on failure or timeout.
// Every transition is gated by the idempotency ledger, so redelivered
// messages produce no second effect.
type Service struct {
	log logger.Logger

	orders orderGetter
	steps  stepCommitter

	paymentTimeout time.Duration
	nowFunc        func() time.Time
}

func New(
	log logger.Logger,
	orders orderGetter,
	steps stepCommitter,
	paymentTimeout time.Duration,
) *Service {
	return &Service{
		log:            log,
		orders:         orders,
		steps:          steps,
		paymentTimeout: paymentTimeout,
		nowFunc:        time.Now,
	}
}

// Start reacts to an OrderCreatedEvent by scheduling the payment
// request. A redelivered event hits the STARTED ledger entry and is
// acknowledged without a second request.
func (s *Service) Start(ctx context.Context, event models.OrderCreatedEvent) error {
	const op = "services.saga.payment.Start"

	order, err := s.orders.ByID(ctx, event.OrderID)
	if err != nil {
		if errors.Is(err, internalErrors.ErrOrderNotFound) {
			return fmt.Errorf("%s: %w", op, internalErrors.ErrUnknownSaga)
		}
		return fmt.Errorf("%s: %w", op, err)
	}

	requestMsg, err := models.NewOutBoxMessage(models.EventPaymentRequest, models.PaymentRequest{
		SagaID:     order.SagaID(),
		OrderID:    order.ID,
		CustomerID: order.CustomerID,
		Amount:     order.Price,
	})
	if err != nil {
		return fmt.Errorf("%s: marshal payment request: %w", op, err)
	}

	applied, err := s.steps.CommitStep(ctx, saga.Step{
		SagaID:   order.SagaID(),
		SagaName: models.PaymentSagaName,
		Status:   models.SagaStatusStarted,
		Messages: []models.OutBoxMessage{requestMsg},
	})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if !applied {
		s.log.InfoContext(ctx, op,
			logger.String("order_uuid", order.ID.String()),
			logger.String("skipped", "duplicate order created event"),
		)
		return nil
	}

	s.log.InfoContext(ctx, op, logger.String("order_uuid", order.ID.String()))

	return nil
}

// HandleResponse applies the payment outcome. COMPLETED moves the order
// to PAID and hands over to the approval leg; FAILED cancels the order
// outright since no money was taken.
func (s *Service) HandleResponse(ctx context.Context, response models.PaymentResponse) error {
	const op = "services.saga.payment.HandleResponse"

	order, err := s.findOrder(ctx, op, response.OrderID, response.SagaID)
	if err != nil {
		return err
	}

	switch response.Status {
	case models.PaymentCompleted:
		return s.handleCompleted(ctx, order)
	case models.PaymentFailed:
		return s.handleFailed(ctx, order, response.FailureMessages)
	default:
		s.log.WarnContext(ctx, op,
			logger.String("order_uuid", order.ID.String()),
			logger.String("status", string(response.Status)),
		)
		return nil
	}
}

func (s *Service) handleCompleted(ctx context.Context, order *models.Order) error {
	const op = "services.saga.payment.handleCompleted"

	if err := order.Pay(); err != nil {
		// The transition is refused only when the order already moved
		// on, which means the incoming message is a duplicate or
		// out-of-order replay. Acknowledge it; retrying would loop on
		// the same message forever.
		s.log.ErrorContext(ctx, op,
			logger.String("order_uuid", order.ID.String()),
			logger.String("status", order.Status.String()),
			logger.Err(err),
		)
		return nil
	}

	paidMsg, err := models.NewOutBoxMessage(models.EventOrderPaid, models.OrderPaidEvent{
		OrderID: order.ID,
		SagaID:  order.SagaID(),
	})
	if err != nil {
		return fmt.Errorf("%s: marshal event: %w", op, err)
	}

	applied, err := s.steps.CommitStep(ctx, saga.Step{
		SagaID:   order.SagaID(),
		SagaName: models.PaymentSagaName,
		Status:   models.SagaStatusSucceeded,
		Order:    order,
		Messages: []models.OutBoxMessage{paidMsg},
	})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if !applied {
		s.log.InfoContext(ctx, op,
			logger.String("order_uuid", order.ID.String()),
			logger.String("skipped", "duplicate payment response"),
		)
		return nil
	}

	s.log.InfoContext(ctx, op,
		logger.String("order_uuid", order.ID.String()),
		logger.String("status", order.Status.String()),
	)

	return nil
}

func (s *Service) handleFailed(ctx context.Context, order *models.Order, failureMessages []string) error {
	const op = "services.saga.payment.handleFailed"

	return s.cancelUnpaid(ctx, op, order, failureMessages)
}

// ExpireStale fails closed every order still PENDING past the payment
// window. A payment response arriving after expiry finds the FAILED
// ledger entry taken and the order version moved, so it cannot resurrect
// the order.
func (s *Service) ExpireStale(ctx context.Context) error {
	const op = "services.saga.payment.ExpireStale"

	cutoff := s.nowFunc().Add(-s.paymentTimeout)

	ids, err := s.orders.StalePendingIDs(ctx, cutoff, reaperBatchSize)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	for _, id := range ids {
		order, err := s.orders.ByID(ctx, id)
		if err != nil {
			s.log.ErrorContext(ctx, op, logger.String("order_uuid", id.String()), logger.Err(err))
			continue
		}

		if order.Status != models.OrderStatusPending {
			continue
		}

		if err = s.cancelUnpaid(ctx, op, order, []string{"payment response timed out"}); err != nil {
			if errors.Is(err, internalErrors.ErrConcurrentUpdate) {
				// A payment response won the race; leave the order to it.
				continue
			}
			s.log.ErrorContext(ctx, op, logger.String("order_uuid", id.String()), logger.Err(err))
		}
	}

	return nil
}

// cancelUnpaid takes an order that never completed payment straight to
// CANCELLED. No compensation is needed on this leg.
func (s *Service) cancelUnpaid(ctx context.Context, op string, order *models.Order, failureMessages []string) error {
	if err := order.InitCancel(failureMessages...); err != nil {
		s.log.ErrorContext(ctx, op,
			logger.String("order_uuid", order.ID.String()),
			logger.String("status", order.Status.String()),
			logger.Err(err),
		)
		return nil
	}

	if err := order.Cancel(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	cancellingMsg, err := models.NewOutBoxMessage(models.EventOrderCancelling, models.OrderCancellingEvent{
		OrderID: order.ID,
		Reason:  firstMessage(failureMessages),
	})
	if err != nil {
		return fmt.Errorf("%s: marshal event: %w", op, err)
	}

	applied, err := s.steps.CommitStep(ctx, saga.Step{
		SagaID:   order.SagaID(),
		SagaName: models.PaymentSagaName,
		Status:   models.SagaStatusFailed,
		Order:    order,
		Messages: []models.OutBoxMessage{cancellingMsg},
	})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if !applied {
		s.log.InfoContext(ctx, op,
			logger.String("order_uuid", order.ID.String()),
			logger.String("skipped", "payment failure already recorded"),
		)
		return nil
	}

	s.log.InfoContext(ctx, op,
		logger.String("order_uuid", order.ID.String()),
		logger.String("status", order.Status.String()),
	)

	return nil
}

func (s *Service) findOrder(ctx context.Context, op string, orderUUID, sagaUUID uuid.UUID) (*models.Order, error) {
	order, err := s.orders.ByID(ctx, orderUUID)
	if err != nil {
		if errors.Is(err, internalErrors.ErrOrderNotFound) {
			return nil, fmt.Errorf("%s: %w", op, internalErrors.ErrUnknownSaga)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if order.SagaID() != sagaUUID {
		return nil, fmt.Errorf("%s: %w", op, internalErrors.ErrUnknownSaga)
	}

	return order, nil
}

func firstMessage(messages []string) string {
	if len(messages) == 0 {
		return ""
	}
	return messages[0]
}
