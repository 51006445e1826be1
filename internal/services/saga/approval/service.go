package approval

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/forkful/food_ordering_system/order_service/internal/domain/models"
	internalErrors "github.com/forkful/food_ordering_system/order_service/internal/lib/errors"
	"github.com/forkful/food_ordering_system/order_service/internal/repository/saga"
	"github.com/forkful/food_ordering_system/order_service/pkg/logger"
)

type orderGetter interface {
	ByID(ctx context.Context, orderUUID uuid.UUID) (*models.Order, error)
}

type stepCommitter interface {
	CommitStep(ctx context.Context, step saga.Step) (bool, error)
}

// Service drives the restaurant approval leg, the only leg that can
// require compensation: by the time a rejection arrives the customer
// has already been charged, so the money must travel back before the
// order may claim CANCELLED.
type Service struct {
	log logger.Logger

	orders orderGetter
	steps  stepCommitter
}

func New(log logger.Logger, orders orderGetter, steps stepCommitter) *Service {
	return &Service{
		log:    log,
		orders: orders,
		steps:  steps,
	}
}

// Start reacts to an OrderPaidEvent by scheduling the approval request.
func (s *Service) Start(ctx context.Context, event models.OrderPaidEvent) error {
	const op = "services.saga.approval.Start"

	order, err := s.findOrder(ctx, op, event.OrderID, event.SagaID)
	if err != nil {
		return err
	}

	items := make([]models.ApprovalRequestItem, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, models.ApprovalRequestItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
		})
	}

	requestMsg, err := models.NewOutBoxMessage(models.EventApprovalRequest, models.RestaurantApprovalRequest{
		SagaID:       order.SagaID(),
		OrderID:      order.ID,
		RestaurantID: order.RestaurantID,
		Items:        items,
	})
	if err != nil {
		return fmt.Errorf("%s: marshal approval request: %w", op, err)
	}

	applied, err := s.steps.CommitStep(ctx, saga.Step{
		SagaID:   order.SagaID(),
		SagaName: models.ApprovalSagaName,
		Status:   models.SagaStatusStarted,
		Messages: []models.OutBoxMessage{requestMsg},
	})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if !applied {
		s.log.InfoContext(ctx, op,
			logger.String("order_uuid", order.ID.String()),
			logger.String("skipped", "duplicate order paid event"),
		)
		return nil
	}

	s.log.InfoContext(ctx, op, logger.String("order_uuid", order.ID.String()))

	return nil
}

// HandleResponse applies the restaurant's verdict. APPROVED is the
// terminal success; REJECTED moves the order to CANCELLING and emits the
// refund request that must complete before the final cancel.
func (s *Service) HandleResponse(ctx context.Context, response models.RestaurantApprovalResponse) error {
	const op = "services.saga.approval.HandleResponse"

	order, err := s.findOrder(ctx, op, response.OrderID, response.SagaID)
	if err != nil {
		return err
	}

	switch response.Status {
	case models.ApprovalApproved:
		return s.handleApproved(ctx, order)
	case models.ApprovalRejected:
		return s.handleRejected(ctx, order, response.FailureMessages)
	default:
		s.log.WarnContext(ctx, op,
			logger.String("order_uuid", order.ID.String()),
			logger.String("status", string(response.Status)),
		)
		return nil
	}
}

func (s *Service) handleApproved(ctx context.Context, order *models.Order) error {
	const op = "services.saga.approval.handleApproved"

	if err := order.Approve(); err != nil {
		s.log.ErrorContext(ctx, op,
			logger.String("order_uuid", order.ID.String()),
			logger.String("status", order.Status.String()),
			logger.Err(err),
		)
		return nil
	}

	applied, err := s.steps.CommitStep(ctx, saga.Step{
		SagaID:   order.SagaID(),
		SagaName: models.ApprovalSagaName,
		Status:   models.SagaStatusSucceeded,
		Order:    order,
	})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if !applied {
		s.log.InfoContext(ctx, op,
			logger.String("order_uuid", order.ID.String()),
			logger.String("skipped", "duplicate approval response"),
		)
		return nil
	}

	s.log.InfoContext(ctx, op,
		logger.String("order_uuid", order.ID.String()),
		logger.String("status", order.Status.String()),
	)

	return nil
}

func (s *Service) handleRejected(ctx context.Context, order *models.Order, failureMessages []string) error {
	const op = "services.saga.approval.handleRejected"

	if err := order.InitCancel(failureMessages...); err != nil {
		s.log.ErrorContext(ctx, op,
			logger.String("order_uuid", order.ID.String()),
			logger.String("status", order.Status.String()),
			logger.Err(err),
		)
		return nil
	}

	cancellingMsg, err := models.NewOutBoxMessage(models.EventOrderCancelling, models.OrderCancellingEvent{
		OrderID: order.ID,
		Reason:  firstMessage(failureMessages),
	})
	if err != nil {
		return fmt.Errorf("%s: marshal event: %w", op, err)
	}

	refundMsg, err := models.NewOutBoxMessage(models.EventRefundRequest, models.RefundRequest{
		SagaID:  order.SagaID(),
		OrderID: order.ID,
		Amount:  order.Price,
	})
	if err != nil {
		return fmt.Errorf("%s: marshal refund request: %w", op, err)
	}

	applied, err := s.steps.CommitStep(ctx, saga.Step{
		SagaID:   order.SagaID(),
		SagaName: models.ApprovalSagaName,
		Status:   models.SagaStatusFailed,
		Order:    order,
		Messages: []models.OutBoxMessage{cancellingMsg, refundMsg},
	})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if !applied {
		s.log.InfoContext(ctx, op,
			logger.String("order_uuid", order.ID.String()),
			logger.String("skipped", "duplicate rejection response"),
		)
		return nil
	}

	s.log.InfoContext(ctx, op,
		logger.String("order_uuid", order.ID.String()),
		logger.String("status", order.Status.String()),
	)

	return nil
}

// HandleRefundResponse finishes the compensation. Only a COMPLETED
// refund is allowed to move the order out of CANCELLING; a failed
// refund keeps the order there for manual intervention — the order must
// never claim a refund happened when it did not.
func (s *Service) HandleRefundResponse(ctx context.Context, response models.RefundResponse) error {
	const op = "services.saga.approval.HandleRefundResponse"

	order, err := s.findOrder(ctx, op, response.OrderID, response.SagaID)
	if err != nil {
		return err
	}

	if response.Status != models.RefundCompleted {
		s.log.ErrorContext(ctx, op,
			logger.String("order_uuid", order.ID.String()),
			logger.String("refund_status", string(response.Status)),
			logger.String("action", "order stays CANCELLING until the refund completes"),
		)
		return nil
	}

	if err = order.Cancel(); err != nil {
		s.log.ErrorContext(ctx, op,
			logger.String("order_uuid", order.ID.String()),
			logger.String("status", order.Status.String()),
			logger.Err(err),
		)
		return nil
	}

	applied, err := s.steps.CommitStep(ctx, saga.Step{
		SagaID:   order.SagaID(),
		SagaName: models.ApprovalSagaName,
		Status:   models.SagaStatusCompensated,
		Order:    order,
	})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if !applied {
		s.log.InfoContext(ctx, op,
			logger.String("order_uuid", order.ID.String()),
			logger.String("skipped", "duplicate refund response"),
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
