package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/IBM/sarama"

	"github.com/forkful/food_ordering_system/order_service/internal/config"
	"github.com/forkful/food_ordering_system/order_service/internal/domain/models"
	internalErrors "github.com/forkful/food_ordering_system/order_service/internal/lib/errors"
	"github.com/forkful/food_ordering_system/order_service/pkg/logger"
)

type paymentSaga interface {
	Start(ctx context.Context, event models.OrderCreatedEvent) error
	HandleResponse(ctx context.Context, response models.PaymentResponse) error
}

type approvalSaga interface {
	Start(ctx context.Context, event models.OrderPaidEvent) error
	HandleResponse(ctx context.Context, response models.RestaurantApprovalResponse) error
	HandleRefundResponse(ctx context.Context, response models.RefundResponse) error
}

// Handler consumes order events and saga responses and routes each
// message to its coordinator. Offsets are marked only after the
// coordinator returned: a nil return means the message either took its
// effect or was recognized as a duplicate/unknown saga, both of which
// are final.
type Handler struct {
	log logger.Logger

	payment  paymentSaga
	approval approvalSaga

	kafkaConfig config.KafkaConfig
}

func NewHandler(
	log logger.Logger,
	payment paymentSaga,
	approval approvalSaga,
	kafkaConfig config.KafkaConfig,
) *Handler {
	return &Handler{
		log:         log,
		payment:     payment,
		approval:    approval,
		kafkaConfig: kafkaConfig,
	}
}

// Topics lists everything the handler subscribes to.
func (h *Handler) Topics() []string {
	return []string{
		h.kafkaConfig.OrderEventTopic,
		h.kafkaConfig.PaymentResponseTopic,
		h.kafkaConfig.ApprovalResponseTopic,
		h.kafkaConfig.RefundResponseTopic,
	}
}

// Run keeps the consumer group session alive until the context is
// cancelled. Consume returns on every rebalance, so it loops.
func (h *Handler) Run(ctx context.Context, group sarama.ConsumerGroup) error {
	for {
		if err := group.Consume(ctx, h.Topics(), h); err != nil {
			if errors.Is(err, sarama.ErrClosedConsumerGroup) {
				return nil
			}
			h.log.Error("consumer group", logger.Err(err))
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
	}
}

func (h *Handler) Setup(sarama.ConsumerGroupSession) error   { return nil }
func (h *Handler) Cleanup(sarama.ConsumerGroupSession) error { return nil }

func (h *Handler) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	for {
		select {
		case msg, ok := <-claim.Messages():
			if !ok {
				return nil
			}

			if err := h.dispatch(session.Context(), msg); err != nil {
				// Transient failure: leave the offset unmarked so the
				// message is redelivered, and force a session restart.
				h.log.Error("dispatch",
					logger.String("topic", msg.Topic),
					logger.Err(err),
				)
				return err
			}

			session.MarkMessage(msg, "")
		case <-session.Context().Done():
			return nil
		}
	}
}

func (h *Handler) dispatch(ctx context.Context, msg *sarama.ConsumerMessage) error {
	const op = "delivery.kafka.dispatch"

	var err error
	switch msg.Topic {
	case h.kafkaConfig.OrderEventTopic:
		err = h.dispatchOrderEvent(ctx, msg)
	case h.kafkaConfig.PaymentResponseTopic:
		var response models.PaymentResponse
		if err = json.Unmarshal(msg.Value, &response); err == nil {
			err = h.payment.HandleResponse(ctx, response)
		}
	case h.kafkaConfig.ApprovalResponseTopic:
		var response models.RestaurantApprovalResponse
		if err = json.Unmarshal(msg.Value, &response); err == nil {
			err = h.approval.HandleResponse(ctx, response)
		}
	case h.kafkaConfig.RefundResponseTopic:
		var response models.RefundResponse
		if err = json.Unmarshal(msg.Value, &response); err == nil {
			err = h.approval.HandleRefundResponse(ctx, response)
		}
	default:
		h.log.Warn(op, logger.String("unexpected topic", msg.Topic))
		return nil
	}

	if err != nil {
		if errors.Is(err, internalErrors.ErrUnknownSaga) {
			// Acknowledge without effect; retrying cannot make the
			// order appear.
			h.log.Warn(op, logger.String("topic", msg.Topic), logger.Err(err))
			return nil
		}

		var syntaxErr *json.SyntaxError
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &syntaxErr) || errors.As(err, &typeErr) {
			h.log.Error(op, logger.String("malformed message on topic", msg.Topic))
			return nil
		}

		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (h *Handler) dispatchOrderEvent(ctx context.Context, msg *sarama.ConsumerMessage) error {
	eventType := headerValue(msg, "event_type")

	switch models.EventType(eventType) {
	case models.EventOrderCreated:
		var event models.OrderCreatedEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			return err
		}
		return h.payment.Start(ctx, event)
	case models.EventOrderPaid:
		var event models.OrderPaidEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			return err
		}
		return h.approval.Start(ctx, event)
	case models.EventOrderCancelling:
		// Informational; nothing subscribes in-process.
		return nil
	default:
		h.log.Warn("delivery.kafka.dispatchOrderEvent",
			logger.String("unexpected event type", eventType),
		)
		return nil
	}
}

func headerValue(msg *sarama.ConsumerMessage, key string) string {
	for _, header := range msg.Headers {
		if header != nil && string(header.Key) == key {
			return string(header.Value)
		}
	}
	return ""
}
