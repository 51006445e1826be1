package consumer

import (
	"github.com/IBM/sarama"
)

// NewConsumerGroup builds the group the saga response listeners run in.
// Offsets are committed manually by the handler, only after a message
// has produced its durable effect.
func NewConsumerGroup(brokerList []string, groupID string) (sarama.ConsumerGroup, error) {
	cfg := sarama.NewConfig()
	cfg.Consumer.Offsets.Initial = sarama.OffsetOldest
	cfg.Consumer.Return.Errors = true
	cfg.Consumer.Offsets.AutoCommit.Enable = true

	return sarama.NewConsumerGroup(brokerList, groupID, cfg)
}
