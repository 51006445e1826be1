package producer

import (
	"github.com/IBM/sarama"
)

// NewSyncProducer builds the producer used by the outbox relay. Requests
// wait for all in-sync replicas so a drained outbox row is never lost to
// a broker failover.
func NewSyncProducer(brokerList []string) (sarama.SyncProducer, error) {
	cfg := sarama.NewConfig()
	cfg.Producer.RequiredAcks = sarama.WaitForAll
	cfg.Producer.Return.Successes = true
	cfg.Producer.Return.Errors = true

	return sarama.NewSyncProducer(brokerList, cfg)
}
