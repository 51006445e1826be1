package main

import (
	"context"
	"fmt"

	"github.com/forkful/food_ordering_system/order_service/internal/app"
	"github.com/forkful/food_ordering_system/order_service/internal/config"
	relayService "github.com/forkful/food_ordering_system/order_service/internal/services/outbox/relay"
	kafkaProducer "github.com/forkful/food_ordering_system/order_service/pkg/brokers/kafka/producer"
	"github.com/forkful/food_ordering_system/order_service/pkg/databases/postgres"
	"github.com/forkful/food_ordering_system/order_service/pkg/logger"
)

// One-shot outbox drain, for operators re-driving publications after an
// incident. The long-running relay lives inside the main service.
func main() {
	cfg := config.InitConfig()

	log := logger.NewSlogLogger(logger.SlogEnvironment(cfg.Env))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	db, err := postgres.NewPostgresDB(ctx, log, app.PostgresDSN(&cfg.Postgres))
	if err != nil {
		panic(fmt.Sprintf("failed to connect to db: %v", err))
	}
	defer db.Close()

	producer, err := kafkaProducer.NewSyncProducer(cfg.Kafka.BrokerList)
	if err != nil {
		panic(fmt.Sprintf("failed to create kafka producer: %v", err))
	}
	defer producer.Close()

	relay := relayService.New(log, db.GetDB(), producer, cfg.Kafka)

	if err = relay.ProduceMessages(ctx); err != nil {
		panic(fmt.Sprintf("produce messages error: %v", err))
	}

	log.Info("messages were successfully sent to their topics")
}
