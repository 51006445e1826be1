package app

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/golang-lru/v2/expirable"
	"golang.org/x/sync/errgroup"

	httpapp "github.com/forkful/food_ordering_system/order_service/internal/app/http"
	"github.com/forkful/food_ordering_system/order_service/internal/config"
	kafkaDelivery "github.com/forkful/food_ordering_system/order_service/internal/delivery/kafka"
	"github.com/forkful/food_ordering_system/order_service/internal/domain/models"
	customerRepository "github.com/forkful/food_ordering_system/order_service/internal/repository/customer"
	ledgerRepository "github.com/forkful/food_ordering_system/order_service/internal/repository/ledger"
	orderRepository "github.com/forkful/food_ordering_system/order_service/internal/repository/order"
	outboxRepository "github.com/forkful/food_ordering_system/order_service/internal/repository/outbox"
	restaurantRepository "github.com/forkful/food_ordering_system/order_service/internal/repository/restaurant"
	sagaRepository "github.com/forkful/food_ordering_system/order_service/internal/repository/saga"
	createService "github.com/forkful/food_ordering_system/order_service/internal/services/order/create"
	trackService "github.com/forkful/food_ordering_system/order_service/internal/services/order/track"
	relayService "github.com/forkful/food_ordering_system/order_service/internal/services/outbox/relay"
	approvalSaga "github.com/forkful/food_ordering_system/order_service/internal/services/saga/approval"
	paymentSaga "github.com/forkful/food_ordering_system/order_service/internal/services/saga/payment"
	kafkaConsumer "github.com/forkful/food_ordering_system/order_service/pkg/brokers/kafka/consumer"
	kafkaProducer "github.com/forkful/food_ordering_system/order_service/pkg/brokers/kafka/producer"
	"github.com/forkful/food_ordering_system/order_service/pkg/databases/postgres"
	"github.com/forkful/food_ordering_system/order_service/pkg/logger"
)

const orderCacheSize = 256
const orderCacheTTL = 10 * time.Minute

// App wires every collaborator explicitly: repositories into services,
// services into delivery, delivery into run loops. There is no ambient
// registry.
type App struct {
	log logger.Logger
	cfg *config.Config

	db         *postgres.PgDB
	httpApp    *httpapp.App
	payment    *paymentSaga.Service
	relay      *relayService.Service
	consumer   *kafkaDelivery.Handler
	closeFuncs []func() error
}

func NewApp(ctx context.Context, log logger.Logger, cfg *config.Config) (*App, error) {
	db, err := postgres.NewPostgresDB(ctx, log, PostgresDSN(&cfg.Postgres))
	if err != nil {
		return nil, fmt.Errorf("connect to postgres: %w", err)
	}

	outBoxRepo := outboxRepository.New(log, db.GetDB())
	ledgerRepo := ledgerRepository.New(log, db.GetDB())
	orderRepo := orderRepository.NewOrderRepository(log, db.GetDB(), outBoxRepo)
	customerRepo := customerRepository.New(log, db.GetDB())
	restaurantRepo := restaurantRepository.New(log, db.GetDB())
	sagaRepo := sagaRepository.New(log, db.GetDB(), ledgerRepo, outBoxRepo)

	orderCache := expirable.NewLRU[uuid.UUID, *models.Order](orderCacheSize, nil, orderCacheTTL)

	creation := createService.New(log, orderRepo, customerRepo, restaurantRepo, orderCache)
	tracking := trackService.New(log, orderRepo, orderCache)

	payment := paymentSaga.New(log, orderRepo, sagaRepo, cfg.Saga.PaymentTimeout)
	approval := approvalSaga.New(log, orderRepo, sagaRepo)

	producer, err := kafkaProducer.NewSyncProducer(cfg.Kafka.BrokerList)
	if err != nil {
		return nil, fmt.Errorf("create kafka producer: %w", err)
	}

	relay := relayService.New(log, db.GetDB(), producer, cfg.Kafka)

	consumer := kafkaDelivery.NewHandler(log, payment, approval, cfg.Kafka)

	app := &App{
		log:      log,
		cfg:      cfg,
		db:       db,
		httpApp:  httpapp.NewApp(log, creation, tracking, cfg.HTTP.Port),
		payment:  payment,
		relay:    relay,
		consumer: consumer,
		closeFuncs: []func() error{
			producer.Close,
			db.Close,
		},
	}

	return app, nil
}

// Run starts the HTTP server, the saga response consumer, the outbox
// relay and the payment timeout reaper, and blocks until the context is
// cancelled or one of them fails.
func (a *App) Run(ctx context.Context) error {
	group, ctx := errgroup.WithContext(ctx)

	group.Go(func() error {
		return a.httpApp.Run()
	})

	group.Go(func() error {
		consumerGroup, err := kafkaConsumer.NewConsumerGroup(a.cfg.Kafka.BrokerList, a.cfg.Kafka.ConsumerGroup)
		if err != nil {
			return fmt.Errorf("create consumer group: %w", err)
		}
		defer consumerGroup.Close()

		return a.consumer.Run(ctx, consumerGroup)
	})

	group.Go(func() error {
		return a.relay.Run(ctx, a.cfg.Saga.RelayInterval)
	})

	group.Go(func() error {
		return a.runReaper(ctx)
	})

	group.Go(func() error {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		return a.httpApp.Shutdown(shutdownCtx)
	})

	return group.Wait()
}

func (a *App) runReaper(ctx context.Context) error {
	ticker := time.NewTicker(a.cfg.Saga.ReaperInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if err := a.payment.ExpireStale(ctx); err != nil {
				a.log.Error("payment reaper", logger.Err(err))
			}
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

func (a *App) Stop() error {
	for _, closeFn := range a.closeFuncs {
		if err := closeFn(); err != nil {
			return err
		}
	}

	a.log.Info("application stopped")

	return nil
}

func PostgresDSN(psqlCfg *config.PostgresConfig) string {
	return fmt.Sprintf("host=%s port=%s user=%s dbname=%s password=%s sslmode=%s",
		psqlCfg.Host, psqlCfg.Port, psqlCfg.User, psqlCfg.DbName, psqlCfg.Pwd, psqlCfg.SslMode)
}
