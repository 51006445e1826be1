package httpapp

import (
	"context"
	"fmt"
	"net/http"

	orderhttp "github.com/forkful/food_ordering_system/order_service/internal/delivery/http"
	"github.com/forkful/food_ordering_system/order_service/pkg/logger"
)

type App struct {
	log        logger.Logger
	httpServer *http.Server
	port       int
}

func NewApp(
	log logger.Logger,
	creator orderhttp.OrderCreator,
	tracker orderhttp.OrderTracker,
	port int,
) *App {
	handler := orderhttp.NewHandler(log, creator, tracker)

	httpServer := &http.Server{
		Addr:    fmt.Sprintf(":%d", port),
		Handler: handler.InitRoutes(),
	}

	return &App{
		log:        log,
		httpServer: httpServer,
		port:       port,
	}
}

func (a *App) Run() error {
	const op = "httpapp.Run"

	a.log.Info(op, logger.Int("port", a.port))

	if err := a.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}

	return nil
}

func (a *App) Shutdown(ctx context.Context) error {
	const op = "httpapp.Shutdown"

	a.log.Info(op)

	return a.httpServer.Shutdown(ctx)
}
