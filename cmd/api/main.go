package main

import (
	"context"
	"time"

	"github.com/do-an-tot-nghiep-att03-k16/shop-online-sub003/internal/api"
	v1 "github.com/do-an-tot-nghiep-att03-k16/shop-online-sub003/internal/api/v1"
	xvalidator "github.com/do-an-tot-nghiep-att03-k16/shop-online-sub003/internal/api/validator"
	"github.com/do-an-tot-nghiep-att03-k16/shop-online-sub003/internal/config"
	"github.com/do-an-tot-nghiep-att03-k16/shop-online-sub003/internal/database"
	apperrors "github.com/do-an-tot-nghiep-att03-k16/shop-online-sub003/internal/errors"
	"github.com/do-an-tot-nghiep-att03-k16/shop-online-sub003/internal/metrics"
	"github.com/do-an-tot-nghiep-att03-k16/shop-online-sub003/internal/repository"
	"github.com/do-an-tot-nghiep-att03-k16/shop-online-sub003/internal/service"
	"github.com/do-an-tot-nghiep-att03-k16/shop-online-sub003/internal/stream"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

func main() {
	fx.New(
		fx.Provide(
			config.Load,
			zap.NewProduction,
			database.NewConnection,
			newFiberApp,
			newSessionManager,
			stream.NewRegistry,
			repository.NewTransactionRepository,
			repository.NewOrderRepository,
			repository.NewTransactionManager,
			metrics.NewMetrics,
			metrics.NewInstrumentedNotifier,
			metrics.NewSystemCollector,
			newNotifier,
			newValidator,
			service.NewWebhookService,
			service.NewStreamSessionService,
			v1.NewHandler,
		),
		fx.Invoke(startServer),
	).Run()
}

func newFiberApp() *fiber.App {
	return fiber.New(fiber.Config{
		ErrorHandler: apperrors.ErrorHandler(),
	})
}

func newSessionManager(cfg *config.Config, logger *zap.Logger) *stream.SessionManager {
	return stream.NewSessionManager(cfg.Session.TTL(), logger)
}

func newNotifier(n *metrics.InstrumentedNotifier) service.Notifier {
	return n
}

func newValidator() *xvalidator.XValidator {
	return xvalidator.NewXValidator(validator.New())
}

func startServer(app *fiber.App, handler *v1.Handler, cfg *config.Config, m *metrics.Metrics,
	sessions *stream.SessionManager, collector *metrics.SystemCollector, logger *zap.Logger, lc fx.Lifecycle) {
	api.SetupRoutes(app, handler, cfg, m, logger)

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			sessions.Start(cfg.Session.SweepInterval())
			collector.Start(15 * time.Second)
			go app.Listen(cfg.API.Port)
			return nil
		},
		OnStop: func(ctx context.Context) error {
			sessions.Stop()
			collector.Stop()
			return app.ShutdownWithContext(ctx)
		},
	})
}
