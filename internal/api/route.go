package api

import (
	v1 "github.com/do-an-tot-nghiep-att03-k16/shop-online-sub003/internal/api/v1"
	"github.com/do-an-tot-nghiep-att03-k16/shop-online-sub003/internal/api/v1/middleware"
	"github.com/do-an-tot-nghiep-att03-k16/shop-online-sub003/internal/config"
	"github.com/do-an-tot-nghiep-att03-k16/shop-online-sub003/internal/metrics"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

const prefixV1 = "/api/v1"

func SetupRoutes(app *fiber.App, handler *v1.Handler, cfg *config.Config, m *metrics.Metrics, logger *zap.Logger) {
	app.Use(metrics.HTTPMetricsMiddleware(m))

	app.Get("/ping", handler.Pong)
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	app.Post(prefixV1+"/webhook/bank",
		middleware.APIKeyAuth(cfg.Webhook.APIKey, logger), handler.BankWebhook)

	app.Post(prefixV1+"/stream/session", handler.CreateStreamSession)
	app.Get(prefixV1+"/stream/orders/:orderCode", handler.StreamOrderEvents)
	app.Get(prefixV1+"/orders/:orderCode/payment", handler.GetOrderPayment)
	app.Get(prefixV1+"/debug/streams", handler.DebugStreams)
}
