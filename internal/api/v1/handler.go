package v1

import (
	"bufio"
	"fmt"
	"time"

	"github.com/do-an-tot-nghiep-att03-k16/shop-online-sub003/internal/api/validator"
	"github.com/do-an-tot-nghiep-att03-k16/shop-online-sub003/internal/config"
	"github.com/do-an-tot-nghiep-att03-k16/shop-online-sub003/internal/constants"
	"github.com/do-an-tot-nghiep-att03-k16/shop-online-sub003/internal/metrics"
	"github.com/do-an-tot-nghiep-att03-k16/shop-online-sub003/internal/service"
	"github.com/do-an-tot-nghiep-att03-k16/shop-online-sub003/internal/stream"
	"github.com/gofiber/fiber/v2"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"
)

// HeaderUserID is set by the upstream auth layer after it authenticates
// the storefront session.
const HeaderUserID = "X-User-ID"

type Handler struct {
	logger    *zap.Logger
	webhook   service.WebhookService
	sessions  service.StreamSessionService
	registry  *stream.Registry
	table     *stream.SessionManager
	validator *validator.XValidator
	metrics   *metrics.Metrics
	heartbeat time.Duration
}

func NewHandler(logger *zap.Logger, webhook service.WebhookService, sessions service.StreamSessionService,
	registry *stream.Registry, table *stream.SessionManager, xv *validator.XValidator,
	m *metrics.Metrics, cfg *config.Config) *Handler {
	return &Handler{
		logger:    logger,
		webhook:   webhook,
		sessions:  sessions,
		registry:  registry,
		table:     table,
		validator: xv,
		metrics:   m,
		heartbeat: cfg.Stream.HeartbeatInterval(),
	}
}

func (h *Handler) Pong(c *fiber.Ctx) error {
	return c.SendString("pong")
}

// BankWebhook ingests one gateway notification. Whatever the reconciler
// decides, the transport answer is a 200: the gateway only needs to know
// the delivery arrived.
func (h *Handler) BankWebhook(c *fiber.Ctx) error {
	ctx := c.UserContext()

	var request BankWebhookRequest
	if err := c.BodyParser(&request); err != nil {
		h.logger.Warn("Failed to parse webhook body",
			zap.Error(err),
			zap.String("body", string(c.Body())))
		return c.JSON(BankWebhookResponse{Success: true, Processed: false,
			Reason: constants.ErrMsgInvalidRequestBody})
	}

	if errs := h.validator.Validate(request); len(errs) > 0 {
		h.logger.Warn("Webhook payload failed validation",
			zap.String("field", errs[0].FailedField),
			zap.String("tag", errs[0].Tag))
		return c.JSON(BankWebhookResponse{Success: true, Processed: false,
			Reason: fmt.Sprintf("invalid field %s", errs[0].FailedField)})
	}

	cmd := service.ProcessNotificationCommand{
		GatewayRefID:    request.ID,
		Gateway:         request.Gateway,
		TransactionDate: request.TransactionDate,
		AccountNumber:   request.AccountNumber,
		TransferType:    request.TransferType,
		Amount:          request.TransferAmount,
		Accumulated:     request.Accumulated,
		Code:            request.Code,
		Content:         request.TransferContent(),
		ReferenceCode:   request.ReferenceCode,
	}

	result, err := h.webhook.ProcessNotification(ctx, cmd)
	if err != nil {
		// Absorbed: the failure is on the ledger row and in the logs, the
		// gateway still gets its acknowledgement.
		h.logger.Error("Reconciliation failed",
			zap.Int64("gatewayRefID", request.ID),
			zap.Error(err))
		h.metrics.RecordWebhook("error")
		return c.JSON(BankWebhookResponse{Success: true, Processed: false,
			Reason: "internal error"})
	}

	h.metrics.RecordWebhook(result.Outcome)
	if result.Processed {
		h.metrics.RecordPaymentConfirmed()
	}

	resp := BankWebhookResponse{Success: true, Processed: result.Processed}
	if !result.Processed {
		resp.Reason = result.Outcome
	}

	return c.JSON(resp)
}

func (h *Handler) CreateStreamSession(c *fiber.Ctx) error {
	ctx := c.UserContext()

	userID := c.Get(HeaderUserID)
	if userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"code":    constants.ErrCodeInvalidAPIKey,
			"message": "missing user identity",
		})
	}

	var request CreateStreamSessionRequest
	if err := c.BodyParser(&request); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"code":    constants.ErrCodeInvalidRequestBody,
			"message": constants.GetErrorMessage(constants.ErrCodeInvalidRequestBody),
		})
	}

	if errs := h.validator.Validate(request); len(errs) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"code":    constants.ErrCodeInvalidRequestBody,
			"message": fmt.Sprintf("invalid field %s", errs[0].FailedField),
		})
	}

	resp, err := h.sessions.CreateSession(ctx, service.CreateStreamSessionCommand{
		UserID:    userID,
		OrderCode: request.OrderCode,
	})
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(resp)
}

// StreamOrderEvents validates the session, then holds the connection open
// as a one-directional event stream: a `connected` event immediately,
// `payment_update` events as they happen, and comment heartbeats in
// between so intermediaries do not reap the idle connection.
func (h *Handler) StreamOrderEvents(c *fiber.Ctx) error {
	ctx := c.UserContext()

	session, err := h.sessions.ValidateSession(ctx, service.ValidateStreamSessionCommand{
		SessionKey: c.Query("session"),
		OrderCode:  c.Params("orderCode"),
	})
	if err != nil {
		return err
	}

	c.Set(fiber.HeaderContentType, "text/event-stream")
	c.Set(fiber.HeaderCacheControl, "no-cache")
	c.Set(fiber.HeaderConnection, "keep-alive")
	c.Set("X-Accel-Buffering", "no")

	ch := h.registry.Register(session.OrderCode)
	h.metrics.StreamOpened()

	h.logger.Info("Stream opened",
		zap.String("orderCode", session.OrderCode),
		zap.String("userID", session.UserID))

	orderCode := session.OrderCode
	heartbeat := h.heartbeat

	c.Context().SetBodyStreamWriter(fasthttp.StreamWriter(func(w *bufio.Writer) {
		defer func() {
			h.registry.Unregister(orderCode, ch)
			h.metrics.StreamClosed()
			h.logger.Info("Stream closed", zap.String("orderCode", orderCode))
		}()

		connected := stream.Event{
			Event:     stream.EventConnected,
			OrderCode: orderCode,
			Status:    "listening",
		}
		if err := writeSSE(w, stream.EventConnected, connected.Marshal()); err != nil {
			return
		}

		ticker := time.NewTicker(heartbeat)
		defer ticker.Stop()

		for {
			select {
			case payload, ok := <-ch:
				if !ok {
					return
				}
				if err := writeSSE(w, stream.EventPaymentUpdate, payload); err != nil {
					return
				}
			case <-ticker.C:
				if err := writeHeartbeat(w); err != nil {
					return
				}
			}
		}
	}))

	return nil
}

func (h *Handler) GetOrderPayment(c *fiber.Ctx) error {
	ctx := c.UserContext()

	userID := c.Get(HeaderUserID)
	if userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"code":    constants.ErrCodeInvalidAPIKey,
			"message": "missing user identity",
		})
	}

	resp, err := h.sessions.GetOrderPayment(ctx, service.GetOrderPaymentQuery{
		UserID:    userID,
		OrderCode: c.Params("orderCode"),
	})
	if err != nil {
		return err
	}

	return c.JSON(resp)
}

// DebugStreams reports registry and session-table sizes. No payloads, no
// customer data.
func (h *Handler) DebugStreams(c *fiber.Ctx) error {
	connections := h.registry.Snapshot()

	return c.JSON(DebugStreamsResponse{
		Orders:         len(connections),
		Connections:    connections,
		ActiveSessions: h.table.Count(),
	})
}

func writeSSE(w *bufio.Writer, event string, payload []byte) error {
	if _, err := fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event, payload); err != nil {
		return err
	}
	return w.Flush()
}

func writeHeartbeat(w *bufio.Writer) error {
	if _, err := fmt.Fprint(w, ": ping\n\n"); err != nil {
		return err
	}
	return w.Flush()
}
