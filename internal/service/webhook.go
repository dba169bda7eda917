package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/do-an-tot-nghiep-att03-k16/shop-online-sub003/internal/config"
	"github.com/do-an-tot-nghiep-att03-k16/shop-online-sub003/internal/model"
	"github.com/do-an-tot-nghiep-att03-k16/shop-online-sub003/internal/repository"
	"github.com/do-an-tot-nghiep-att03-k16/shop-online-sub003/internal/stream"
	"go.uber.org/zap"
)

const confirmedByGateway = "bank_webhook"

// Notifier pushes a payment trigger to whatever stream subscribers the
// order currently has. Delivery is best-effort: the client's fetch-fresh
// fallback covers a missed push.
type Notifier interface {
	Emit(orderCode string, event stream.Event) stream.EmitResult
}

type WebhookService interface {
	ProcessNotification(ctx context.Context, cmd ProcessNotificationCommand) (ProcessNotificationResult, error)
}

type webhook struct {
	txRepo    repository.TransactionRepository
	orderRepo repository.OrderRepository
	txManager repository.TxManager
	notifier  Notifier
	tolerance float64
	logger    *zap.Logger
}

func NewWebhookService(txRepo repository.TransactionRepository, orderRepo repository.OrderRepository,
	txManager repository.TxManager, notifier Notifier, cfg *config.Config, logger *zap.Logger) WebhookService {
	return &webhook{
		txRepo:    txRepo,
		orderRepo: orderRepo,
		txManager: txManager,
		notifier:  notifier,
		tolerance: cfg.Webhook.AmountTolerance,
		logger:    logger,
	}
}

// ProcessNotification turns one gateway notification into at most one
// payment transition and at most one trigger event, however many times the
// gateway delivers it. Guards run cheapest-and-most-certain first; every
// outcome past the direction and amount filters leaves a ledger row.
func (w *webhook) ProcessNotification(ctx context.Context, cmd ProcessNotificationCommand) (ProcessNotificationResult, error) {
	if _, err := w.txRepo.GetByGatewayRefID(cmd.GatewayRefID); err == nil {
		w.logger.Info("Duplicate gateway notification",
			zap.Int64("gatewayRefID", cmd.GatewayRefID))
		return ProcessNotificationResult{Outcome: OutcomeAlreadyRecorded}, nil
	} else if !errors.Is(err, repository.ErrTransactionNotFound) {
		w.logger.Error("Failed to check notification ledger",
			zap.Int64("gatewayRefID", cmd.GatewayRefID), zap.Error(err))
		return ProcessNotificationResult{}, NewServiceError(ErrCodeDatabase, err)
	}

	if cmd.TransferType != model.TransferTypeIn {
		return ProcessNotificationResult{Outcome: OutcomeWrongDirection}, nil
	}

	if cmd.Amount <= 0 {
		return ProcessNotificationResult{Outcome: OutcomeInvalidAmount}, nil
	}

	tx := w.newTransaction(cmd)

	orderCode, ok := ExtractOrderCode(cmd.Content)
	if !ok {
		w.logger.Warn("No order code in transfer content",
			zap.Int64("gatewayRefID", cmd.GatewayRefID),
			zap.String("content", cmd.Content))
		return w.recordUnresolved(ctx, tx, OutcomeNoBusinessKey)
	}

	order, err := w.orderRepo.GetByCode(orderCode)
	if err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			w.logger.Warn("Transfer references unknown order",
				zap.Int64("gatewayRefID", cmd.GatewayRefID),
				zap.String("orderCode", orderCode))
			return w.recordUnresolved(ctx, tx, OutcomeOrderNotFound)
		}

		w.logger.Error("Failed to look up order",
			zap.String("orderCode", orderCode), zap.Error(err))
		return ProcessNotificationResult{}, NewServiceError(ErrCodeDatabase, err)
	}

	tx.OrderID = &order.ID

	if order.PaymentStatus == model.PaymentStatusPaid {
		w.logger.Info("Order already paid, recording replayed notification",
			zap.Int64("gatewayRefID", cmd.GatewayRefID),
			zap.String("orderCode", order.Code))
		return w.recordLinked(ctx, tx, order.Code, OutcomeAlreadyPaid)
	}

	if math.Abs(cmd.Amount-order.Total) > w.tolerance {
		w.logger.Warn("Transfer amount outside tolerance",
			zap.Int64("gatewayRefID", cmd.GatewayRefID),
			zap.String("orderCode", order.Code),
			zap.Float64("amount", cmd.Amount),
			zap.Float64("expected", order.Total))
		return w.recordLinked(ctx, tx, order.Code, OutcomeAmountMismatch)
	}

	committed, err := w.commit(ctx, tx, order)
	if err != nil {
		return ProcessNotificationResult{}, err
	}
	if !committed {
		return ProcessNotificationResult{
			Outcome:       OutcomeAlreadyRecorded,
			TransactionID: tx.ID,
			OrderCode:     order.Code,
		}, nil
	}

	result := w.notifier.Emit(order.Code, stream.Event{
		Event:     stream.EventPaymentUpdate,
		OrderCode: order.Code,
		Status:    string(model.PaymentStatusPaid),
	})

	w.logger.Info("Payment confirmed",
		zap.Int64("gatewayRefID", cmd.GatewayRefID),
		zap.String("orderCode", order.Code),
		zap.Int64("transactionID", tx.ID),
		zap.Int("subscribersNotified", result.Delivered))

	return ProcessNotificationResult{
		Processed:     true,
		Outcome:       OutcomeConfirmed,
		TransactionID: tx.ID,
		OrderCode:     order.Code,
	}, nil
}

// commit persists the ledger row and flips the order to paid. The trigger
// event is only emitted by the caller after a true return, so a client that
// fetches on the event always observes the paid state. A false return means
// another writer won the transition and no event is owed.
func (w *webhook) commit(ctx context.Context, tx *model.Transaction, order *model.Order) (bool, error) {
	if err := w.txRepo.Create(ctx, tx); err != nil {
		if errors.Is(err, repository.ErrTransactionExisted) {
			// Lost the race against a concurrent delivery of the same
			// notification. The first writer owns the transition.
			return false, nil
		}

		w.logger.Error("Failed to record transaction",
			zap.Int64("gatewayRefID", tx.GatewayRefID), zap.Error(err))
		return false, NewServiceError(ErrCodeDatabase, err)
	}

	now := time.Now()
	confirmedBy := confirmedByGateway
	details := model.PaymentDetails{
		TransactionID: &tx.ID,
		BankTxCode:    tx.Code,
		Amount:        &tx.Amount,
		Gateway:       &tx.Gateway,
		ReferenceCode: tx.ReferenceCode,
		PaidAt:        &now,
		ConfirmedBy:   &confirmedBy,
	}

	err := w.txManager.WithTx(ctx, func(ctx context.Context) error {
		if err := w.orderRepo.MarkPaid(ctx, order.Code, details); err != nil {
			return err
		}

		tx.Processed = true
		return w.txRepo.Update(ctx, tx)
	})
	if err == nil {
		return true, nil
	}

	tx.Processed = false

	if errors.Is(err, repository.ErrNoRowsAffected) {
		// Another writer confirmed the order between our lookup and this
		// update. Leave the ledger row unprocessed for audit.
		w.logger.Info("Order confirmed by another writer",
			zap.String("orderCode", order.Code))
		return false, nil
	}

	w.recordFailure(ctx, tx, err)
	return false, NewServiceError(ErrCodeDatabase, err)
}

func (w *webhook) newTransaction(cmd ProcessNotificationCommand) *model.Transaction {
	return &model.Transaction{
		GatewayRefID:    cmd.GatewayRefID,
		Gateway:         cmd.Gateway,
		TransactionDate: cmd.TransactionDate,
		AccountNumber:   cmd.AccountNumber,
		TransferType:    cmd.TransferType,
		Amount:          cmd.Amount,
		Accumulated:     cmd.Accumulated,
		Code:            cmd.Code,
		Content:         cmd.Content,
		ReferenceCode:   cmd.ReferenceCode,
		Processed:       false,
		CreatedAt:       time.Now(),
		UpdatedAt:       time.Now(),
	}
}

// recordUnresolved persists a ledger row with no order link so the
// notification stays replayable for forensics.
func (w *webhook) recordUnresolved(ctx context.Context, tx *model.Transaction, outcome string) (ProcessNotificationResult, error) {
	return w.record(ctx, tx, "", outcome)
}

func (w *webhook) recordLinked(ctx context.Context, tx *model.Transaction, orderCode, outcome string) (ProcessNotificationResult, error) {
	return w.record(ctx, tx, orderCode, outcome)
}

func (w *webhook) record(ctx context.Context, tx *model.Transaction, orderCode, outcome string) (ProcessNotificationResult, error) {
	if err := w.txRepo.Create(ctx, tx); err != nil {
		if errors.Is(err, repository.ErrTransactionExisted) {
			return ProcessNotificationResult{Outcome: OutcomeAlreadyRecorded}, nil
		}

		w.logger.Error("Failed to record rejected notification",
			zap.Int64("gatewayRefID", tx.GatewayRefID),
			zap.String("outcome", outcome),
			zap.Error(err))
		return ProcessNotificationResult{}, NewServiceError(ErrCodeDatabase, err)
	}

	return ProcessNotificationResult{
		Outcome:       outcome,
		TransactionID: tx.ID,
		OrderCode:     orderCode,
	}, nil
}

// recordFailure writes the error back onto the already-created ledger row.
// Every notification must leave exactly one durable trace.
func (w *webhook) recordFailure(ctx context.Context, tx *model.Transaction, cause error) {
	now := time.Now()
	msg := fmt.Sprintf("%v", cause)
	tx.LastError = &msg
	tx.FailedAt = &now

	if err := w.txRepo.Update(ctx, tx); err != nil {
		w.logger.Error("Failed to record reconciliation failure",
			zap.Int64("transactionID", tx.ID),
			zap.NamedError("cause", cause),
			zap.Error(err))
	}
}
