package service

import (
	"context"
	"errors"

	"github.com/do-an-tot-nghiep-att03-k16/shop-online-sub003/internal/constants"
	"github.com/do-an-tot-nghiep-att03-k16/shop-online-sub003/internal/model"
	"github.com/do-an-tot-nghiep-att03-k16/shop-online-sub003/internal/repository"
	"github.com/do-an-tot-nghiep-att03-k16/shop-online-sub003/internal/stream"
	"go.uber.org/zap"
)

type StreamSessionService interface {
	CreateSession(ctx context.Context, cmd CreateStreamSessionCommand) (CreateStreamSessionResponse, error)
	ValidateSession(ctx context.Context, cmd ValidateStreamSessionCommand) (stream.Session, error)
	GetOrderPayment(ctx context.Context, query GetOrderPaymentQuery) (OrderPaymentResponse, error)
}

type streamSession struct {
	sessions  *stream.SessionManager
	orderRepo repository.OrderRepository
	logger    *zap.Logger
}

func NewStreamSessionService(sessions *stream.SessionManager, orderRepo repository.OrderRepository,
	logger *zap.Logger) StreamSessionService {
	return &streamSession{sessions: sessions, orderRepo: orderRepo, logger: logger}
}

// CreateSession mints a stream session after checking the caller owns the
// order. Upstream auth already established who the caller is; ownership of
// the order is this service's responsibility.
func (s *streamSession) CreateSession(ctx context.Context, cmd CreateStreamSessionCommand) (CreateStreamSessionResponse, error) {
	order, err := s.orderRepo.GetByCode(cmd.OrderCode)
	if err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			return CreateStreamSessionResponse{}, NewServiceError(constants.ErrCodeOrderNotFound, err)
		}

		s.logger.Error("Failed to look up order for stream session",
			zap.String("orderCode", cmd.OrderCode), zap.Error(err))
		return CreateStreamSessionResponse{}, NewServiceError(ErrCodeDatabase, err)
	}

	if order.CustomerID != cmd.UserID {
		s.logger.Warn("Stream session denied for foreign order",
			zap.String("orderCode", order.Code),
			zap.String("userID", cmd.UserID))
		return CreateStreamSessionResponse{}, NewServiceError(constants.ErrCodeOrderNotOwned,
			errors.New("order owned by another user"))
	}

	session := s.sessions.Create(cmd.UserID, order.Code)

	return CreateStreamSessionResponse{
		SessionKey:       session.Key,
		OrderCode:        session.OrderCode,
		ExpiresInSeconds: int(s.sessions.TTL().Seconds()),
	}, nil
}

// ValidateSession rejects a subscriber before any stream transport work
// begins.
func (s *streamSession) ValidateSession(ctx context.Context, cmd ValidateStreamSessionCommand) (stream.Session, error) {
	session, err := s.sessions.Validate(cmd.SessionKey, cmd.OrderCode)
	if err == nil {
		return session, nil
	}

	switch {
	case errors.Is(err, stream.ErrSessionExpired):
		return stream.Session{}, NewServiceError(constants.ErrCodeSessionExpired, err)
	case errors.Is(err, stream.ErrSessionOrderMismatch):
		return stream.Session{}, NewServiceError(constants.ErrCodeSessionOrderMismatch, err)
	default:
		return stream.Session{}, NewServiceError(constants.ErrCodeSessionNotFound, err)
	}
}

// GetOrderPayment is the authoritative read behind the fetch-fresh
// protocol: clients re-query this after any trigger event.
func (s *streamSession) GetOrderPayment(ctx context.Context, query GetOrderPaymentQuery) (OrderPaymentResponse, error) {
	order, err := s.orderRepo.GetByCode(query.OrderCode)
	if err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			return OrderPaymentResponse{}, NewServiceError(constants.ErrCodeOrderNotFound, err)
		}

		s.logger.Error("Failed to read order payment state",
			zap.String("orderCode", query.OrderCode), zap.Error(err))
		return OrderPaymentResponse{}, NewServiceError(ErrCodeDatabase, err)
	}

	if order.CustomerID != query.UserID {
		return OrderPaymentResponse{}, NewServiceError(constants.ErrCodeOrderNotOwned,
			errors.New("order owned by another user"))
	}

	resp := OrderPaymentResponse{
		OrderCode:     order.Code,
		PaymentStatus: string(order.PaymentStatus),
	}

	if order.PaymentStatus == model.PaymentStatusPaid {
		resp.Details = &PaymentDetails{
			TransactionID: order.Payment.TransactionID,
			BankTxCode:    order.Payment.BankTxCode,
			Amount:        order.Payment.Amount,
			Gateway:       order.Payment.Gateway,
			ReferenceCode: order.Payment.ReferenceCode,
			PaidAt:        order.Payment.PaidAt,
			ConfirmedBy:   order.Payment.ConfirmedBy,
		}
	}

	return resp, nil
}
