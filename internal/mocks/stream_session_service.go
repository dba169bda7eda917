package mocks

import (
	"context"

	"github.com/do-an-tot-nghiep-att03-k16/shop-online-sub003/internal/service"
	"github.com/do-an-tot-nghiep-att03-k16/shop-online-sub003/internal/stream"
	"github.com/stretchr/testify/mock"
)

type StreamSessionService struct {
	mock.Mock
}

func (m *StreamSessionService) CreateSession(ctx context.Context, cmd service.CreateStreamSessionCommand) (service.CreateStreamSessionResponse, error) {
	args := m.Called(ctx, cmd)
	return args.Get(0).(service.CreateStreamSessionResponse), args.Error(1)
}

func (m *StreamSessionService) ValidateSession(ctx context.Context, cmd service.ValidateStreamSessionCommand) (stream.Session, error) {
	args := m.Called(ctx, cmd)
	return args.Get(0).(stream.Session), args.Error(1)
}

func (m *StreamSessionService) GetOrderPayment(ctx context.Context, query service.GetOrderPaymentQuery) (service.OrderPaymentResponse, error) {
	args := m.Called(ctx, query)
	return args.Get(0).(service.OrderPaymentResponse), args.Error(1)
}
