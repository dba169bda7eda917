package mocks

import (
	"context"

	"github.com/do-an-tot-nghiep-att03-k16/shop-online-sub003/internal/service"
	"github.com/stretchr/testify/mock"
)

type WebhookService struct {
	mock.Mock
}

func (m *WebhookService) ProcessNotification(ctx context.Context, cmd service.ProcessNotificationCommand) (service.ProcessNotificationResult, error) {
	args := m.Called(ctx, cmd)
	return args.Get(0).(service.ProcessNotificationResult), args.Error(1)
}
