package mocks

import (
	"context"

	"github.com/do-an-tot-nghiep-att03-k16/shop-online-sub003/internal/model"
	"github.com/stretchr/testify/mock"
)

type OrderRepository struct {
	mock.Mock
}

func (m *OrderRepository) GetByCode(code string) (*model.Order, error) {
	args := m.Called(code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Order), args.Error(1)
}

func (m *OrderRepository) MarkPaid(ctx context.Context, code string, details model.PaymentDetails) error {
	args := m.Called(ctx, code, details)
	return args.Error(0)
}
