package mocks

import (
	"github.com/do-an-tot-nghiep-att03-k16/shop-online-sub003/internal/stream"
	"github.com/stretchr/testify/mock"
)

type Notifier struct {
	mock.Mock
}

func (m *Notifier) Emit(orderCode string, event stream.Event) stream.EmitResult {
	args := m.Called(orderCode, event)
	return args.Get(0).(stream.EmitResult)
}
