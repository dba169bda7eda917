package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/do-an-tot-nghiep-att03-k16/shop-online-sub003/internal/constants"
	"github.com/do-an-tot-nghiep-att03-k16/shop-online-sub003/internal/mocks"
	"github.com/do-an-tot-nghiep-att03-k16/shop-online-sub003/internal/model"
	"github.com/do-an-tot-nghiep-att03-k16/shop-online-sub003/internal/repository"
	"github.com/do-an-tot-nghiep-att03-k16/shop-online-sub003/internal/service"
	"github.com/do-an-tot-nghiep-att03-k16/shop-online-sub003/internal/stream"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func newSessionFixture(ttl time.Duration) (*mocks.OrderRepository, service.StreamSessionService) {
	orderRepo := &mocks.OrderRepository{}
	manager := stream.NewSessionManager(ttl, zap.NewNop())
	svc := service.NewStreamSessionService(manager, orderRepo, zap.NewNop())
	return orderRepo, svc
}

func TestStreamSession_CreateSession(t *testing.T) {
	ctx := context.Background()

	t.Run("mints session for the order owner", func(t *testing.T) {
		orderRepo, svc := newSessionFixture(30 * time.Minute)

		orderRepo.On("GetByCode", "ORD250001").Return(&model.Order{
			ID: 42, Code: "ORD250001", CustomerID: "user-1",
			PaymentStatus: model.PaymentStatusPending,
		}, nil)

		resp, err := svc.CreateSession(ctx, service.CreateStreamSessionCommand{
			UserID:    "user-1",
			OrderCode: "DH ORD250001",
		})

		assert.NoError(t, err)
		assert.NotEmpty(t, resp.SessionKey)
		assert.Equal(t, "ORD250001", resp.OrderCode)
		assert.Equal(t, 1800, resp.ExpiresInSeconds)
	})

	t.Run("rejects a foreign order", func(t *testing.T) {
		orderRepo, svc := newSessionFixture(30 * time.Minute)

		orderRepo.On("GetByCode", "ORD250001").Return(&model.Order{
			ID: 42, Code: "ORD250001", CustomerID: "someone-else",
		}, nil)

		_, err := svc.CreateSession(ctx, service.CreateStreamSessionCommand{
			UserID:    "user-1",
			OrderCode: "ORD250001",
		})

		var serviceErr service.Error
		assert.True(t, errors.As(err, &serviceErr))
		assert.Equal(t, constants.ErrCodeOrderNotOwned, serviceErr.Code)
	})

	t.Run("rejects an unknown order", func(t *testing.T) {
		orderRepo, svc := newSessionFixture(30 * time.Minute)

		orderRepo.On("GetByCode", "ORD250009").Return(nil, repository.ErrOrderNotFound)

		_, err := svc.CreateSession(ctx, service.CreateStreamSessionCommand{
			UserID:    "user-1",
			OrderCode: "ORD250009",
		})

		var serviceErr service.Error
		assert.True(t, errors.As(err, &serviceErr))
		assert.Equal(t, constants.ErrCodeOrderNotFound, serviceErr.Code)
	})
}

func TestStreamSession_ValidateSession(t *testing.T) {
	ctx := context.Background()

	t.Run("maps order mismatch to its error code", func(t *testing.T) {
		orderRepo, svc := newSessionFixture(30 * time.Minute)

		orderRepo.On("GetByCode", "ORD250001").Return(&model.Order{
			ID: 42, Code: "ORD250001", CustomerID: "user-1",
		}, nil)

		created, err := svc.CreateSession(ctx, service.CreateStreamSessionCommand{
			UserID:    "user-1",
			OrderCode: "ORD250001",
		})
		assert.NoError(t, err)

		_, err = svc.ValidateSession(ctx, service.ValidateStreamSessionCommand{
			SessionKey: created.SessionKey,
			OrderCode:  "ORD250002",
		})

		var serviceErr service.Error
		assert.True(t, errors.As(err, &serviceErr))
		assert.Equal(t, constants.ErrCodeSessionOrderMismatch, serviceErr.Code)
	})

	t.Run("maps expiry to its error code", func(t *testing.T) {
		orderRepo, svc := newSessionFixture(-time.Minute)

		orderRepo.On("GetByCode", "ORD250001").Return(&model.Order{
			ID: 42, Code: "ORD250001", CustomerID: "user-1",
		}, nil)

		created, err := svc.CreateSession(ctx, service.CreateStreamSessionCommand{
			UserID:    "user-1",
			OrderCode: "ORD250001",
		})
		assert.NoError(t, err)

		_, err = svc.ValidateSession(ctx, service.ValidateStreamSessionCommand{
			SessionKey: created.SessionKey,
			OrderCode:  "ORD250001",
		})

		var serviceErr service.Error
		assert.True(t, errors.As(err, &serviceErr))
		assert.Equal(t, constants.ErrCodeSessionExpired, serviceErr.Code)
	})

	t.Run("maps unknown key to its error code", func(t *testing.T) {
		_, svc := newSessionFixture(30 * time.Minute)

		_, err := svc.ValidateSession(ctx, service.ValidateStreamSessionCommand{
			SessionKey: "no-such-key",
			OrderCode:  "ORD250001",
		})

		var serviceErr service.Error
		assert.True(t, errors.As(err, &serviceErr))
		assert.Equal(t, constants.ErrCodeSessionNotFound, serviceErr.Code)
	})
}

func TestStreamSession_GetOrderPayment(t *testing.T) {
	ctx := context.Background()

	t.Run("returns details for a paid order", func(t *testing.T) {
		orderRepo, svc := newSessionFixture(30 * time.Minute)

		txID := int64(555)
		amount := 250000.0
		orderRepo.On("GetByCode", "ORD250001").Return(&model.Order{
			ID: 42, Code: "ORD250001", CustomerID: "user-1",
			PaymentStatus: model.PaymentStatusPaid,
			Payment: model.PaymentDetails{
				TransactionID: &txID,
				Amount:        &amount,
			},
		}, nil)

		resp, err := svc.GetOrderPayment(ctx, service.GetOrderPaymentQuery{
			UserID:    "user-1",
			OrderCode: "ORD250001",
		})

		assert.NoError(t, err)
		assert.Equal(t, "paid", resp.PaymentStatus)
		assert.NotNil(t, resp.Details)
		assert.Equal(t, int64(555), *resp.Details.TransactionID)
	})

	t.Run("hides details while pending", func(t *testing.T) {
		orderRepo, svc := newSessionFixture(30 * time.Minute)

		orderRepo.On("GetByCode", "ORD250001").Return(&model.Order{
			ID: 42, Code: "ORD250001", CustomerID: "user-1",
			PaymentStatus: model.PaymentStatusPending,
		}, nil)

		resp, err := svc.GetOrderPayment(ctx, service.GetOrderPaymentQuery{
			UserID:    "user-1",
			OrderCode: "ORD250001",
		})

		assert.NoError(t, err)
		assert.Equal(t, "pending", resp.PaymentStatus)
		assert.Nil(t, resp.Details)
	})
}
