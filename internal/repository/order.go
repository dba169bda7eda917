package repository

import (
	"context"
	"errors"

	"github.com/do-an-tot-nghiep-att03-k16/shop-online-sub003/internal/model"
	"gorm.io/gorm"
)

var ErrOrderNotFound = errors.New("ORDER_NOT_FOUND")
var ErrNoRowsAffected = errors.New("NO_ROWS_AFFECTED")

type OrderRepository interface {
	GetByCode(code string) (*model.Order, error)
	MarkPaid(ctx context.Context, code string, details model.PaymentDetails) error
}

type order struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &order{db: db}
}

func (o *order) GetByCode(code string) (*model.Order, error) {
	var ord model.Order

	err := o.db.Where("code = ?", model.NormalizeOrderCode(code)).First(&ord).Error
	if err == nil {
		return &ord, nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrOrderNotFound
	}

	return nil, err
}

// MarkPaid flips payment_status to paid for a pending order. The status
// predicate makes the transition first-writer-wins: a concurrent or
// replayed confirmation sees zero rows affected.
func (o *order) MarkPaid(ctx context.Context, code string, details model.PaymentDetails) error {
	db := GetTx(ctx, o.db)

	result := db.Model(&model.Order{}).
		Where("code = ? AND payment_status = ?", model.NormalizeOrderCode(code), model.PaymentStatusPending).
		Updates(map[string]interface{}{
			"payment_status":         model.PaymentStatusPaid,
			"payment_transaction_id": details.TransactionID,
			"payment_bank_tx_code":   details.BankTxCode,
			"payment_amount":         details.Amount,
			"payment_gateway":        details.Gateway,
			"payment_reference_code": details.ReferenceCode,
			"payment_paid_at":        details.PaidAt,
			"payment_confirmed_by":   details.ConfirmedBy,
		})

	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return ErrNoRowsAffected
	}

	return nil
}
