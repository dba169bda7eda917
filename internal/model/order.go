package model

import (
	"strings"
	"time"
)

type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusPaid      PaymentStatus = "paid"
	PaymentStatusFailed    PaymentStatus = "failed"
	PaymentStatusCancelled PaymentStatus = "cancelled"
)

// Order carries the payment subset of the order entity. Catalog fields,
// items and shipping are owned by the storefront service.
type Order struct {
	ID            int64          `gorm:"primaryKey;autoIncrement;column:id;<-:create"`
	Code          string         `gorm:"column:code;type:varchar(50);uniqueIndex:idx_order_code"`
	CustomerID    string         `gorm:"column:customer_id;type:varchar(50);index"`
	Total         float64        `gorm:"column:total"`
	PaymentStatus PaymentStatus  `gorm:"column:payment_status;type:varchar(20);default:'pending'"`
	Payment       PaymentDetails `gorm:"embedded;embeddedPrefix:payment_"`
	CreatedAt     time.Time      `gorm:"column:created_at"`
	UpdatedAt     time.Time      `gorm:"column:updated_at"`
}

// PaymentDetails is populated once, when the reconciler confirms payment.
type PaymentDetails struct {
	TransactionID *int64     `gorm:"column:transaction_id"`
	BankTxCode    *string    `gorm:"column:bank_tx_code;type:varchar(100)"`
	Amount        *float64   `gorm:"column:amount"`
	Gateway       *string    `gorm:"column:gateway;type:varchar(50)"`
	ReferenceCode *string    `gorm:"column:reference_code;type:varchar(100)"`
	PaidAt        *time.Time `gorm:"column:paid_at"`
	ConfirmedBy   *string    `gorm:"column:confirmed_by;type:varchar(50)"`
}

// Transfer memos historically prefix order codes with "DH" (đơn hàng).
const orderCodePrefix = "DH"

// NormalizeOrderCode maps any cosmetic variant of an order code to the
// canonical form stored in the orders table.
func NormalizeOrderCode(code string) string {
	code = strings.ToUpper(strings.TrimSpace(code))
	if strings.HasPrefix(code, orderCodePrefix) {
		code = strings.TrimPrefix(code, orderCodePrefix)
		code = strings.TrimSpace(code)
	}
	return code
}
