package model

import "time"

const (
	TransferTypeIn  = "in"
	TransferTypeOut = "out"
)

// Transaction is the append-only ledger of every bank gateway notification,
// recorded whether or not reconciliation succeeded. GatewayRefID is the
// gateway's own notification id and carries the unique index that arbitrates
// duplicate deliveries.
type Transaction struct {
	ID              int64      `gorm:"primaryKey;autoIncrement;column:id;<-:create"`
	GatewayRefID    int64      `gorm:"column:gateway_ref_id;uniqueIndex:idx_gateway_ref;<-:create"`
	Gateway         string     `gorm:"column:gateway;type:varchar(50)"`
	TransactionDate string     `gorm:"column:transaction_date;type:varchar(50)"`
	AccountNumber   string     `gorm:"column:account_number;type:varchar(50)"`
	TransferType    string     `gorm:"column:transfer_type;type:varchar(10)"`
	Amount          float64    `gorm:"column:amount"`
	Accumulated     float64    `gorm:"column:accumulated"`
	Code            *string    `gorm:"column:code;type:varchar(100)"`
	Content         string     `gorm:"column:content;type:text"`
	ReferenceCode   *string    `gorm:"column:reference_code;type:varchar(100)"`
	OrderID         *int64     `gorm:"column:order_id"`
	Processed       bool       `gorm:"column:processed;default:false"`
	LastError       *string    `gorm:"column:last_error;type:text"`
	FailedAt        *time.Time `gorm:"column:failed_at"`
	CreatedAt       time.Time  `gorm:"column:created_at"`
	UpdatedAt       time.Time  `gorm:"column:updated_at"`
}
