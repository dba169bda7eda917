package repository

import (
	"context"
	"errors"

	"github.com/do-an-tot-nghiep-att03-k16/shop-online-sub003/internal/model"
	"github.com/go-sql-driver/mysql"
	"gorm.io/gorm"
)

var ErrTransactionExisted = errors.New("TRANSACTION_EXISTED")
var ErrTransactionNotFound = errors.New("TRANSACTION_NOT_FOUND")

type TransactionRepository interface {
	Create(ctx context.Context, tx *model.Transaction) error
	Update(ctx context.Context, tx *model.Transaction) error
	GetByGatewayRefID(gatewayRefID int64) (*model.Transaction, error)
}

type transaction struct {
	db *gorm.DB
}

func NewTransactionRepository(db *gorm.DB) TransactionRepository {
	return &transaction{db: db}
}

func (t *transaction) Create(ctx context.Context, tx *model.Transaction) error {
	db := GetTx(ctx, t.db)
	err := db.Create(tx).Error
	if err == nil {
		return nil
	}

	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) && mysqlErr.Number == 1062 {
		return ErrTransactionExisted
	}

	return err
}

func (t *transaction) Update(ctx context.Context, tx *model.Transaction) error {
	db := GetTx(ctx, t.db)
	return db.Model(tx).Where("id = ?", tx.ID).Updates(tx).Error
}

func (t *transaction) GetByGatewayRefID(gatewayRefID int64) (*model.Transaction, error) {
	var tx model.Transaction

	err := t.db.Where("gateway_ref_id = ?", gatewayRefID).First(&tx).Error
	if err == nil {
		return &tx, nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrTransactionNotFound
	}

	return nil, err
}
