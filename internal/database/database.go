package database

import (
	"github.com/do-an-tot-nghiep-att03-k16/shop-online-sub003/internal/config"
	"github.com/do-an-tot-nghiep-att03-k16/shop-online-sub003/pkg/mysql"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func NewConnection(cfg *config.Config, logger *zap.Logger) (*gorm.DB, error) {
	return mysql.NewConnection(cfg.Database, logger)
}
