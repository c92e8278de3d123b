package postgres

import (
	"github.com/frahmantamala/order-management/internal/core/datamodel/gateway"
	paymentpkg "github.com/frahmantamala/order-management/internal/payment"
	"gorm.io/gorm"
)

type GatewayConfigRepository struct {
	db *gorm.DB
}

func NewGatewayConfigRepository(db *gorm.DB) paymentpkg.GatewayConfigAPI {
	return &GatewayConfigRepository{
		db: db,
	}
}

func (r *GatewayConfigRepository) GetByID(id int64) (*gateway.Config, error) {
	var cfg gateway.Config
	err := r.db.First(&cfg, id).Error
	if err != nil {
		return nil, err
	}
	return &cfg, nil
}
