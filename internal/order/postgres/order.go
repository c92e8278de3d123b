package postgres

import (
	"errors"
	"time"

	"github.com/frahmantamala/order-management/internal/core/datamodel/order"
	orderpkg "github.com/frahmantamala/order-management/internal/order"
	"gorm.io/gorm"
)

type OrderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) orderpkg.RepositoryAPI {
	return &OrderRepository{
		db: db,
	}
}

func (r *OrderRepository) GetByID(id int64) (*order.Order, error) {
	var o order.Order
	err := r.db.First(&o, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, orderpkg.ErrOrderNotFound
		}
		return nil, err
	}
	return &o, nil
}

func (r *OrderRepository) Save(o *order.Order) error {
	return r.db.Save(o).Error
}

func (r *OrderRepository) UpdateState(id int64, state string) error {
	return r.db.Model(&order.Order{}).Where("id = ?", id).Updates(map[string]interface{}{
		"state":      state,
		"updated_at": time.Now().UTC(),
	}).Error
}

func (r *OrderRepository) SetLocked(id int64, locked bool) error {
	return r.db.Model(&order.Order{}).Where("id = ?", id).Updates(map[string]interface{}{
		"locked":     locked,
		"updated_at": time.Now().UTC(),
	}).Error
}
