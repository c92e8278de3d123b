package postgres

import (
	"errors"
	"time"

	"github.com/frahmantamala/order-management/internal/core/datamodel/payment"
	paymentpkg "github.com/frahmantamala/order-management/internal/payment"
	"gorm.io/gorm"
)

type PaymentRepository struct {
	db *gorm.DB
}

func NewPaymentRepository(db *gorm.DB) paymentpkg.RepositoryAPI {
	return &PaymentRepository{
		db: db,
	}
}

// Create relies on the unique order_id index to reject a second payment for
// the same order; callers resolve the conflict by re-reading.
func (r *PaymentRepository) Create(p *payment.Payment) error {
	return r.db.Create(p).Error
}

func (r *PaymentRepository) GetByOrderID(orderID int64) (*payment.Payment, error) {
	var p payment.Payment
	err := r.db.Where("order_id = ?", orderID).First(&p).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, paymentpkg.ErrPaymentNotFound
		}
		return nil, err
	}
	return &p, nil
}

// UpdateState writes the new state. Writes to any state other than completed
// are guarded so they can never downgrade a payment a racing reconciliation
// already completed; the completed write itself is the last word.
func (r *PaymentRepository) UpdateState(id int64, state string) error {
	now := time.Now().UTC()
	tx := r.db.Model(&payment.Payment{}).Where("id = ?", id)
	if state != payment.StateCompleted {
		tx = tx.Where("state <> ?", payment.StateCompleted)
	}
	return tx.Updates(map[string]interface{}{
		"state":        state,
		"processed_at": now,
		"updated_at":   now,
	}).Error
}

func (r *PaymentRepository) SetRemote(id int64, remoteID, remoteState string) error {
	return r.db.Model(&payment.Payment{}).Where("id = ?", id).Updates(map[string]interface{}{
		"remote_id":    remoteID,
		"remote_state": remoteState,
		"updated_at":   time.Now().UTC(),
	}).Error
}
