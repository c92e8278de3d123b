package payment

import (
	"time"
)

// Payment states. StateAuthorization is the pending state a payment is
// created in; StateCompleted is terminal and never regressed from.
const (
	StateAuthorization = "authorization"
	StateCompleted     = "completed"
	StateCanceled      = "canceled"
)

// RemoteStatePending is the initial informational gateway status recorded on
// lazily created payments before any notification has been verified.
const RemoteStatePending = "pending"

type Payment struct {
	ID          int64      `gorm:"primaryKey"`
	OrderID     int64      `gorm:"column:order_id;not null;uniqueIndex"`
	State       string     `gorm:"column:state;default:authorization"`
	AmountTotal int64      `gorm:"column:amount_total;not null"`
	Currency    string     `gorm:"column:currency;default:TRY"`
	GatewayID   *int64     `gorm:"column:gateway_id"`
	RemoteID    *string    `gorm:"column:remote_id"`
	RemoteState string     `gorm:"column:remote_state;default:pending"`
	ProcessedAt *time.Time `gorm:"column:processed_at"`
	CreatedAt   time.Time  `gorm:"column:created_at"`
	UpdatedAt   time.Time  `gorm:"column:updated_at"`
}
