package order

import (
	"time"

	"github.com/shopspring/decimal"
)

// Workflow states. The checkout workflow owns the transitions between them;
// nothing writes State directly once checkout has engaged the workflow.
const (
	StatePending   = "pending"
	StateCompleted = "completed"
	StateCanceled  = "canceled"
)

// Named workflow transitions.
const (
	TransitionPlace  = "place"
	TransitionCancel = "cancel"
)

type Order struct {
	ID          int64     `gorm:"primaryKey"`
	State       string    `gorm:"column:state;default:pending"`
	AmountTotal int64     `gorm:"column:amount_total;not null"`
	Currency    string    `gorm:"column:currency;default:TRY"`
	GatewayID   *int64    `gorm:"column:gateway_id"`
	Locked      bool      `gorm:"column:locked;default:false"`
	CreatedAt   time.Time `gorm:"column:created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at"`
}

// TotalDecimal returns the order total in major units, the representation the
// gateway transmits in total_amount.
func (o *Order) TotalDecimal() decimal.Decimal {
	return decimal.New(o.AmountTotal, -2)
}
