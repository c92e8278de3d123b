package events

import (
	"time"

	"github.com/google/uuid"
)

const (
	EventTypePaymentCompleted = "payment.completed"
	EventTypePaymentFailed    = "payment.failed"
)

type PaymentCompletedEvent struct {
	BaseEvent
	PaymentID int64  `json:"payment_id"`
	OrderID   int64  `json:"order_id"`
	RemoteID  string `json:"remote_id"`
	Amount    int64  `json:"amount"`
	Currency  string `json:"currency"`
}

func NewPaymentCompletedEvent(paymentID, orderID int64, remoteID string, amount int64, currency string) *PaymentCompletedEvent {
	return &PaymentCompletedEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      EventTypePaymentCompleted,
			Timestamp: time.Now(),
			Data: map[string]interface{}{
				"payment_id": paymentID,
				"order_id":   orderID,
				"remote_id":  remoteID,
				"amount":     amount,
				"currency":   currency,
			},
		},
		PaymentID: paymentID,
		OrderID:   orderID,
		RemoteID:  remoteID,
		Amount:    amount,
		Currency:  currency,
	}
}

type PaymentFailedEvent struct {
	BaseEvent
	PaymentID   int64  `json:"payment_id"`
	OrderID     int64  `json:"order_id"`
	RemoteID    string `json:"remote_id"`
	RemoteState string `json:"remote_state"`
	Amount      int64  `json:"amount"`
}

func NewPaymentFailedEvent(paymentID, orderID int64, remoteID, remoteState string, amount int64) *PaymentFailedEvent {
	return &PaymentFailedEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      EventTypePaymentFailed,
			Timestamp: time.Now(),
			Data: map[string]interface{}{
				"payment_id":   paymentID,
				"order_id":     orderID,
				"remote_id":    remoteID,
				"remote_state": remoteState,
				"amount":       amount,
			},
		},
		PaymentID:   paymentID,
		OrderID:     orderID,
		RemoteID:    remoteID,
		RemoteState: remoteState,
		Amount:      amount,
	}
}
