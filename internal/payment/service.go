package payment

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	internal "github.com/frahmantamala/order-management/internal"
	"github.com/frahmantamala/order-management/internal/core/datamodel/gateway"
	ordermodel "github.com/frahmantamala/order-management/internal/core/datamodel/order"
	paymentmodel "github.com/frahmantamala/order-management/internal/core/datamodel/payment"
	"github.com/frahmantamala/order-management/internal/core/events"
	orderpkg "github.com/frahmantamala/order-management/internal/order"
	"github.com/shopspring/decimal"
)

// ErrPaymentNotFound is the sentinel the repository maps a missing row to.
var ErrPaymentNotFound = errors.New("payment not found")

// RepositoryAPI interface for payment database operations. UpdateState must
// refuse to move a completed payment to any other state; Create must surface
// the unique order_id constraint so a racing creator can fall back to
// re-reading the winner's row.
type RepositoryAPI interface {
	Create(p *paymentmodel.Payment) error
	GetByOrderID(orderID int64) (*paymentmodel.Payment, error)
	UpdateState(id int64, state string) error
	SetRemote(id int64, remoteID, remoteState string) error
}

// GatewayConfigAPI looks up the merchant salt and signing key for a payment.
type GatewayConfigAPI interface {
	GetByID(id int64) (*gateway.Config, error)
}

// OrderAPI is the slice of the order service the callback pipeline consumes.
type OrderAPI interface {
	GetByID(id int64) (*ordermodel.Order, error)
	ApplyTransition(o *ordermodel.Order, name string) error
	IsLocked(o *ordermodel.Order) bool
	Unlock(o *ordermodel.Order) error
}

// ServiceAPI is the surface the webhook handler drives.
type ServiceAPI interface {
	GetOrder(id int64) (*ordermodel.Order, error)
	GatewayConfigFor(o *ordermodel.Order) (*gateway.Config, error)
	LocateOrCreatePayment(o *ordermodel.Order) (*paymentmodel.Payment, error)
	Reconcile(o *ordermodel.Order, p *paymentmodel.Payment, cb *CallbackPayload, cfg *gateway.Config) (*ReconcileResult, error)
}

// ReconcileResult reports what the reconciler decided for one notification.
type ReconcileResult struct {
	SignatureValid bool
	PaymentState   string
	OrderState     string
	Transitioned   bool
	LockReleased   bool
}

type Service struct {
	repo     RepositoryAPI
	gateways GatewayConfigAPI
	orders   OrderAPI
	eventBus *events.EventBus
	logger   *slog.Logger
}

func NewService(repo RepositoryAPI, gateways GatewayConfigAPI, orders OrderAPI, eventBus *events.EventBus, logger *slog.Logger) *Service {
	return &Service{
		repo:     repo,
		gateways: gateways,
		orders:   orders,
		eventBus: eventBus,
		logger:   logger,
	}
}

func (s *Service) GetOrder(id int64) (*ordermodel.Order, error) {
	return s.orders.GetByID(id)
}

// GatewayConfigFor resolves the merchant credentials referenced by the
// order. A missing reference or row is the gateway-not-found protocol error.
func (s *Service) GatewayConfigFor(o *ordermodel.Order) (*gateway.Config, error) {
	if o.GatewayID == nil {
		s.logger.Error("order has no payment gateway reference", "order_id", o.ID)
		return nil, internal.ErrGatewayNotFound
	}

	cfg, err := s.gateways.GetByID(*o.GatewayID)
	if err != nil {
		s.logger.Error("payment gateway config lookup failed",
			"order_id", o.ID,
			"gateway_id", *o.GatewayID,
			"error", err)
		return nil, internal.ErrGatewayNotFound
	}
	return cfg, nil
}

// LocateOrCreatePayment finds the order's payment record or lazily creates a
// pending one. The callback can legitimately arrive before the synchronous
// return flow, so absence of a payment is normal. The create is persisted
// immediately; if a concurrent creator won the unique order_id index, the
// conflict is resolved by re-reading the now-existing row.
func (s *Service) LocateOrCreatePayment(o *ordermodel.Order) (*paymentmodel.Payment, error) {
	existing, err := s.repo.GetByOrderID(o.ID)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, ErrPaymentNotFound) {
		return nil, fmt.Errorf("find payment for order %d: %w", o.ID, err)
	}

	p := &paymentmodel.Payment{
		OrderID:     o.ID,
		State:       paymentmodel.StateAuthorization,
		AmountTotal: o.AmountTotal,
		Currency:    o.Currency,
		GatewayID:   o.GatewayID,
		RemoteState: paymentmodel.RemoteStatePending,
	}

	if err := s.repo.Create(p); err != nil {
		winner, readErr := s.repo.GetByOrderID(o.ID)
		if readErr == nil {
			s.logger.Warn("payment already created by a concurrent caller",
				"order_id", o.ID,
				"payment_id", winner.ID)
			return winner, nil
		}
		return nil, fmt.Errorf("create payment for order %d: %w", o.ID, err)
	}

	s.logger.Info("created pending payment",
		"payment_id", p.ID,
		"order_id", o.ID,
		"amount", p.AmountTotal,
		"currency", p.Currency)
	return p, nil
}

// Reconcile applies the notification outcome to the payment and, on a
// verified success, to the order via the checkout workflow. Replaying the
// same payload is idempotent: completed payments are never downgraded and
// the place transition is skipped once the order already reached completed.
func (s *Service) Reconcile(o *ordermodel.Order, p *paymentmodel.Payment, cb *CallbackPayload, cfg *gateway.Config) (*ReconcileResult, error) {
	result := &ReconcileResult{
		PaymentState: p.State,
		OrderState:   o.State,
	}

	if !VerifySignature(cb, cfg.MerchantSalt, cfg.MerchantKey) {
		computed := ComputeSignature(cb.MerchantOID, cfg.MerchantSalt, cb.Status, cb.TotalAmount, cfg.MerchantKey)
		s.logger.Warn("callback signature mismatch",
			"order_id", o.ID,
			"payment_id", p.ID,
			"merchant_oid", cb.MerchantOID,
			"computed_hash", computed,
			"received_hash", cb.Hash)
		// The payment stays pending and remote_id is never written from an
		// unverified notification.
		return result, nil
	}
	result.SignatureValid = true

	s.checkAmount(o, cb)

	if err := s.repo.SetRemote(p.ID, cb.MerchantOID, cb.Status); err != nil {
		return nil, fmt.Errorf("record remote reference on payment %d: %w", p.ID, err)
	}
	p.RemoteID = &cb.MerchantOID
	p.RemoteState = cb.Status

	if cb.Status == StatusSuccess {
		return s.reconcileSuccess(o, p, cb, result)
	}
	return s.reconcileFailure(o, p, cb, result)
}

func (s *Service) reconcileSuccess(o *ordermodel.Order, p *paymentmodel.Payment, cb *CallbackPayload, result *ReconcileResult) (*ReconcileResult, error) {
	if p.State != paymentmodel.StateCompleted {
		if err := s.repo.UpdateState(p.ID, paymentmodel.StateCompleted); err != nil {
			return nil, fmt.Errorf("complete payment %d: %w", p.ID, err)
		}
		p.State = paymentmodel.StateCompleted
	}
	result.PaymentState = p.State

	if o.State != ordermodel.StateCompleted {
		err := s.orders.ApplyTransition(o, ordermodel.TransitionPlace)
		switch {
		case errors.Is(err, orderpkg.ErrTransitionUnavailable):
			s.logger.Info("place transition unavailable, leaving order state",
				"order_id", o.ID,
				"order_state", o.State)
		case err != nil:
			return nil, err
		default:
			result.Transitioned = true
		}
	}
	result.OrderState = o.State

	if s.orders.IsLocked(o) {
		if err := s.orders.Unlock(o); err != nil {
			return nil, err
		}
		result.LockReleased = true
	}

	s.logger.Info("payment completed",
		"order_id", o.ID,
		"payment_id", p.ID,
		"merchant_oid", cb.MerchantOID,
		"order_state", o.State)

	event := events.NewPaymentCompletedEvent(p.ID, o.ID, cb.MerchantOID, p.AmountTotal, p.Currency)
	s.eventBus.Publish(context.Background(), event)

	return result, nil
}

func (s *Service) reconcileFailure(o *ordermodel.Order, p *paymentmodel.Payment, cb *CallbackPayload, result *ReconcileResult) (*ReconcileResult, error) {
	// A failed notification leaves the order under checkout-workflow control:
	// the customer may legitimately retry, or the workflow times the order
	// out. Only the payment records the outcome, and a completed payment is
	// never downgraded.
	s.logger.Warn("gateway reported non-success status",
		"order_id", o.ID,
		"payment_id", p.ID,
		"merchant_oid", cb.MerchantOID,
		"remote_state", cb.Status)

	result.PaymentState = p.State
	result.OrderState = o.State

	event := events.NewPaymentFailedEvent(p.ID, o.ID, cb.MerchantOID, cb.Status, p.AmountTotal)
	s.eventBus.Publish(context.Background(), event)

	return result, nil
}

// checkAmount cross-checks the transmitted total against the order total.
// The signature already authenticates total_amount, so a mismatch is logged
// for reconciliation forensics rather than rejected.
func (s *Service) checkAmount(o *ordermodel.Order, cb *CallbackPayload) {
	if cb.TotalAmount == "" {
		return
	}
	received, err := decimal.NewFromString(cb.TotalAmount)
	if err != nil {
		s.logger.Warn("callback total_amount is not a decimal",
			"order_id", o.ID,
			"total_amount", cb.TotalAmount)
		return
	}
	if !received.Equal(o.TotalDecimal()) {
		s.logger.Warn("callback amount differs from order total",
			"order_id", o.ID,
			"order_total", o.TotalDecimal().String(),
			"callback_total", received.String())
	}
}
