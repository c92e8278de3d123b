package payment

import (
	"io"
	"log/slog"
	"net/http"

	errors "github.com/frahmantamala/order-management/internal"
	"github.com/frahmantamala/order-management/internal/transport"
)

// WebhookHandler receives the gateway's server-to-server payment
// notifications. Responses are plain text: the gateway only understands
// 400/404 rejections and a literal 200 "OK" acknowledgment, and it keeps
// redelivering until it sees the latter.
type WebhookHandler struct {
	*transport.BaseHandler
	paymentService ServiceAPI
	logger         *slog.Logger
}

func NewWebhookHandler(baseHandler *transport.BaseHandler, paymentService ServiceAPI, logger *slog.Logger) *WebhookHandler {
	return &WebhookHandler{
		BaseHandler:    baseHandler,
		paymentService: paymentService,
		logger:         logger,
	}
}

// HandleCallback runs the reconciliation pipeline: parse, resolve the order
// id, load the order and its gateway credentials, locate or create the
// payment record, then reconcile. A notification whose payment genuinely
// failed still gets 200 "OK" so the gateway stops redelivering; the failure
// is recorded on the payment and surfaced through logging.
func (h *WebhookHandler) HandleCallback(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		h.logger.Error("failed to read callback body", "error", err)
		h.WriteText(w, http.StatusBadRequest, errors.ErrMissingParams.Message)
		return
	}

	cb := ParseCallbackPayload(body)
	if err := cb.Validate(); err != nil {
		h.logger.Error("callback missing required fields",
			"merchant_oid", cb.MerchantOID,
			"status", cb.Status,
			"error", err)
		h.WriteText(w, http.StatusBadRequest, errors.ErrMissingParams.Message)
		return
	}

	h.logger.Info("received payment callback",
		"merchant_oid", cb.MerchantOID,
		"status", cb.Status,
		"total_amount", cb.TotalAmount)

	orderID, resolved := ResolveOrderID(cb.MerchantOID)
	if !resolved || orderID == 0 {
		h.logger.Error("callback merchant_oid does not resolve to an order",
			"merchant_oid", cb.MerchantOID)
		h.WriteText(w, http.StatusBadRequest, errors.ErrInvalidOrderID.Message)
		return
	}

	order, err := h.paymentService.GetOrder(orderID)
	if err != nil {
		if appErr, ok := errors.IsAppError(err); ok && appErr.Code == errors.ErrCodeOrderNotFound {
			h.logger.Error("callback for unknown order", "order_id", orderID)
			h.WriteText(w, http.StatusNotFound, appErr.Message)
			return
		}
		h.logger.Error("failed to load order for callback", "order_id", orderID, "error", err)
		h.HandleServiceError(w, err)
		return
	}

	cfg, err := h.paymentService.GatewayConfigFor(order)
	if err != nil {
		h.logger.Error("callback for order without gateway", "order_id", orderID, "error", err)
		h.WriteText(w, http.StatusNotFound, errors.ErrGatewayNotFound.Message)
		return
	}

	payment, err := h.paymentService.LocateOrCreatePayment(order)
	if err != nil {
		h.logger.Error("failed to locate or create payment",
			"order_id", orderID,
			"error", err)
		h.HandleServiceError(w, err)
		return
	}

	result, err := h.paymentService.Reconcile(order, payment, cb, cfg)
	if err != nil {
		// Persistence or transition failures must fail loudly: acking here
		// would desynchronize our state from the gateway's belief.
		h.logger.Error("callback reconciliation failed",
			"order_id", orderID,
			"payment_id", payment.ID,
			"error", err)
		h.HandleServiceError(w, err)
		return
	}

	h.logger.Info("callback reconciled",
		"order_id", orderID,
		"payment_id", payment.ID,
		"signature_valid", result.SignatureValid,
		"payment_state", result.PaymentState,
		"order_state", result.OrderState,
		"transitioned", result.Transitioned,
		"lock_released", result.LockReleased)

	h.WriteText(w, http.StatusOK, "OK")
}
