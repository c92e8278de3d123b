package payment

import (
	"bytes"
	"io"
	"log/slog"
	"net/http"

	errors "github.com/frahmantamala/order-management/internal"
	"github.com/frahmantamala/order-management/internal/transport"
)

// AdmissionMiddleware gates the callback route before the handler runs. It
// re-parses the payload and resolves the order id with the exact same
// functions the handler uses, and admits the request only when the resolved
// id maps to an existing order. Sharing ParseCallbackPayload and
// ResolveOrderID keeps admission and processing from ever disagreeing about
// which requests are resolvable.
func AdmissionMiddleware(orders OrderAPI, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			body, err := io.ReadAll(r.Body)
			if err != nil {
				logger.Error("admission: failed to read body", "error", err)
				transport.WriteText(w, http.StatusBadRequest, errors.ErrMissingParams.Message)
				return
			}
			// The handler needs the same bytes again.
			r.Body = io.NopCloser(bytes.NewReader(body))

			cb := ParseCallbackPayload(body)
			if err := cb.Validate(); err != nil {
				logger.Error("admission: callback missing required fields", "error", err)
				transport.WriteText(w, http.StatusBadRequest, errors.ErrMissingParams.Message)
				return
			}

			orderID, resolved := ResolveOrderID(cb.MerchantOID)
			if !resolved || orderID == 0 {
				logger.Error("admission: merchant_oid does not resolve",
					"merchant_oid", cb.MerchantOID)
				transport.WriteText(w, http.StatusBadRequest, errors.ErrInvalidOrderID.Message)
				return
			}

			if _, err := orders.GetByID(orderID); err != nil {
				logger.Error("admission: no order for callback", "order_id", orderID)
				transport.WriteText(w, http.StatusNotFound, errors.ErrOrderNotFound.Message)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
