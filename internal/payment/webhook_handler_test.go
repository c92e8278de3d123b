package payment_test

import (
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	internal "github.com/frahmantamala/order-management/internal"
	"github.com/frahmantamala/order-management/internal/core/datamodel/gateway"
	ordermodel "github.com/frahmantamala/order-management/internal/core/datamodel/order"
	paymentmodel "github.com/frahmantamala/order-management/internal/core/datamodel/payment"
	paymentpkg "github.com/frahmantamala/order-management/internal/payment"
	"github.com/frahmantamala/order-management/internal/transport"
)

type mockCallbackService struct {
	order        *ordermodel.Order
	orderErr     error
	config       *gateway.Config
	configErr    error
	payment      *paymentmodel.Payment
	locateErr    error
	result       *paymentpkg.ReconcileResult
	reconcileErr error
}

func (m *mockCallbackService) GetOrder(id int64) (*ordermodel.Order, error) {
	if m.orderErr != nil {
		return nil, m.orderErr
	}
	return m.order, nil
}

func (m *mockCallbackService) GatewayConfigFor(o *ordermodel.Order) (*gateway.Config, error) {
	if m.configErr != nil {
		return nil, m.configErr
	}
	return m.config, nil
}

func (m *mockCallbackService) LocateOrCreatePayment(o *ordermodel.Order) (*paymentmodel.Payment, error) {
	if m.locateErr != nil {
		return nil, m.locateErr
	}
	return m.payment, nil
}

func (m *mockCallbackService) Reconcile(o *ordermodel.Order, p *paymentmodel.Payment, cb *paymentpkg.CallbackPayload, cfg *gateway.Config) (*paymentpkg.ReconcileResult, error) {
	if m.reconcileErr != nil {
		return nil, m.reconcileErr
	}
	return m.result, nil
}

func callbackForm(merchantOID, status, hash, totalAmount string) string {
	form := url.Values{}
	if merchantOID != "" {
		form.Set("merchant_oid", merchantOID)
	}
	if status != "" {
		form.Set("status", status)
	}
	if hash != "" {
		form.Set("hash", hash)
	}
	if totalAmount != "" {
		form.Set("total_amount", totalAmount)
	}
	return form.Encode()
}

var _ = Describe("WebhookHandler", func() {
	var (
		service  *mockCallbackService
		handler  *paymentpkg.WebhookHandler
		recorder *httptest.ResponseRecorder
		logger   *slog.Logger
	)

	post := func(body string) {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/payment/callback", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		handler.HandleCallback(recorder, req)
	}

	BeforeEach(func() {
		logger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		gwID := int64(1)
		service = &mockCallbackService{
			order: &ordermodel.Order{
				ID:          123,
				State:       ordermodel.StatePending,
				AmountTotal: 149900,
				Currency:    "TRY",
				GatewayID:   &gwID,
			},
			config:  &gateway.Config{ID: gwID, MerchantSalt: testSalt, MerchantKey: testKey},
			payment: &paymentmodel.Payment{ID: 5, OrderID: 123, State: paymentmodel.StateAuthorization},
			result: &paymentpkg.ReconcileResult{
				SignatureValid: true,
				PaymentState:   paymentmodel.StateCompleted,
				OrderState:     ordermodel.StateCompleted,
				Transitioned:   true,
				LockReleased:   true,
			},
		}
		handler = paymentpkg.NewWebhookHandler(transport.NewBaseHandler(logger), service, logger)
		recorder = httptest.NewRecorder()
	})

	Context("when the notification reconciles", func() {
		It("should acknowledge with plain-text OK", func() {
			post(callbackForm("SP123DR456", "success", "somehash", "1499.00"))

			Expect(recorder.Code).To(Equal(http.StatusOK))
			Expect(recorder.Body.String()).To(Equal("OK"))
			Expect(recorder.Header().Get("Content-Type")).To(ContainSubstring("text/plain"))
		})
	})

	Context("when the signature did not verify", func() {
		It("should still acknowledge so the gateway stops redelivering", func() {
			service.result = &paymentpkg.ReconcileResult{
				SignatureValid: false,
				PaymentState:   paymentmodel.StateAuthorization,
				OrderState:     ordermodel.StatePending,
			}

			post(callbackForm("SP123DR456", "success", "tampered", "1499.00"))

			Expect(recorder.Code).To(Equal(http.StatusOK))
			Expect(recorder.Body.String()).To(Equal("OK"))
		})
	})

	Context("when required parameters are missing", func() {
		It("should reject a body without a hash", func() {
			post(callbackForm("SP123DR456", "success", "", "1499.00"))

			Expect(recorder.Code).To(Equal(http.StatusBadRequest))
			Expect(recorder.Body.String()).To(Equal("Missing required parameters"))
		})

		It("should reject an empty body", func() {
			post("")

			Expect(recorder.Code).To(Equal(http.StatusBadRequest))
			Expect(recorder.Body.String()).To(Equal("Missing required parameters"))
		})
	})

	Context("when merchant_oid does not resolve to an order id", func() {
		It("should reject an empty merchant_oid as an invalid order id", func() {
			post("merchant_oid=&status=success&hash=abc&total_amount=1.00")

			Expect(recorder.Code).To(Equal(http.StatusBadRequest))
			Expect(recorder.Body.String()).To(Equal("Invalid order ID"))
		})

		It("should reject a non-numeric remainder", func() {
			post(callbackForm("SPabcDEF", "success", "somehash", "1499.00"))

			Expect(recorder.Code).To(Equal(http.StatusBadRequest))
			Expect(recorder.Body.String()).To(Equal("Invalid order ID"))
		})

		It("should reject an oid that strips to nothing", func() {
			post(callbackForm("SPDR456", "success", "somehash", "1499.00"))

			Expect(recorder.Code).To(Equal(http.StatusBadRequest))
			Expect(recorder.Body.String()).To(Equal("Invalid order ID"))
		})
	})

	Context("when the order does not exist", func() {
		It("should return 404 with the protocol body", func() {
			service.orderErr = internal.ErrOrderNotFound

			post(callbackForm("SP999", "success", "somehash", "1499.00"))

			Expect(recorder.Code).To(Equal(http.StatusNotFound))
			Expect(recorder.Body.String()).To(Equal("Order not found"))
		})
	})

	Context("when the order has no usable gateway config", func() {
		It("should return 404 with the protocol body", func() {
			service.configErr = internal.ErrGatewayNotFound

			post(callbackForm("SP123", "success", "somehash", "1499.00"))

			Expect(recorder.Code).To(Equal(http.StatusNotFound))
			Expect(recorder.Body.String()).To(Equal("Payment gateway not found"))
		})
	})

	Context("when persistence fails", func() {
		It("should return 500 when the payment cannot be located or created", func() {
			service.locateErr = errors.New("connection refused")

			post(callbackForm("SP123", "success", "somehash", "1499.00"))

			Expect(recorder.Code).To(Equal(http.StatusInternalServerError))
		})

		It("should return 500 when reconciliation fails mid-write", func() {
			service.reconcileErr = errors.New("connection reset")

			post(callbackForm("SP123", "success", "somehash", "1499.00"))

			Expect(recorder.Code).To(Equal(http.StatusInternalServerError))
		})
	})
})
