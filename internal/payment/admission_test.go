package payment_test

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	ordermodel "github.com/frahmantamala/order-management/internal/core/datamodel/order"
	paymentpkg "github.com/frahmantamala/order-management/internal/payment"
)

var _ = Describe("AdmissionMiddleware", func() {
	var (
		orders   *MockOrders
		recorder *httptest.ResponseRecorder
		logger   *slog.Logger
		nextBody string
		nextHits int
		gated    http.Handler
	)

	BeforeEach(func() {
		orders = NewMockOrders()
		logger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		recorder = httptest.NewRecorder()
		nextBody = ""
		nextHits = 0

		next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			nextHits++
			body, err := io.ReadAll(r.Body)
			Expect(err).NotTo(HaveOccurred())
			nextBody = string(body)
			w.WriteHeader(http.StatusOK)
		})
		gated = paymentpkg.AdmissionMiddleware(orders, logger)(next)
	})

	post := func(body string) {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/payment/callback", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		gated.ServeHTTP(recorder, req)
	}

	Context("when the order exists", func() {
		BeforeEach(func() {
			orders.orders[123] = &ordermodel.Order{ID: 123, State: ordermodel.StatePending}
		})

		It("should admit the request", func() {
			post(callbackForm("SP123DR456", "success", "somehash", "1499.00"))

			Expect(recorder.Code).To(Equal(http.StatusOK))
			Expect(nextHits).To(Equal(1))
		})

		It("should hand the handler the same body bytes it consumed", func() {
			body := callbackForm("SP123DR456", "success", "somehash", "1499.00")
			post(body)

			Expect(nextBody).To(Equal(body))
		})
	})

	Context("when the payload is missing required fields", func() {
		It("should reject before the handler runs", func() {
			post(callbackForm("SP123", "", "somehash", ""))

			Expect(recorder.Code).To(Equal(http.StatusBadRequest))
			Expect(recorder.Body.String()).To(Equal("Missing required parameters"))
			Expect(nextHits).To(Equal(0))
		})
	})

	Context("when the merchant_oid does not resolve", func() {
		It("should reject with the invalid order id body", func() {
			post(callbackForm("SPxyz", "success", "somehash", "1.00"))

			Expect(recorder.Code).To(Equal(http.StatusBadRequest))
			Expect(recorder.Body.String()).To(Equal("Invalid order ID"))
			Expect(nextHits).To(Equal(0))
		})

		It("should treat an empty merchant_oid the same way", func() {
			post("merchant_oid=&status=success&hash=abc&total_amount=1.00")

			Expect(recorder.Code).To(Equal(http.StatusBadRequest))
			Expect(recorder.Body.String()).To(Equal("Invalid order ID"))
			Expect(nextHits).To(Equal(0))
		})
	})

	Context("when the resolved order does not exist", func() {
		It("should reject with 404", func() {
			post(callbackForm("SP999", "success", "somehash", "1.00"))

			Expect(recorder.Code).To(Equal(http.StatusNotFound))
			Expect(recorder.Body.String()).To(Equal("Order not found"))
			Expect(nextHits).To(Equal(0))
		})
	})

	Context("resolution agreement with the handler", func() {
		It("should resolve the same id the handler would", func() {
			for _, oid := range []string{"SP123DR456", "SP123", "123", "SP12SP3"} {
				id, resolved := paymentpkg.ResolveOrderID(oid)
				Expect(resolved).To(BeTrue())
				Expect(id).To(Equal(int64(123)))
			}
		})
	})
})
