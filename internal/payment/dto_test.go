package payment_test

import (
	"net/url"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	paymentpkg "github.com/frahmantamala/order-management/internal/payment"
)

var _ = Describe("CallbackPayload", func() {
	Describe("ParseCallbackPayload", func() {
		Context("with a JSON body", func() {
			It("should extract all notification fields", func() {
				body := []byte(`{"merchant_oid":"SP123DR456","status":"success","hash":"abc123","total_amount":"1499.00"}`)
				cb := paymentpkg.ParseCallbackPayload(body)
				Expect(cb.MerchantOID).To(Equal("SP123DR456"))
				Expect(cb.Status).To(Equal("success"))
				Expect(cb.Hash).To(Equal("abc123"))
				Expect(cb.TotalAmount).To(Equal("1499.00"))
			})
		})

		Context("with a form-encoded body", func() {
			It("should extract the same fields", func() {
				form := url.Values{}
				form.Set("merchant_oid", "SP123DR456")
				form.Set("status", "failed")
				form.Set("hash", "h+k/3=")
				form.Set("total_amount", "99.90")

				cb := paymentpkg.ParseCallbackPayload([]byte(form.Encode()))
				Expect(cb.MerchantOID).To(Equal("SP123DR456"))
				Expect(cb.Status).To(Equal("failed"))
				Expect(cb.Hash).To(Equal("h+k/3="))
				Expect(cb.TotalAmount).To(Equal("99.90"))
			})
		})

		Context("with a JSON body missing every known field", func() {
			It("should fall through to form parsing", func() {
				cb := paymentpkg.ParseCallbackPayload([]byte(`{"unrelated":"x"}`))
				Expect(cb.MerchantOID).To(BeEmpty())
				Expect(cb.Status).To(BeEmpty())
			})
		})

		Context("with an empty body", func() {
			It("should return an empty payload", func() {
				cb := paymentpkg.ParseCallbackPayload([]byte{})
				Expect(cb.MerchantOID).To(BeEmpty())
				Expect(cb.Hash).To(BeEmpty())
			})
		})
	})

	Describe("Validate", func() {
		It("should pass when status and hash are present", func() {
			cb := &paymentpkg.CallbackPayload{MerchantOID: "SP1", Status: "success", Hash: "abc"}
			Expect(cb.Validate()).To(Succeed())
		})

		It("should pass without total_amount", func() {
			cb := &paymentpkg.CallbackPayload{MerchantOID: "SP1", Status: "failed", Hash: "abc"}
			Expect(cb.Validate()).To(Succeed())
		})

		It("should leave an empty merchant_oid to order id resolution", func() {
			cb := &paymentpkg.CallbackPayload{Status: "success", Hash: "abc"}
			Expect(cb.Validate()).To(Succeed())

			_, resolved := paymentpkg.ResolveOrderID(cb.MerchantOID)
			Expect(resolved).To(BeFalse())
		})

		It("should fail when status is missing", func() {
			cb := &paymentpkg.CallbackPayload{MerchantOID: "SP1", Hash: "abc"}
			err := cb.Validate()
			Expect(err).To(HaveOccurred())
			Expect(err.Error()).To(ContainSubstring("Missing required parameters"))
		})

		It("should fail when hash is missing", func() {
			cb := &paymentpkg.CallbackPayload{MerchantOID: "SP1", Status: "success"}
			Expect(cb.Validate()).To(HaveOccurred())
		})
	})
})
