package payment_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	paymentpkg "github.com/frahmantamala/order-management/internal/payment"
)

var _ = Describe("Callback Signature", func() {
	var cb *paymentpkg.CallbackPayload

	BeforeEach(func() {
		cb = signedPayload("SP42DR1", "success", "250.00")
	})

	Describe("ComputeSignature", func() {
		It("should be deterministic for the same inputs", func() {
			again := paymentpkg.ComputeSignature("SP42DR1", testSalt, "success", "250.00", testKey)
			Expect(again).To(Equal(cb.Hash))
		})

		It("should change when any signed field changes", func() {
			base := cb.Hash
			Expect(paymentpkg.ComputeSignature("SP42DR2", testSalt, "success", "250.00", testKey)).NotTo(Equal(base))
			Expect(paymentpkg.ComputeSignature("SP42DR1", testSalt, "failed", "250.00", testKey)).NotTo(Equal(base))
			Expect(paymentpkg.ComputeSignature("SP42DR1", testSalt, "success", "250.01", testKey)).NotTo(Equal(base))
			Expect(paymentpkg.ComputeSignature("SP42DR1", "other-salt", "success", "250.00", testKey)).NotTo(Equal(base))
			Expect(paymentpkg.ComputeSignature("SP42DR1", testSalt, "success", "250.00", "other-key")).NotTo(Equal(base))
		})
	})

	Describe("VerifySignature", func() {
		It("should accept a correctly signed payload", func() {
			Expect(paymentpkg.VerifySignature(cb, testSalt, testKey)).To(BeTrue())
		})

		It("should accept an empty total_amount signed as empty string", func() {
			empty := signedPayload("SP42DR1", "success", "")
			Expect(paymentpkg.VerifySignature(empty, testSalt, testKey)).To(BeTrue())
		})

		It("should reject a tampered hash", func() {
			flipped := byte('A')
			if cb.Hash[0] == 'A' {
				flipped = 'B'
			}
			cb.Hash = string(flipped) + cb.Hash[1:]
			Expect(paymentpkg.VerifySignature(cb, testSalt, testKey)).To(BeFalse())
		})

		It("should reject when a field was modified after signing", func() {
			cb.TotalAmount = "999.00"
			Expect(paymentpkg.VerifySignature(cb, testSalt, testKey)).To(BeFalse())
		})

		It("should reject an empty hash", func() {
			cb.Hash = ""
			Expect(paymentpkg.VerifySignature(cb, testSalt, testKey)).To(BeFalse())
		})
	})
})
