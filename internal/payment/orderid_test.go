package payment_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	paymentpkg "github.com/frahmantamala/order-management/internal/payment"
)

var _ = Describe("ResolveOrderID", func() {
	type resolveCase struct {
		merchantOID string
		expectedID  int64
		resolved    bool
	}

	DescribeTable("decoding merchant_oid values",
		func(c resolveCase) {
			id, resolved := paymentpkg.ResolveOrderID(c.merchantOID)
			Expect(resolved).To(Equal(c.resolved))
			Expect(id).To(Equal(c.expectedID))
		},
		Entry("marker prefix with trailing data", resolveCase{"SP123DR456", 123, true}),
		Entry("marker prefix without delimiter", resolveCase{"SP123", 123, true}),
		Entry("bare numeric id", resolveCase{"123", 123, true}),
		Entry("repeated markers collapse", resolveCase{"SP12SP3", 123, true}),
		Entry("delimiter first keeps empty head", resolveCase{"DR456", 0, true}),
		Entry("only the first delimiter splits", resolveCase{"SP1DR2DR3", 1, true}),
		Entry("non-numeric remainder maps to zero", resolveCase{"SPabc", 0, true}),
		Entry("lowercase marker is not stripped", resolveCase{"sp123", 0, true}),
		Entry("empty input is unresolved", resolveCase{"", 0, false}),
	)
})
