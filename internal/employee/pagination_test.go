package employee

import (
	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"
)

var _ = ginkgo.Describe("Pagination", func() {
	ginkgo.Describe("Offset", func() {
		ginkgo.It("should map page 1 to offset 0", func() {
			gomega.Expect(Offset(1, 20)).To(gomega.Equal(0))
		})

		ginkgo.It("should map page 3 of 20 to offset 40", func() {
			gomega.Expect(Offset(3, 20)).To(gomega.Equal(40))
		})
	})

	ginkgo.Describe("TotalPages", func() {
		ginkgo.It("should report one page for an empty result set", func() {
			gomega.Expect(TotalPages(0, 20)).To(gomega.Equal(int64(1)))
		})

		ginkgo.It("should round partial pages up", func() {
			gomega.Expect(TotalPages(45, 20)).To(gomega.Equal(int64(3)))
		})

		ginkgo.It("should report an extra trailing page on exact multiples", func() {
			// 40 rows at 20 per page reports 3 pages; the last one is empty.
			// Clients page until they receive an empty response.
			gomega.Expect(TotalPages(40, 20)).To(gomega.Equal(int64(3)))
		})

		ginkgo.It("should report two pages when one row spills over", func() {
			gomega.Expect(TotalPages(21, 20)).To(gomega.Equal(int64(2)))
		})
	})
})
