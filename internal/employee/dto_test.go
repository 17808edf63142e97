package employee

import (
	"net/url"

	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"
)

var _ = ginkgo.Describe("ParseSearchDTO", func() {
	ginkgo.It("should parse a full query", func() {
		values := url.Values{}
		values.Set("search_str", "immy Walczy")
		values.Set("page", "2")
		values.Set("page_size", "20")
		values.Set("location", "Berlin")
		values.Set("status_active", "true")

		dto, appErr := ParseSearchDTO(values)

		gomega.Expect(appErr).To(gomega.BeNil())
		gomega.Expect(dto.SearchStr).To(gomega.Equal("immy Walczy"))
		gomega.Expect(dto.Page).To(gomega.Equal(2))
		gomega.Expect(dto.PageSize).To(gomega.Equal(20))
		gomega.Expect(dto.Filters).To(gomega.Equal(map[string]string{
			"location":      "Berlin",
			"status_active": "true",
		}))
	})

	ginkgo.It("should default page to 1", func() {
		values := url.Values{}
		values.Set("search_str", "immy")
		values.Set("page_size", "20")

		dto, appErr := ParseSearchDTO(values)

		gomega.Expect(appErr).To(gomega.BeNil())
		gomega.Expect(dto.Page).To(gomega.Equal(1))
	})

	ginkgo.It("should not collect unknown query params as filters", func() {
		values := url.Values{}
		values.Set("search_str", "immy")
		values.Set("page_size", "20")
		values.Set("salary", "100000")

		dto, appErr := ParseSearchDTO(values)

		gomega.Expect(appErr).To(gomega.BeNil())
		gomega.Expect(dto.Filters).To(gomega.BeEmpty())
	})

	ginkgo.It("should reject a non-integer page", func() {
		values := url.Values{}
		values.Set("search_str", "immy")
		values.Set("page", "two")
		values.Set("page_size", "20")

		_, appErr := ParseSearchDTO(values)

		gomega.Expect(appErr).ToNot(gomega.BeNil())
	})

	ginkgo.It("should reject a missing page_size", func() {
		values := url.Values{}
		values.Set("search_str", "immy")

		_, appErr := ParseSearchDTO(values)

		gomega.Expect(appErr).ToNot(gomega.BeNil())
	})

	ginkgo.It("should reject a zero page", func() {
		values := url.Values{}
		values.Set("search_str", "immy")
		values.Set("page", "0")
		values.Set("page_size", "20")

		_, appErr := ParseSearchDTO(values)

		gomega.Expect(appErr).ToNot(gomega.BeNil())
	})

	ginkgo.It("should cap search_str at 100 characters", func() {
		long := make([]byte, 101)
		for i := range long {
			long[i] = 'a'
		}
		values := url.Values{}
		values.Set("search_str", string(long))
		values.Set("page_size", "20")

		_, appErr := ParseSearchDTO(values)

		gomega.Expect(appErr).ToNot(gomega.BeNil())
	})
})
