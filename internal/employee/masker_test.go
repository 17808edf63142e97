package employee

import (
	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"
)

func strptr(s string) *string { return &s }

func sampleEmployee() *Employee {
	return &Employee{
		ID:               7,
		FirstName:        "Kimmy",
		LastName:         "Walczynski",
		ContactInfo:      strptr("kimmy.walczynski@example.com"),
		Location:         strptr("Berlin"),
		Company:          strptr("Acme GmbH"),
		Department:       strptr("Engineering"),
		Position:         strptr("Software Engineer"),
		StatusActive:     true,
		StatusNotStarted: false,
		StatusTerminated: false,
	}
}

var _ = ginkgo.Describe("Masker", func() {
	fullGrant := []string{
		"first_name", "last_name", "contact_info", "location", "company",
		"department", "position", "status_active", "status_not_started", "status_terminated",
	}

	ginkgo.Describe("NewRecord", func() {
		ginkgo.It("should project every field", func() {
			rec := NewRecord(sampleEmployee())

			gomega.Expect(rec.ID).To(gomega.Equal(int64(7)))
			gomega.Expect(rec.FirstName).To(gomega.HaveValue(gomega.Equal("Kimmy")))
			gomega.Expect(rec.Location).To(gomega.HaveValue(gomega.Equal("Berlin")))
			gomega.Expect(rec.StatusActive).To(gomega.HaveValue(gomega.BeTrue()))
		})
	})

	ginkgo.Describe("Mask", func() {
		ginkgo.It("should keep every value under a full grant", func() {
			rec := MaskedRecord(sampleEmployee(), fullGrant)

			gomega.Expect(rec.FirstName).ToNot(gomega.BeNil())
			gomega.Expect(rec.ContactInfo).ToNot(gomega.BeNil())
			gomega.Expect(rec.StatusActive).ToNot(gomega.BeNil())
			gomega.Expect(rec.StatusTerminated).ToNot(gomega.BeNil())
		})

		ginkgo.It("should null gated fields outside the grant", func() {
			grant := []string{"first_name", "last_name", "location"}

			rec := MaskedRecord(sampleEmployee(), grant)

			gomega.Expect(rec.FirstName).To(gomega.HaveValue(gomega.Equal("Kimmy")))
			gomega.Expect(rec.LastName).To(gomega.HaveValue(gomega.Equal("Walczynski")))
			gomega.Expect(rec.Location).To(gomega.HaveValue(gomega.Equal("Berlin")))
			gomega.Expect(rec.ContactInfo).To(gomega.BeNil())
			gomega.Expect(rec.Company).To(gomega.BeNil())
			gomega.Expect(rec.StatusActive).To(gomega.BeNil())
			gomega.Expect(rec.StatusNotStarted).To(gomega.BeNil())
			gomega.Expect(rec.StatusTerminated).To(gomega.BeNil())
		})

		ginkgo.It("should never mask the record id", func() {
			rec := MaskedRecord(sampleEmployee(), nil)

			gomega.Expect(rec.ID).To(gomega.Equal(int64(7)))
			gomega.Expect(rec.FirstName).To(gomega.BeNil())
		})

		ginkgo.It("should be idempotent", func() {
			grant := []string{"first_name", "location"}
			rec := MaskedRecord(sampleEmployee(), grant)
			before := rec

			Mask(&rec, grant)

			gomega.Expect(rec).To(gomega.Equal(before))
		})
	})
})
