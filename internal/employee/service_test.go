package employee

import (
	"context"
	"errors"

	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"

	"github.com/hrtools/employee-directory/internal/department"
	"github.com/hrtools/employee-directory/internal/user"
)

type mockEmployeeRepository struct {
	employees     []*Employee
	searchCalls   int
	countCalls    int
	distinctCalls []string
	lastPreds     []Predicate
	returnError   error
}

func (m *mockEmployeeRepository) Search(_ context.Context, _ string, preds []Predicate, offset, limit int) ([]*Employee, error) {
	m.searchCalls++
	m.lastPreds = preds
	if m.returnError != nil {
		return nil, m.returnError
	}
	if offset >= len(m.employees) {
		return nil, nil
	}
	end := offset + limit
	if end > len(m.employees) {
		end = len(m.employees)
	}
	return m.employees[offset:end], nil
}

func (m *mockEmployeeRepository) Count(_ context.Context, _ string, _ []Predicate) (int64, error) {
	m.countCalls++
	if m.returnError != nil {
		return 0, m.returnError
	}
	return int64(len(m.employees)), nil
}

func (m *mockEmployeeRepository) DistinctValues(_ context.Context, column string) ([]string, error) {
	m.distinctCalls = append(m.distinctCalls, column)
	if m.returnError != nil {
		return nil, m.returnError
	}
	return []string{"Berlin", "Hamburg"}, nil
}

type mockGrantResolver struct {
	grants map[string][]string
	err    error
}

func (m *mockGrantResolver) ResolveGrant(u *user.User) ([]string, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.grants[u.Username], nil
}

var _ = ginkgo.Describe("EmployeeService", func() {
	var (
		service  *Service
		mockRepo *mockEmployeeRepository
		resolver *mockGrantResolver
		ctx      context.Context
	)

	fullGrant := []string{
		"first_name", "last_name", "contact_info", "location", "company",
		"department", "position", "status_active", "status_not_started", "status_terminated",
	}
	partialGrant := []string{
		"first_name", "last_name", "contact_info", "location", "company",
		"department", "position",
	}

	user01 := &user.User{ID: 1, Username: "user01", IsActive: true}
	user02 := &user.User{ID: 2, Username: "user02", IsActive: true}

	ginkgo.BeforeEach(func() {
		ctx = context.Background()
		mockRepo = &mockEmployeeRepository{
			employees: []*Employee{sampleEmployee()},
		}
		resolver = &mockGrantResolver{
			grants: map[string][]string{
				"user01": fullGrant,
				"user02": partialGrant,
			},
		}
		service = NewService(mockRepo, resolver, nil, nil)
	})

	ginkgo.Describe("Search", func() {
		ginkgo.Context("with a full grant", func() {
			ginkgo.It("should return every column populated", func() {
				result, err := service.Search(ctx, user01, SearchDTO{
					SearchStr: "immy Walczy",
					Page:      1,
					PageSize:  20,
				})

				gomega.Expect(err).ToNot(gomega.HaveOccurred())
				gomega.Expect(result.TotalCount).To(gomega.Equal(int64(1)))
				gomega.Expect(result.Columns).To(gomega.Equal(fullGrant))
				gomega.Expect(result.Data).To(gomega.HaveLen(1))
				gomega.Expect(result.Data[0].ContactInfo).ToNot(gomega.BeNil())
				gomega.Expect(result.Data[0].StatusActive).ToNot(gomega.BeNil())
			})
		})

		ginkgo.Context("with a partial grant", func() {
			ginkgo.It("should null the ungranted columns but keep the record shape", func() {
				result, err := service.Search(ctx, user02, SearchDTO{
					SearchStr: "immy Walczy",
					Page:      1,
					PageSize:  20,
				})

				gomega.Expect(err).ToNot(gomega.HaveOccurred())
				gomega.Expect(result.Columns).To(gomega.Equal(partialGrant))
				rec := result.Data[0]
				gomega.Expect(rec.FirstName).To(gomega.HaveValue(gomega.Equal("Kimmy")))
				gomega.Expect(rec.StatusActive).To(gomega.BeNil())
				gomega.Expect(rec.StatusNotStarted).To(gomega.BeNil())
				gomega.Expect(rec.StatusTerminated).To(gomega.BeNil())
			})

			ginkgo.It("should drop filters on ungranted columns before querying", func() {
				_, err := service.Search(ctx, user02, SearchDTO{
					SearchStr: "immy",
					Filters:   map[string]string{"status_active": "true", "location": "Berlin"},
					Page:      1,
					PageSize:  20,
				})

				gomega.Expect(err).ToNot(gomega.HaveOccurred())
				gomega.Expect(mockRepo.lastPreds).To(gomega.ConsistOf(
					Predicate{Column: "location", Value: "Berlin"},
				))
			})
		})

		ginkgo.Context("when grant resolution fails", func() {
			ginkgo.It("should surface ErrNoDepartment and never query", func() {
				resolver.err = department.ErrNoDepartment

				_, err := service.Search(ctx, user01, SearchDTO{
					SearchStr: "immy",
					Page:      1,
					PageSize:  20,
				})

				gomega.Expect(err).To(gomega.MatchError(department.ErrNoDepartment))
				gomega.Expect(mockRepo.searchCalls).To(gomega.BeZero())
				gomega.Expect(mockRepo.countCalls).To(gomega.BeZero())
			})

			ginkgo.It("should surface ErrNoAccess and never query", func() {
				resolver.err = department.ErrNoAccess

				_, err := service.Search(ctx, user01, SearchDTO{
					SearchStr: "immy",
					Page:      1,
					PageSize:  20,
				})

				gomega.Expect(err).To(gomega.MatchError(department.ErrNoAccess))
				gomega.Expect(mockRepo.searchCalls).To(gomega.BeZero())
			})
		})

		ginkgo.Context("with invalid input", func() {
			ginkgo.It("should reject an empty search string before resolving anything", func() {
				_, err := service.Search(ctx, user01, SearchDTO{
					Page:     1,
					PageSize: 20,
				})

				gomega.Expect(err).To(gomega.HaveOccurred())
				gomega.Expect(mockRepo.searchCalls).To(gomega.BeZero())
			})

			ginkgo.It("should reject a missing page_size", func() {
				_, err := service.Search(ctx, user01, SearchDTO{
					SearchStr: "immy",
					Page:      1,
				})

				gomega.Expect(err).To(gomega.HaveOccurred())
			})
		})

		ginkgo.Context("when the repository fails", func() {
			ginkgo.It("should wrap the error", func() {
				mockRepo.returnError = errors.New("connection refused")

				_, err := service.Search(ctx, user01, SearchDTO{
					SearchStr: "immy",
					Page:      1,
					PageSize:  20,
				})

				gomega.Expect(err).To(gomega.HaveOccurred())
				gomega.Expect(errors.Is(err, department.ErrNoAccess)).To(gomega.BeFalse())
			})
		})

		ginkgo.It("should report the pagination envelope", func() {
			result, err := service.Search(ctx, user01, SearchDTO{
				SearchStr: "immy",
				Page:      1,
				PageSize:  20,
			})

			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(result.CurrentPage).To(gomega.Equal(1))
			gomega.Expect(result.PageSize).To(gomega.Equal(20))
			gomega.Expect(result.TotalPage).To(gomega.Equal(int64(1)))
		})
	})

	ginkgo.Describe("FilterOptions", func() {
		ginkgo.It("should return distinct values only for granted filterable string columns", func() {
			options, err := service.FilterOptions(ctx, user02)

			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(options).To(gomega.HaveKey("location"))
			gomega.Expect(options).To(gomega.HaveKey("company"))
			gomega.Expect(options).ToNot(gomega.HaveKey("status_active"))
			gomega.Expect(options["location"]).To(gomega.Equal([]string{"Berlin", "Hamburg"}))
		})

		ginkgo.It("should not query boolean columns even under a full grant", func() {
			_, err := service.FilterOptions(ctx, user01)

			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(mockRepo.distinctCalls).ToNot(gomega.ContainElement("status_active"))
		})

		ginkgo.It("should surface grant failures", func() {
			resolver.err = department.ErrNoAccess

			_, err := service.FilterOptions(ctx, user01)

			gomega.Expect(err).To(gomega.MatchError(department.ErrNoAccess))
			gomega.Expect(mockRepo.distinctCalls).To(gomega.BeEmpty())
		})
	})
})
