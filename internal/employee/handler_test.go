package employee

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"

	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"

	"github.com/hrtools/employee-directory/internal/auth"
	"github.com/hrtools/employee-directory/internal/department"
	"github.com/hrtools/employee-directory/internal/user"
)

type mockSearchService struct {
	result     *SearchResult
	options    map[string][]string
	err        error
	lastDTO    SearchDTO
	searchRuns int
}

func (m *mockSearchService) Search(_ context.Context, _ *user.User, dto SearchDTO) (*SearchResult, error) {
	m.searchRuns++
	m.lastDTO = dto
	if m.err != nil {
		return nil, m.err
	}
	return m.result, nil
}

func (m *mockSearchService) FilterOptions(_ context.Context, _ *user.User) (map[string][]string, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.options, nil
}

var _ = ginkgo.Describe("EmployeeHandler", func() {
	var (
		handler *Handler
		mockSvc *mockSearchService
	)

	requestAs := func(u *user.User, target string) *http.Request {
		req := httptest.NewRequest(http.MethodGet, target, nil)
		if u != nil {
			req = req.WithContext(auth.ContextWithUser(req.Context(), u))
		}
		return req
	}

	caller := &user.User{ID: 1, Username: "user01", IsActive: true}

	ginkgo.BeforeEach(func() {
		mockSvc = &mockSearchService{
			result: &SearchResult{
				TotalCount:  1,
				TotalPage:   1,
				CurrentPage: 1,
				PageSize:    20,
				Columns:     []string{"first_name", "last_name"},
				Data:        []Record{MaskedRecord(sampleEmployee(), []string{"first_name", "last_name"})},
			},
			options: map[string][]string{"location": {"Berlin"}},
		}
		handler = NewHandler(mockSvc)
	})

	ginkgo.Describe("SearchEmployees", func() {
		ginkgo.It("should return the search envelope", func() {
			req := requestAs(caller, "/api/v1/employees/search?search_str=immy+Walczy&page_size=20")
			w := httptest.NewRecorder()

			handler.SearchEmployees(w, req)

			gomega.Expect(w.Code).To(gomega.Equal(http.StatusOK))

			var body map[string]json.RawMessage
			gomega.Expect(json.NewDecoder(w.Body).Decode(&body)).To(gomega.Succeed())
			gomega.Expect(body).To(gomega.HaveKey("total_count"))
			gomega.Expect(body).To(gomega.HaveKey("columns"))
			gomega.Expect(body).To(gomega.HaveKey("data"))
		})

		ginkgo.It("should serialize masked fields as explicit nulls", func() {
			req := requestAs(caller, "/api/v1/employees/search?search_str=immy&page_size=20")
			w := httptest.NewRecorder()

			handler.SearchEmployees(w, req)

			var body struct {
				Data []map[string]json.RawMessage `json:"data"`
			}
			gomega.Expect(json.NewDecoder(w.Body).Decode(&body)).To(gomega.Succeed())
			gomega.Expect(body.Data).To(gomega.HaveLen(1))
			gomega.Expect(body.Data[0]).To(gomega.HaveKey("contact_info"))
			gomega.Expect(string(body.Data[0]["contact_info"])).To(gomega.Equal("null"))
			gomega.Expect(string(body.Data[0]["first_name"])).To(gomega.Equal(`"Kimmy"`))
		})

		ginkgo.It("should pass the parsed DTO to the service", func() {
			req := requestAs(caller, "/api/v1/employees/search?search_str=immy&page=3&page_size=10&location=Berlin")
			w := httptest.NewRecorder()

			handler.SearchEmployees(w, req)

			gomega.Expect(mockSvc.lastDTO.Page).To(gomega.Equal(3))
			gomega.Expect(mockSvc.lastDTO.PageSize).To(gomega.Equal(10))
			gomega.Expect(mockSvc.lastDTO.Filters).To(gomega.HaveKeyWithValue("location", "Berlin"))
		})

		ginkgo.It("should reject requests without an authenticated user", func() {
			req := requestAs(nil, "/api/v1/employees/search?search_str=immy&page_size=20")
			w := httptest.NewRecorder()

			handler.SearchEmployees(w, req)

			gomega.Expect(w.Code).To(gomega.Equal(http.StatusUnauthorized))
			gomega.Expect(mockSvc.searchRuns).To(gomega.BeZero())
		})

		ginkgo.It("should return 400 before calling the service on bad input", func() {
			req := requestAs(caller, "/api/v1/employees/search?search_str=immy&page=zero&page_size=20")
			w := httptest.NewRecorder()

			handler.SearchEmployees(w, req)

			gomega.Expect(w.Code).To(gomega.Equal(http.StatusBadRequest))
			gomega.Expect(mockSvc.searchRuns).To(gomega.BeZero())
		})

		ginkgo.It("should map a missing department to 403 with its code", func() {
			mockSvc.err = department.ErrNoDepartment
			req := requestAs(caller, "/api/v1/employees/search?search_str=immy&page_size=20")
			w := httptest.NewRecorder()

			handler.SearchEmployees(w, req)

			gomega.Expect(w.Code).To(gomega.Equal(http.StatusForbidden))
			gomega.Expect(w.Body.String()).To(gomega.ContainSubstring("AUTHZ_4001"))
		})

		ginkgo.It("should map an empty grant to 403 with its code", func() {
			mockSvc.err = department.ErrNoAccess
			req := requestAs(caller, "/api/v1/employees/search?search_str=immy&page_size=20")
			w := httptest.NewRecorder()

			handler.SearchEmployees(w, req)

			gomega.Expect(w.Code).To(gomega.Equal(http.StatusForbidden))
			gomega.Expect(w.Body.String()).To(gomega.ContainSubstring("AUTHZ_4002"))
		})
	})

	ginkgo.Describe("FilterOptions", func() {
		ginkgo.It("should return the options map", func() {
			req := requestAs(caller, "/api/v1/employees/filters")
			w := httptest.NewRecorder()

			handler.FilterOptions(w, req)

			gomega.Expect(w.Code).To(gomega.Equal(http.StatusOK))

			var body map[string][]string
			gomega.Expect(json.NewDecoder(w.Body).Decode(&body)).To(gomega.Succeed())
			gomega.Expect(body).To(gomega.HaveKeyWithValue("location", []string{"Berlin"}))
		})

		ginkgo.It("should reject requests without an authenticated user", func() {
			req := requestAs(nil, "/api/v1/employees/filters")
			w := httptest.NewRecorder()

			handler.FilterOptions(w, req)

			gomega.Expect(w.Code).To(gomega.Equal(http.StatusUnauthorized))
		})
	})
})
