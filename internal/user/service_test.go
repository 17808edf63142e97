package user

import (
	"testing"

	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"
	"golang.org/x/crypto/bcrypt"
)

func TestUser(t *testing.T) {
	gomega.RegisterFailHandler(ginkgo.Fail)
	ginkgo.RunSpecs(t, "User Module Suite")
}

type mockUserRepository struct {
	byUsername  map[string]*User
	byEmail     map[string]*User
	createCalls int
	created     *User
}

func newMockUserRepository() *mockUserRepository {
	existing := &User{ID: 1, Username: "taken", Email: "taken@example.com"}
	return &mockUserRepository{
		byUsername: map[string]*User{"taken": existing},
		byEmail:    map[string]*User{"taken@example.com": existing},
	}
}

func (m *mockUserRepository) Create(u *User) error {
	m.createCalls++
	m.created = u
	u.ID = 42
	return nil
}

func (m *mockUserRepository) GetByUsername(username string) (*User, error) {
	if u, ok := m.byUsername[username]; ok {
		return u, nil
	}
	return nil, ErrNotFound
}

func (m *mockUserRepository) GetByEmail(email string) (*User, error) {
	if u, ok := m.byEmail[email]; ok {
		return u, nil
	}
	return nil, ErrNotFound
}

var _ = ginkgo.Describe("UserService", func() {
	var (
		service  *Service
		mockRepo *mockUserRepository
	)

	validDTO := func() SignupDTO {
		return SignupDTO{
			Username:   "user03",
			Email:      "User03@Example.com",
			Password:   "Password123",
			Department: "Headquarters",
		}
	}

	ginkgo.BeforeEach(func() {
		mockRepo = newMockUserRepository()
		service = NewService(mockRepo, bcrypt.MinCost)
	})

	ginkgo.Describe("CreateUser", func() {
		ginkgo.It("should create the account with a hashed password", func() {
			u, err := service.CreateUser(validDTO())

			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(u.ID).To(gomega.Equal(int64(42)))
			gomega.Expect(u.PasswordHash).ToNot(gomega.Equal("Password123"))
			gomega.Expect(bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("Password123"))).To(gomega.Succeed())
		})

		ginkgo.It("should lowercase the email and keep the department", func() {
			u, err := service.CreateUser(validDTO())

			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(u.Email).To(gomega.Equal("user03@example.com"))
			gomega.Expect(u.DepartmentName()).To(gomega.Equal("Headquarters"))
		})

		ginkgo.It("should allow signup without a department", func() {
			dto := validDTO()
			dto.Department = ""

			u, err := service.CreateUser(dto)

			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(u.Department).To(gomega.BeNil())
		})

		ginkgo.It("should reject a taken username before inserting", func() {
			dto := validDTO()
			dto.Username = "taken"

			_, err := service.CreateUser(dto)

			gomega.Expect(err).To(gomega.MatchError(ErrUsernameExists))
			gomega.Expect(mockRepo.createCalls).To(gomega.BeZero())
		})

		ginkgo.It("should reject a taken email before inserting", func() {
			dto := validDTO()
			dto.Email = "taken@example.com"

			_, err := service.CreateUser(dto)

			gomega.Expect(err).To(gomega.MatchError(ErrEmailExists))
			gomega.Expect(mockRepo.createCalls).To(gomega.BeZero())
		})

		ginkgo.DescribeTable("validation failures",
			func(mutate func(*SignupDTO)) {
				dto := validDTO()
				mutate(&dto)

				_, err := service.CreateUser(dto)

				var verr ValidationError
				gomega.Expect(err).To(gomega.BeAssignableToTypeOf(verr))
				gomega.Expect(mockRepo.createCalls).To(gomega.BeZero())
			},
			ginkgo.Entry("empty username", func(d *SignupDTO) { d.Username = "" }),
			ginkgo.Entry("username with spaces", func(d *SignupDTO) { d.Username = "user 03" }),
			ginkgo.Entry("username too short", func(d *SignupDTO) { d.Username = "ab" }),
			ginkgo.Entry("malformed email", func(d *SignupDTO) { d.Email = "not-an-email" }),
			ginkgo.Entry("short password", func(d *SignupDTO) { d.Password = "Ab1" }),
			ginkgo.Entry("password without digits", func(d *SignupDTO) { d.Password = "PasswordOnly" }),
			ginkgo.Entry("password without uppercase", func(d *SignupDTO) { d.Password = "password123" }),
		)
	})
})
