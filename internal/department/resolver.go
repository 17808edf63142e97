package department

import (
	"errors"
	"fmt"

	"github.com/hrtools/employee-directory/internal/user"
)

// Resolver maps an authenticated account to the ordered set of columns its
// department may read. Grants are resolved fresh on every request; nothing is
// cached, so a changed grant applies to the very next search.
type Resolver struct {
	repo Repository
}

func NewResolver(repo Repository) *Resolver {
	return &Resolver{repo: repo}
}

// ResolveDepartment finds the department behind an account. Fails with
// ErrNoDepartment when the account has no department set or the named
// department is not provisioned.
func (r *Resolver) ResolveDepartment(u *user.User) (*Department, error) {
	name := u.DepartmentName()
	if name == "" {
		return nil, ErrNoDepartment
	}

	dept, err := r.repo.GetByName(name)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrNoDepartment
		}
		return nil, fmt.Errorf("lookup department %q: %w", name, err)
	}
	return dept, nil
}

// ResolveColumns decodes the department's grant. Fails with ErrNoAccess when
// the grant is null or empty. The returned order is the department's
// configured order and becomes the response column manifest.
func (r *Resolver) ResolveColumns(dept *Department) ([]string, error) {
	cols := dept.Columns()
	if len(cols) == 0 {
		return nil, ErrNoAccess
	}
	return cols, nil
}

// ResolveGrant chains department and column resolution.
func (r *Resolver) ResolveGrant(u *user.User) ([]string, error) {
	dept, err := r.ResolveDepartment(u)
	if err != nil {
		return nil, err
	}
	return r.ResolveColumns(dept)
}

// ListNames returns all provisioned department names, for the signup form.
func (r *Resolver) ListNames() ([]string, error) {
	return r.repo.ListNames()
}
