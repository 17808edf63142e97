package postgres

import (
	"errors"

	"github.com/hrtools/employee-directory/internal/department"
	"gorm.io/gorm"
)

// DepartmentRepository implements department.Repository using GORM.
type DepartmentRepository struct {
	db *gorm.DB
}

func NewDepartmentRepository(db *gorm.DB) department.Repository {
	return &DepartmentRepository{db: db}
}

func (r *DepartmentRepository) GetByName(name string) (*department.Department, error) {
	var dept department.Department
	err := r.db.Where("name = ?", name).First(&dept).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, department.ErrNotFound
		}
		return nil, err
	}
	return &dept, nil
}

func (r *DepartmentRepository) ListNames() ([]string, error) {
	var names []string
	err := r.db.Model(&department.Department{}).
		Order("name ASC").
		Pluck("name", &names).Error
	return names, err
}
