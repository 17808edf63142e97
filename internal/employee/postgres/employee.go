package postgres

import (
	"context"
	"fmt"

	"github.com/hrtools/employee-directory/internal/employee"
	"gorm.io/gorm"
)

// EmployeeRepository implements employee.Repository using GORM. Every method
// opens a request-scoped session via WithContext so the caller's deadline
// propagates to the driver.
type EmployeeRepository struct {
	db *gorm.DB
}

func NewEmployeeRepository(db *gorm.DB) employee.Repository {
	return &EmployeeRepository{db: db}
}

func (r *EmployeeRepository) Search(ctx context.Context, searchStr string, preds []employee.Predicate, offset, limit int) ([]*employee.Employee, error) {
	var rows []*employee.Employee
	err := r.db.WithContext(ctx).
		Scopes(employee.SearchScope(searchStr, preds)).
		Order("last_name ASC, first_name ASC, id ASC").
		Offset(offset).
		Limit(limit).
		Find(&rows).Error
	return rows, err
}

func (r *EmployeeRepository) Count(ctx context.Context, searchStr string, preds []employee.Predicate) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&employee.Employee{}).
		Scopes(employee.SearchScope(searchStr, preds)).
		Count(&count).Error
	return count, err
}

// DistinctValues lists the distinct non-null values of a column. The column
// name comes from the field descriptor table, never from user input.
func (r *EmployeeRepository) DistinctValues(ctx context.Context, column string) ([]string, error) {
	var values []string
	err := r.db.WithContext(ctx).
		Model(&employee.Employee{}).
		Distinct(column).
		Where(fmt.Sprintf("%s IS NOT NULL", column)).
		Order(fmt.Sprintf("%s ASC", column)).
		Pluck(column, &values).Error
	return values, err
}
