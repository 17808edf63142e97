package department

import (
	"errors"
	"strings"
	"time"
)

// Department owns the column grant for its members. AuthorizedColumns is
// stored comma-joined; it is decoded exactly once, at the resolver edge, and
// only the decoded ordered slice travels further into the pipeline.
type Department struct {
	ID                int64     `json:"id" gorm:"primaryKey"`
	Name              string    `json:"name" gorm:"uniqueIndex;not null"`
	AuthorizedColumns *string   `json:"-" gorm:"column:authorized_columns"`
	CreatedAt         time.Time `json:"created_at" gorm:"column:created_at;default:now()"`
	UpdatedAt         time.Time `json:"updated_at" gorm:"column:updated_at;default:now()"`
}

func (Department) TableName() string {
	return "departments"
}

var (
	// ErrNoDepartment covers both "user has no department set" and "the named
	// department does not exist": from the caller's side the effect is the
	// same, no grants.
	ErrNoDepartment = errors.New("user has no assigned department")
	// ErrNoAccess means the department exists but grants no columns.
	ErrNoAccess = errors.New("department has no authorized columns")
)

// Repository is the persistence port for departments.
type Repository interface {
	GetByName(name string) (*Department, error)
	ListNames() ([]string, error)
}

var ErrNotFound = errors.New("department not found")

// Columns decodes the stored grant into its configured order. Empty entries
// from stray commas are dropped; values keep their stored casing.
func (d *Department) Columns() []string {
	if d.AuthorizedColumns == nil {
		return nil
	}
	raw := strings.Split(*d.AuthorizedColumns, ",")
	cols := make([]string, 0, len(raw))
	for _, c := range raw {
		c = strings.TrimSpace(c)
		if c != "" {
			cols = append(cols, c)
		}
	}
	return cols
}
