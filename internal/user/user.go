package user

import (
	"errors"
	"time"
)

// User is a directory account. Department is nullable: an account can exist
// before anyone grants it a department, it just cannot search anything yet.
type User struct {
	ID           int64     `json:"id" gorm:"primaryKey"`
	Username     string    `json:"username" gorm:"uniqueIndex;not null"`
	Email        string    `json:"email" gorm:"uniqueIndex;not null"`
	Department   *string   `json:"department,omitempty" gorm:"column:department"`
	PasswordHash string    `json:"-" gorm:"column:password_hash;not null"`
	IsActive     bool      `json:"is_active" gorm:"column:is_active;default:true"`
	CreatedAt    time.Time `json:"created_at" gorm:"column:created_at;default:now()"`
	UpdatedAt    time.Time `json:"updated_at" gorm:"column:updated_at;default:now()"`
}

func (User) TableName() string {
	return "users"
}

// DepartmentName returns the department or "" when unset.
func (u *User) DepartmentName() string {
	if u.Department == nil {
		return ""
	}
	return *u.Department
}

var (
	ErrNotFound       = errors.New("user not found")
	ErrUsernameExists = errors.New("username already exists")
	ErrEmailExists    = errors.New("email already exists")
)

// Repository is the persistence port for accounts.
type Repository interface {
	Create(u *User) error
	GetByUsername(username string) (*User, error)
	GetByEmail(email string) (*User, error)
}
