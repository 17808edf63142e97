package user

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// Service handles account lifecycle. Password hashing happens here so the
// repository only ever sees hashes.
type Service struct {
	repo       Repository
	bcryptCost int
}

func NewService(repo Repository, bcryptCost int) *Service {
	if bcryptCost == 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	return &Service{
		repo:       repo,
		bcryptCost: bcryptCost,
	}
}

// CreateUser registers a new account. Username and email uniqueness is
// checked before the insert so the caller gets a named conflict instead of a
// driver error; the database constraints remain the authority under races.
func (s *Service) CreateUser(dto SignupDTO) (*User, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	if existing, err := s.repo.GetByUsername(dto.Username); err == nil && existing != nil {
		return nil, ErrUsernameExists
	} else if err != nil && !errors.Is(err, ErrNotFound) {
		return nil, fmt.Errorf("check username: %w", err)
	}

	if existing, err := s.repo.GetByEmail(dto.Email); err == nil && existing != nil {
		return nil, ErrEmailExists
	} else if err != nil && !errors.Is(err, ErrNotFound) {
		return nil, fmt.Errorf("check email: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(dto.Password), s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	u := dto.ToUser()
	u.PasswordHash = string(hash)

	if err := s.repo.Create(u); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return u, nil
}

// GetByUsername exposes account lookup for the auth layer.
func (s *Service) GetByUsername(username string) (*User, error) {
	return s.repo.GetByUsername(username)
}
