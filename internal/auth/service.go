package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/hrtools/employee-directory/internal/user"
	"golang.org/x/crypto/bcrypt"
)

// Service performs credential verification and token handling.
type Service struct {
	users          UserRepository
	tokenGenerator TokenGenerator
}

func NewService(users UserRepository, tokenGen TokenGenerator) *Service {
	return &Service{
		users:          users,
		tokenGenerator: tokenGen,
	}
}

func NewJWTTokenGenerator(secret string, accessTTL time.Duration) *JWTTokenGenerator {
	if accessTTL <= 0 {
		accessTTL = 30 * time.Minute
	}
	return &JWTTokenGenerator{
		Secret:         []byte(secret),
		AccessTokenTTL: accessTTL,
	}
}

// Authenticate validates credentials and returns a bearer token. Unknown
// username and wrong password both surface as ErrInvalidCredentials so the
// login endpoint cannot be used to enumerate accounts.
func (s *Service) Authenticate(dto LoginDTO) (AuthToken, error) {
	if err := dto.Validate(); err != nil {
		return AuthToken{}, err
	}

	u, err := s.users.GetByUsername(dto.Username)
	if err != nil {
		return AuthToken{}, ErrInvalidCredentials
	}

	if !u.IsActive {
		return AuthToken{}, ErrUserInactive
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(dto.Password)); err != nil {
		return AuthToken{}, ErrInvalidCredentials
	}

	accessToken, err := s.tokenGenerator.GenerateAccessToken(u.Username)
	if err != nil {
		return AuthToken{}, err
	}

	return AuthToken{
		AccessToken: accessToken,
		TokenType:   "bearer",
	}, nil
}

// ValidateAccessToken validates an access token and returns its claims.
func (s *Service) ValidateAccessToken(tokenString string) (*Claims, error) {
	return s.tokenGenerator.ValidateToken(tokenString)
}

// GetUserByUsername reloads the account behind a validated token. Called on
// every request so department changes apply without re-login.
func (s *Service) GetUserByUsername(username string) (*user.User, error) {
	return s.users.GetByUsername(username)
}

// GenerateAccessToken creates a signed token carrying the subject and an
// absolute expiry at now + TTL.
func (j *JWTTokenGenerator) GenerateAccessToken(username string) (string, error) {
	expiresAt := time.Now().Add(j.AccessTokenTTL)

	claims := &Claims{
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Subject:   username,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(j.Secret)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// ValidateToken parses and verifies a token. Expiry is reported as
// ErrTokenExpired distinct from ErrInvalidToken; both deny access but they
// are logged differently at the boundary.
func (j *JWTTokenGenerator) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return j.Secret, nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrInvalidToken
	}

	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		if claims.Username == "" {
			return nil, ErrInvalidToken
		}
		return claims, nil
	}

	return nil, ErrInvalidToken
}
