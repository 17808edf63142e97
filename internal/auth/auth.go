package auth

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/hrtools/employee-directory/internal/user"
)

// Claims represents the signed token payload: subject username plus the
// registered expiry. The token is stateless, there is no revocation list.
type Claims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// AuthToken is the login response payload.
type AuthToken struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// TokenGenerator creates and validates access tokens.
type TokenGenerator interface {
	GenerateAccessToken(username string) (token string, err error)
	ValidateToken(tokenString string) (*Claims, error)
}

// UserRepository is the narrow slice of account persistence auth needs.
type UserRepository interface {
	GetByUsername(username string) (*user.User, error)
}

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")
	ErrTokenExpired       = errors.New("token expired")
	ErrUserInactive       = errors.New("user is inactive")
)

type ctxKey string

const ContextUserKey ctxKey = "user"

func UserFromContext(ctx context.Context) (*user.User, bool) {
	u, ok := ctx.Value(ContextUserKey).(*user.User)
	return u, ok
}

func ContextWithUser(ctx context.Context, u *user.User) context.Context {
	return context.WithValue(ctx, ContextUserKey, u)
}

type JWTTokenGenerator struct {
	Secret         []byte
	AccessTokenTTL time.Duration
}
