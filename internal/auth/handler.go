package auth

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/hrtools/employee-directory/internal"
	"github.com/hrtools/employee-directory/internal/core/events"
	"github.com/hrtools/employee-directory/internal/transport"
	"github.com/hrtools/employee-directory/internal/user"
	"github.com/hrtools/employee-directory/pkg/logger"
)

type ServiceAPI interface {
	Authenticate(dto LoginDTO) (AuthToken, error)
	ValidateAccessToken(tokenString string) (*Claims, error)
	GetUserByUsername(username string) (*user.User, error)
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
	Events  *events.EventBus
}

func NewHandler(svc ServiceAPI, bus *events.EventBus) *Handler {
	lg := logger.LoggerWrapper()
	if lg == nil {
		lg = slog.Default()
	}
	return &Handler{
		BaseHandler: transport.NewBaseHandler(lg),
		Service:     svc,
		Events:      bus,
	}
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var dto LoginDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	token, err := h.Service.Authenticate(dto)
	if err != nil {
		var verr ValidationError
		switch {
		case errors.As(err, &verr):
			h.WriteAppError(w, internal.NewValidationError(verr.Msg, internal.ErrCodeValidationFailed))
		case errors.Is(err, ErrInvalidCredentials):
			h.Logger.Warn("login rejected: invalid credentials", "username", dto.Username)
			h.publishLoginFailed(r, dto.Username)
			h.WriteAppError(w, internal.ErrInvalidCredentials)
		case errors.Is(err, ErrUserInactive):
			h.Logger.Warn("login rejected: inactive account", "username", dto.Username)
			h.publishLoginFailed(r, dto.Username)
			h.WriteAppError(w, internal.ErrInvalidCredentials)
		default:
			h.Logger.Error("login failed", "error", err)
			h.WriteAppError(w, internal.NewInternalError("internal server error", err))
		}
		return
	}

	h.WriteJSON(w, http.StatusOK, token)
}

// AuthMiddleware validates the bearer token and loads the account into the
// request context. Runs before rate limiting and all query logic.
func (h *Handler) AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := h.ExtractTokenFromHeader(r)
		if token == "" {
			h.WriteAppError(w, internal.ErrMissingToken)
			return
		}

		claims, err := h.Service.ValidateAccessToken(token)
		if err != nil {
			switch {
			case errors.Is(err, ErrTokenExpired):
				h.Logger.Warn("auth middleware: token expired")
				h.WriteAppError(w, internal.ErrTokenExpired)
			default:
				h.Logger.Warn("auth middleware: token rejected", "error", err)
				h.WriteAppError(w, internal.ErrInvalidToken)
			}
			return
		}

		u, err := h.Service.GetUserByUsername(claims.Username)
		if err != nil {
			h.Logger.Warn("auth middleware: account behind token not found", "username", claims.Username)
			h.WriteAppError(w, internal.ErrInvalidToken)
			return
		}

		next.ServeHTTP(w, r.WithContext(ContextWithUser(r.Context(), u)))
	})
}

func (h *Handler) publishLoginFailed(r *http.Request, username string) {
	if h.Events == nil {
		return
	}
	h.Events.Publish(r.Context(), events.NewLoginFailedEvent(username))
}
