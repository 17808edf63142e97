package user

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/hrtools/employee-directory/internal"
	"github.com/hrtools/employee-directory/internal/transport"
	"github.com/hrtools/employee-directory/pkg/logger"
)

type ServiceAPI interface {
	CreateUser(dto SignupDTO) (*User, error)
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(svc ServiceAPI) *Handler {
	lg := logger.LoggerWrapper()
	if lg == nil {
		lg = slog.Default()
	}
	return &Handler{
		BaseHandler: transport.NewBaseHandler(lg),
		Service:     svc,
	}
}

func (h *Handler) Signup(w http.ResponseWriter, r *http.Request) {
	var dto SignupDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	u, err := h.Service.CreateUser(dto)
	if err != nil {
		var verr ValidationError
		switch {
		case errors.As(err, &verr):
			h.WriteAppError(w, internal.NewValidationError(verr.Msg, internal.ErrCodeValidationFailed))
		case errors.Is(err, ErrUsernameExists):
			h.WriteAppError(w, internal.NewConflictError(
				fmt.Sprintf("Username '%s' already exists", dto.Username), internal.ErrCodeUsernameExists))
		case errors.Is(err, ErrEmailExists):
			h.WriteAppError(w, internal.NewConflictError(
				fmt.Sprintf("Email '%s' already exists", dto.Email), internal.ErrCodeEmailExists))
		default:
			h.Logger.Error("Signup: service error", "error", err, "username", dto.Username)
			h.WriteAppError(w, internal.NewInternalError("internal server error", err))
		}
		return
	}

	h.Logger.Info("Signup: account created", "user_id", u.ID, "username", u.Username)
	h.WriteJSON(w, http.StatusCreated, u)
}
