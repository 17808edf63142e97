package employee

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/hrtools/employee-directory/internal"
	"github.com/hrtools/employee-directory/internal/auth"
	"github.com/hrtools/employee-directory/internal/department"
	"github.com/hrtools/employee-directory/internal/transport"
	"github.com/hrtools/employee-directory/internal/user"
	"github.com/hrtools/employee-directory/pkg/logger"
)

// queryTimeout bounds the whole search pipeline per request.
const queryTimeout = 10 * time.Second

type ServiceAPI interface {
	Search(ctx context.Context, u *user.User, dto SearchDTO) (*SearchResult, error)
	FilterOptions(ctx context.Context, u *user.User) (map[string][]string, error)
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(service ServiceAPI) *Handler {
	lg := logger.LoggerWrapper()
	if lg == nil {
		lg = slog.Default()
	}
	return &Handler{
		BaseHandler: transport.NewBaseHandler(lg),
		Service:     service,
	}
}

func (h *Handler) SearchEmployees(w http.ResponseWriter, r *http.Request) {
	u, ok := auth.UserFromContext(r.Context())
	if !ok || u == nil {
		h.Logger.Error("SearchEmployees: user not found in context")
		h.WriteAppError(w, internal.ErrMissingToken)
		return
	}

	dto, appErr := ParseSearchDTO(r.URL.Query())
	if appErr != nil {
		h.WriteAppError(w, appErr)
		return
	}

	ctx, cancel := internal.WithTimeout(r.Context(), queryTimeout)
	defer cancel()

	result, err := h.Service.Search(ctx, u, dto)
	if err != nil {
		h.handlePipelineError(w, err, u.Username)
		return
	}

	h.WriteJSON(w, http.StatusOK, result)
}

func (h *Handler) FilterOptions(w http.ResponseWriter, r *http.Request) {
	u, ok := auth.UserFromContext(r.Context())
	if !ok || u == nil {
		h.Logger.Error("FilterOptions: user not found in context")
		h.WriteAppError(w, internal.ErrMissingToken)
		return
	}

	ctx, cancel := internal.WithTimeout(r.Context(), queryTimeout)
	defer cancel()

	options, err := h.Service.FilterOptions(ctx, u)
	if err != nil {
		h.handlePipelineError(w, err, u.Username)
		return
	}

	h.WriteJSON(w, http.StatusOK, options)
}

func (h *Handler) handlePipelineError(w http.ResponseWriter, err error, username string) {
	switch {
	case errors.Is(err, department.ErrNoDepartment):
		h.Logger.Warn("search denied: no department", "username", username)
		h.WriteAppError(w, internal.ErrNoDepartment)
	case errors.Is(err, department.ErrNoAccess):
		h.Logger.Warn("search denied: department grants no columns", "username", username)
		h.WriteAppError(w, internal.ErrNoAccess)
	default:
		h.Logger.Error("search pipeline error", "error", err, "username", username)
		h.HandleServiceError(w, err)
	}
}
