package department

import (
	"log/slog"
	"net/http"

	"github.com/hrtools/employee-directory/internal"
	"github.com/hrtools/employee-directory/internal/transport"
	"github.com/hrtools/employee-directory/pkg/logger"
)

type Handler struct {
	*transport.BaseHandler
	Resolver *Resolver
}

func NewHandler(resolver *Resolver) *Handler {
	lg := logger.LoggerWrapper()
	if lg == nil {
		lg = slog.Default()
	}
	return &Handler{
		BaseHandler: transport.NewBaseHandler(lg),
		Resolver:    resolver,
	}
}

// ListDepartments returns provisioned department names. Public: the signup
// form needs the list before any account exists. Grants are never exposed.
func (h *Handler) ListDepartments(w http.ResponseWriter, r *http.Request) {
	names, err := h.Resolver.ListNames()
	if err != nil {
		h.Logger.Error("ListDepartments: repository error", "error", err)
		h.WriteAppError(w, internal.NewInternalError("internal server error", err))
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"departments": names,
	})
}
