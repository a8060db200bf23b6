package handlers

import (
	"net/http"

	"github.com/carevault/apiserver/internal/services"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type UserHandler struct {
	users  *services.UserService
	logger *zap.Logger
}

func NewUserHandler(users *services.UserService, logger *zap.Logger) *UserHandler {
	return &UserHandler{users: users, logger: logger}
}

// UserRouter registers the manager-only staff listing.
func UserRouter(r chi.Router, handler *UserHandler, gates Gates) {
	r.With(gates.Manager).Get("/", handler.List)
}

func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.users.List(r.Context())
	if err != nil {
		writeServiceError(w, r, h.logger, "list users", err)
		return
	}
	writeJSON(w, http.StatusOK, users)
}
