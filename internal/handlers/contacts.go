package handlers

import (
	"net/http"

	"github.com/carevault/apiserver/internal/services"
	"github.com/carevault/apiserver/types"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type ContactHandler struct {
	contacts *services.ContactService
	logger   *zap.Logger
}

func NewContactHandler(contacts *services.ContactService, logger *zap.Logger) *ContactHandler {
	return &ContactHandler{contacts: contacts, logger: logger}
}

func ContactRouter(r chi.Router, handler *ContactHandler, gates Gates) {
	r.With(gates.Manager).Post("/", handler.Create)
	r.With(gates.Auth).Get("/", handler.List)
}

type ContactRequest struct {
	Name    string  `json:"name" validate:"required,max=200"`
	Role    *string `json:"role"`
	Phone   *string `json:"phone" validate:"omitempty,max=30"`
	Email   *string `json:"email" validate:"omitempty,email"`
	Website *string `json:"website" validate:"omitempty,max=300"`
}

func (h *ContactHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req ContactRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	contact, err := h.contacts.Create(r.Context(), currentUser(r), types.HelpSupportContact{
		Name:    req.Name,
		Role:    req.Role,
		Phone:   req.Phone,
		Email:   req.Email,
		Website: req.Website,
	})
	if err != nil {
		writeServiceError(w, r, h.logger, "create contact", err)
		return
	}
	writeJSON(w, http.StatusCreated, contact)
}

func (h *ContactHandler) List(w http.ResponseWriter, r *http.Request) {
	contacts, err := h.contacts.List(r.Context())
	if err != nil {
		writeServiceError(w, r, h.logger, "list contacts", err)
		return
	}
	writeJSON(w, http.StatusOK, contacts)
}
