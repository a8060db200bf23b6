package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/carevault/apiserver/internal/services"
	"github.com/carevault/apiserver/types"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

const (
	formFieldType          = "type"
	formFieldEmployeeID    = "employeeId"
	formFieldOutcome       = "outcome"
	formFieldDescription   = "description"
	formFieldScheduledDate = "scheduledDate"
	formFieldDocument      = "document"
)

type HRActivityHandler struct {
	activities *services.HRActivityService
	maxBytes   int64
	logger     *zap.Logger
}

func NewHRActivityHandler(activities *services.HRActivityService, maxBytes int64, logger *zap.Logger) *HRActivityHandler {
	return &HRActivityHandler{activities: activities, maxBytes: maxBytes, logger: logger}
}

// HRActivityRouter registers /hr-activities routes.
func HRActivityRouter(r chi.Router, handler *HRActivityHandler, gates Gates) {
	r.With(gates.Manager).Post("/", handler.Create)
	r.With(gates.Auth).Get("/", handler.List)
	r.With(gates.Manager).Patch("/{activityID}", handler.UpdateStatus)
	r.With(gates.Auth).Get("/{activityID}/document", handler.Document)
}

// HRActivityForm is the multipart create payload. Title is accepted as an
// alias for outcome.
type HRActivityForm struct {
	Type          string `form:"type" validate:"required,oneof=probation_review disciplinary supervision meeting"`
	EmployeeID    int    `form:"employeeId" validate:"required,min=1"`
	Outcome       string `form:"outcome" validate:"required"`
	Description   string `form:"description"`
	ScheduledDate string `form:"scheduledDate" validate:"required"`
}

// Create accepts a multipart form; the document file is optional.
func (h *HRActivityHandler) Create(w http.ResponseWriter, r *http.Request) {
	if err := parseMultipart(w, r, h.maxBytes); err != nil {
		writeUploadError(w, err)
		return
	}
	defer r.MultipartForm.RemoveAll()

	form := HRActivityForm{
		Type:          strings.TrimSpace(r.FormValue(formFieldType)),
		Outcome:       strings.TrimSpace(r.FormValue(formFieldOutcome)),
		Description:   r.FormValue(formFieldDescription),
		ScheduledDate: r.FormValue(formFieldScheduledDate),
	}
	if form.Outcome == "" {
		form.Outcome = strings.TrimSpace(r.FormValue(formFieldTitle))
	}
	if raw := strings.TrimSpace(r.FormValue(formFieldEmployeeID)); raw != "" {
		id, err := strconv.Atoi(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "employeeId must be a number")
			return
		}
		form.EmployeeID = id
	}
	if err := validate.Struct(form); err != nil {
		writeError(w, http.StatusBadRequest, validationMessage(err))
		return
	}

	scheduled, err := parseDate(formFieldScheduledDate, form.ScheduledDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	upload, closeUpload, err := formUpload(r, formFieldDocument, h.maxBytes)
	if err != nil {
		writeUploadError(w, err)
		return
	}
	defer closeUpload()

	activity, err := h.activities.Create(r.Context(), currentUser(r), types.HRActivity{
		Type:          types.HRActivityType(form.Type),
		Outcome:       form.Outcome,
		Description:   optionalString(form.Description),
		EmployeeID:    form.EmployeeID,
		ScheduledDate: scheduled,
	}, upload)
	if err != nil {
		writeServiceError(w, r, h.logger, "create hr activity", err)
		return
	}
	writeJSON(w, http.StatusCreated, activity)
}

func (h *HRActivityHandler) List(w http.ResponseWriter, r *http.Request) {
	activities, err := h.activities.List(r.Context())
	if err != nil {
		writeServiceError(w, r, h.logger, "list hr activities", err)
		return
	}
	writeJSON(w, http.StatusOK, activities)
}

type HRActivityStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=completed cancelled"`
}

func (h *HRActivityHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "activityID")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req HRActivityStatusRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	activity, err := h.activities.UpdateStatus(r.Context(), currentUser(r), id, types.HRActivityStatus(req.Status))
	if err != nil {
		writeServiceError(w, r, h.logger, "update hr activity", err)
		return
	}
	writeJSON(w, http.StatusOK, activity)
}

func (h *HRActivityHandler) Document(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "activityID")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	file, err := h.activities.OpenDocument(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, h.logger, "open hr document", err)
		return
	}
	serveFile(w, file)
}
