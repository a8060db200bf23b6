package handlers

import (
	"net/http"

	"github.com/carevault/apiserver/internal/services"
	"github.com/carevault/apiserver/types"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// ShiftLogHandler serves shift log entries.
type ShiftLogHandler struct {
	shiftLogs *services.ShiftLogService
	logger    *zap.Logger
}

func NewShiftLogHandler(shiftLogs *services.ShiftLogService, logger *zap.Logger) *ShiftLogHandler {
	return &ShiftLogHandler{shiftLogs: shiftLogs, logger: logger}
}

// ShiftLogRouter registers /shift-logs routes.
func ShiftLogRouter(r chi.Router, handler *ShiftLogHandler, gates Gates) {
	r.Use(gates.Auth)
	r.Post("/", handler.Create)
	r.Get("/", handler.List)
}

type ShiftLogRequest struct {
	YoungPersonID int     `json:"youngPersonId"`
	ShiftDate     string  `json:"shiftDate" validate:"required"`
	ShiftType     string  `json:"shiftType" validate:"required,oneof=morning afternoon night"`
	LogType       string  `json:"logType" validate:"required,oneof=daily grumbles takeaway missing found"`
	Content       string  `json:"content" validate:"required"`
	Concerns      *string `json:"concerns"`
}

func (h *ShiftLogHandler) Create(w http.ResponseWriter, r *http.Request) {
	h.create(w, r, 0)
}

// CreateForYoungPerson takes the resident id from the path.
func (h *ShiftLogHandler) CreateForYoungPerson(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "youngPersonID")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	h.create(w, r, id)
}

func (h *ShiftLogHandler) create(w http.ResponseWriter, r *http.Request, youngPersonID int) {
	var req ShiftLogRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if youngPersonID == 0 {
		youngPersonID = req.YoungPersonID
	}
	if youngPersonID < 1 {
		writeError(w, http.StatusBadRequest, "youngPersonId is required")
		return
	}

	shiftDate, err := parseDate("shiftDate", req.ShiftDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	entry, err := h.shiftLogs.Create(r.Context(), currentUser(r), types.ShiftLog{
		YoungPersonID: youngPersonID,
		ShiftType:     types.ShiftType(req.ShiftType),
		LogType:       types.LogType(req.LogType),
		Content:       req.Content,
		Concerns:      req.Concerns,
		ShiftDate:     shiftDate,
	})
	if err != nil {
		writeServiceError(w, r, h.logger, "create shift log", err)
		return
	}
	writeJSON(w, http.StatusCreated, entry)
}

// List accepts optional limit and youngPersonId query parameters.
func (h *ShiftLogHandler) List(w http.ResponseWriter, r *http.Request) {
	youngPersonID, err := parseOptionalInt(r.URL.Query().Get("youngPersonId"))
	if err != nil || youngPersonID < 0 {
		writeError(w, http.StatusBadRequest, "invalid youngPersonId")
		return
	}
	h.list(w, r, youngPersonID)
}

func (h *ShiftLogHandler) ListForYoungPerson(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "youngPersonID")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	h.list(w, r, id)
}

func (h *ShiftLogHandler) list(w http.ResponseWriter, r *http.Request, youngPersonID int) {
	limit, err := parseOptionalInt(r.URL.Query().Get("limit"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid limit")
		return
	}

	entries, err := h.shiftLogs.List(r.Context(), types.ShiftLogFilter{
		YoungPersonID: youngPersonID,
		Limit:         limit,
	})
	if err != nil {
		writeServiceError(w, r, h.logger, "list shift logs", err)
		return
	}
	writeJSON(w, http.StatusOK, entries)
}
