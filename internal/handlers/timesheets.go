package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/carevault/apiserver/internal/services"
	"github.com/carevault/apiserver/types"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type TimesheetHandler struct {
	timesheets *services.TimesheetService
	logger     *zap.Logger
}

func NewTimesheetHandler(timesheets *services.TimesheetService, logger *zap.Logger) *TimesheetHandler {
	return &TimesheetHandler{timesheets: timesheets, logger: logger}
}

// TimesheetRouter registers /timesheets routes.
func TimesheetRouter(r chi.Router, handler *TimesheetHandler, gates Gates) {
	r.With(gates.Auth).Post("/", handler.Submit)
	r.With(gates.Auth).Get("/", handler.ListOwn)
	r.With(gates.Manager).Get("/all", handler.ListAll)
	r.With(gates.Manager).Get("/export", handler.Export)
	r.With(gates.Manager).Patch("/{timesheetID}", handler.Review)
}

// TimesheetRequest carries a shift. TimeIn and TimeOut may be full
// date-times or a clock time ("08:00") on ShiftDate.
type TimesheetRequest struct {
	ShiftDate string  `json:"shiftDate" validate:"required"`
	TimeIn    string  `json:"timeIn" validate:"required"`
	TimeOut   string  `json:"timeOut" validate:"required"`
	IsSleepIn bool    `json:"isSleepIn"`
	Notes     *string `json:"notes"`
}

func (req TimesheetRequest) timesheet() (types.Timesheet, error) {
	shiftDate, err := parseDate("shiftDate", req.ShiftDate)
	if err != nil {
		return types.Timesheet{}, err
	}
	day := time.Date(shiftDate.Year(), shiftDate.Month(), shiftDate.Day(), 0, 0, 0, 0, shiftDate.Location())
	timeIn, err := parseClock("timeIn", req.TimeIn, day)
	if err != nil {
		return types.Timesheet{}, err
	}
	timeOut, err := parseClock("timeOut", req.TimeOut, day)
	if err != nil {
		return types.Timesheet{}, err
	}
	return types.Timesheet{
		ShiftDate: day,
		TimeIn:    timeIn,
		TimeOut:   timeOut,
		IsSleepIn: req.IsSleepIn,
		Notes:     req.Notes,
	}, nil
}

func (h *TimesheetHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req TimesheetRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	ts, err := req.timesheet()
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	created, err := h.timesheets.Submit(r.Context(), currentUser(r), ts)
	if err != nil {
		writeServiceError(w, r, h.logger, "submit timesheet", err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (h *TimesheetHandler) ListOwn(w http.ResponseWriter, r *http.Request) {
	items, err := h.timesheets.ListOwn(r.Context(), currentUser(r))
	if err != nil {
		writeServiceError(w, r, h.logger, "list timesheets", err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (h *TimesheetHandler) ListAll(w http.ResponseWriter, r *http.Request) {
	items, err := h.timesheets.ListAll(r.Context())
	if err != nil {
		writeServiceError(w, r, h.logger, "list timesheets", err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

type TimesheetReviewRequest struct {
	Status string `json:"status" validate:"required,oneof=approved rejected"`
}

// Review approves or rejects a pending timesheet. A second review is a
// conflict.
func (h *TimesheetHandler) Review(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "timesheetID")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req TimesheetReviewRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	reviewed, err := h.timesheets.Review(r.Context(), currentUser(r), id, types.TimesheetStatus(req.Status))
	if err != nil {
		writeServiceError(w, r, h.logger, "review timesheet", err)
		return
	}
	writeJSON(w, http.StatusOK, reviewed)
}

func (h *TimesheetHandler) Export(w http.ResponseWriter, r *http.Request) {
	data, err := h.timesheets.Export(r.Context())
	if err != nil {
		writeServiceError(w, r, h.logger, "export timesheets", err)
		return
	}

	filename := fmt.Sprintf("timesheets-%s.xlsx", time.Now().UTC().Format("20060102"))
	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}
