package handlers

import (
	"net/http"

	"github.com/carevault/apiserver/internal/services"
	"github.com/carevault/apiserver/types"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type TaskHandler struct {
	tasks  *services.TaskService
	logger *zap.Logger
}

func NewTaskHandler(tasks *services.TaskService, logger *zap.Logger) *TaskHandler {
	return &TaskHandler{tasks: tasks, logger: logger}
}

func TaskRouter(r chi.Router, handler *TaskHandler, gates Gates) {
	r.Use(gates.Auth)
	r.Post("/", handler.Create)
	r.Get("/", handler.List)
}

type TaskRequest struct {
	Title       string  `json:"title" validate:"required,max=200"`
	Description *string `json:"description"`
	Frequency   string  `json:"frequency" validate:"required,oneof=daily weekly monthly"`
	AssignedTo  *int    `json:"assignedTo" validate:"omitempty,min=1"`
	DueDate     *string `json:"dueDate"`
}

func (h *TaskHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req TaskRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	due, err := parseOptionalDate("dueDate", req.DueDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	task, err := h.tasks.Create(r.Context(), currentUser(r), types.Task{
		Title:       req.Title,
		Description: req.Description,
		Frequency:   types.TaskFrequency(req.Frequency),
		AssignedTo:  req.AssignedTo,
		DueDate:     due,
	})
	if err != nil {
		writeServiceError(w, r, h.logger, "create task", err)
		return
	}
	writeJSON(w, http.StatusCreated, task)
}

func (h *TaskHandler) List(w http.ResponseWriter, r *http.Request) {
	tasks, err := h.tasks.List(r.Context())
	if err != nil {
		writeServiceError(w, r, h.logger, "list tasks", err)
		return
	}
	writeJSON(w, http.StatusOK, tasks)
}
