package handlers

import (
	"net/http"
	"strings"

	"github.com/carevault/apiserver/internal/services"
	"github.com/carevault/apiserver/types"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// YoungPersonHandler serves resident case files and their shift logs.
type YoungPersonHandler struct {
	people    *services.YoungPersonService
	shiftLogs *ShiftLogHandler
	logger    *zap.Logger
}

func NewYoungPersonHandler(people *services.YoungPersonService, shiftLogs *ShiftLogHandler, logger *zap.Logger) *YoungPersonHandler {
	return &YoungPersonHandler{people: people, shiftLogs: shiftLogs, logger: logger}
}

// YoungPersonRouter registers /young-people routes.
func YoungPersonRouter(r chi.Router, handler *YoungPersonHandler, gates Gates) {
	r.With(gates.Manager).Post("/", handler.Create)
	r.With(gates.Auth).Get("/", handler.List)
	r.Route("/{youngPersonID}", func(r chi.Router) {
		r.Use(gates.Auth)
		r.Get("/", handler.Get)
		r.Patch("/", handler.Update)
		r.Post("/shift-logs", handler.shiftLogs.CreateForYoungPerson)
		r.Get("/shift-logs", handler.shiftLogs.ListForYoungPerson)
	})
}

func (h *YoungPersonHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req YoungPersonRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}

	dob, err := parseDate("dateOfBirth", req.DateOfBirth)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	patch, err := req.YoungPersonFields.patch()
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	person := types.YoungPerson{Name: req.Name, DateOfBirth: dob}
	patch.Apply(&person)

	created, err := h.people.Create(r.Context(), currentUser(r), person)
	if err != nil {
		writeServiceError(w, r, h.logger, "create young person", err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (h *YoungPersonHandler) List(w http.ResponseWriter, r *http.Request) {
	people, err := h.people.List(r.Context())
	if err != nil {
		writeServiceError(w, r, h.logger, "list young people", err)
		return
	}
	writeJSON(w, http.StatusOK, people)
}

func (h *YoungPersonHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "youngPersonID")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	person, err := h.people.Get(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, h.logger, "fetch young person", err)
		return
	}
	writeJSON(w, http.StatusOK, person)
}

// Update applies a partial patch. Unknown fields are rejected.
func (h *YoungPersonHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "youngPersonID")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req YoungPersonPatchRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	patch, err := req.YoungPersonFields.patch()
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	patch.Name = req.Name
	if req.DateOfBirth != nil {
		dob, err := parseDate("dateOfBirth", *req.DateOfBirth)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		patch.DateOfBirth = &dob
	}

	updated, err := h.people.Update(r.Context(), currentUser(r), id, patch)
	if err != nil {
		writeServiceError(w, r, h.logger, "update young person", err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// YoungPersonFields are the optional profile fields shared by create and
// patch requests.
type YoungPersonFields struct {
	DateAdmitted *string `json:"dateAdmitted"`

	Gender         *string `json:"gender" validate:"omitempty,max=50"`
	LocalAuthority *string `json:"localAuthority"`
	RoomNumber     *string `json:"roomNumber" validate:"omitempty,max=20"`
	PhoneNumber    *string `json:"phoneNumber" validate:"omitempty,max=30"`

	Allergies   *string `json:"allergies"`
	Conditions  *string `json:"conditions"`
	Medications *string `json:"medications"`
	Notes       *string `json:"notes"`

	NextOfKinName  *string `json:"nextOfKinName"`
	NextOfKinPhone *string `json:"nextOfKinPhone"`
	NextOfKinEmail *string `json:"nextOfKinEmail" validate:"omitempty,email"`

	SocialWorkerName  *string `json:"socialWorkerName"`
	SocialWorkerPhone *string `json:"socialWorkerPhone"`
	SocialWorkerEmail *string `json:"socialWorkerEmail" validate:"omitempty,email"`

	SchoolName    *string `json:"schoolName"`
	SchoolContact *string `json:"schoolContact"`
	SchoolPhone   *string `json:"schoolPhone"`
	SchoolEmail   *string `json:"schoolEmail" validate:"omitempty,email"`
	SchoolDays    *string `json:"schoolDays"`
}

func (f YoungPersonFields) patch() (types.YoungPersonPatch, error) {
	admitted, err := parseOptionalDate("dateAdmitted", f.DateAdmitted)
	if err != nil {
		return types.YoungPersonPatch{}, err
	}
	return types.YoungPersonPatch{
		DateAdmitted:      admitted,
		Gender:            f.Gender,
		LocalAuthority:    f.LocalAuthority,
		RoomNumber:        f.RoomNumber,
		PhoneNumber:       f.PhoneNumber,
		Allergies:         f.Allergies,
		Conditions:        f.Conditions,
		Medications:       f.Medications,
		Notes:             f.Notes,
		NextOfKinName:     f.NextOfKinName,
		NextOfKinPhone:    f.NextOfKinPhone,
		NextOfKinEmail:    f.NextOfKinEmail,
		SocialWorkerName:  f.SocialWorkerName,
		SocialWorkerPhone: f.SocialWorkerPhone,
		SocialWorkerEmail: f.SocialWorkerEmail,
		SchoolName:        f.SchoolName,
		SchoolContact:     f.SchoolContact,
		SchoolPhone:       f.SchoolPhone,
		SchoolEmail:       f.SchoolEmail,
		SchoolDays:        f.SchoolDays,
	}, nil
}

type YoungPersonRequest struct {
	Name        string `json:"name" validate:"required,max=200"`
	DateOfBirth string `json:"dateOfBirth" validate:"required"`
	YoungPersonFields
}

type YoungPersonPatchRequest struct {
	Name        *string `json:"name" validate:"omitempty,max=200"`
	DateOfBirth *string `json:"dateOfBirth"`
	YoungPersonFields
}
