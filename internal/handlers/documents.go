package handlers

import (
	"net/http"
	"strings"

	"github.com/carevault/apiserver/internal/services"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

const (
	formFieldTitle      = "title"
	formFieldCategory   = "category"
	formFieldSection    = "section"
	formFieldReviewDate = "reviewDate"
)

// DocumentHandler serves the document vaults and resident folders.
type DocumentHandler struct {
	documents *services.DocumentService
	maxBytes  int64
	logger    *zap.Logger
}

func NewDocumentHandler(documents *services.DocumentService, maxBytes int64, logger *zap.Logger) *DocumentHandler {
	return &DocumentHandler{documents: documents, maxBytes: maxBytes, logger: logger}
}

// DocumentRouter registers /documents routes.
func DocumentRouter(r chi.Router, handler *DocumentHandler, gates Gates) {
	r.With(gates.Manager).Post("/", handler.Upload)
	r.With(gates.Manager).Get("/", handler.List)
	r.With(gates.Manager).Get("/files/{documentID}", handler.Download)
	r.With(gates.Auth).Get("/{type}", handler.ListByType)
}

// FolderRouter registers /yp-folder routes.
func FolderRouter(r chi.Router, handler *DocumentHandler, gates Gates) {
	r.Route("/{youngPersonID}/documents", func(r chi.Router) {
		r.Use(gates.Auth)
		r.Post("/", handler.UploadToFolder)
		r.Get("/", handler.ListFolder)
		r.Get("/{documentID}/file", handler.DownloadFromFolder)
	})
}

// Upload stores a vault document from a multipart form.
func (h *DocumentHandler) Upload(w http.ResponseWriter, r *http.Request) {
	if err := parseMultipart(w, r, h.maxBytes); err != nil {
		writeUploadError(w, err)
		return
	}
	defer r.MultipartForm.RemoveAll()

	upload, closeUpload, err := formUpload(r, formFieldFile, h.maxBytes)
	if err != nil {
		writeUploadError(w, err)
		return
	}
	defer closeUpload()
	if upload == nil {
		writeError(w, http.StatusBadRequest, "file is required")
		return
	}

	reviewDate, err := parseOptionalDate(formFieldReviewDate, optionalString(r.FormValue(formFieldReviewDate)))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	doc, err := h.documents.Upload(r.Context(), currentUser(r), services.DocumentInput{
		Title:      r.FormValue(formFieldTitle),
		Section:    r.FormValue(formFieldSection),
		Category:   r.FormValue(formFieldCategory),
		ReviewDate: reviewDate,
	}, upload)
	if err != nil {
		writeServiceError(w, r, h.logger, "upload document", err)
		return
	}
	writeJSON(w, http.StatusCreated, doc)
}

func (h *DocumentHandler) List(w http.ResponseWriter, r *http.Request) {
	docs, err := h.documents.List(r.Context())
	if err != nil {
		writeServiceError(w, r, h.logger, "list documents", err)
		return
	}
	writeJSON(w, http.StatusOK, docs)
}

// ListByType filters by section ("business", "hr") or by category name.
func (h *DocumentHandler) ListByType(w http.ResponseWriter, r *http.Request) {
	docs, err := h.documents.ListByType(r.Context(), chi.URLParam(r, "type"))
	if err != nil {
		writeServiceError(w, r, h.logger, "list documents", err)
		return
	}
	writeJSON(w, http.StatusOK, docs)
}

func (h *DocumentHandler) Download(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "documentID")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	_, file, err := h.documents.Open(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, h.logger, "open document", err)
		return
	}
	serveFile(w, file)
}

func (h *DocumentHandler) UploadToFolder(w http.ResponseWriter, r *http.Request) {
	youngPersonID, err := parseIDParam(r, "youngPersonID")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := parseMultipart(w, r, h.maxBytes); err != nil {
		writeUploadError(w, err)
		return
	}
	defer r.MultipartForm.RemoveAll()

	upload, closeUpload, err := formUpload(r, formFieldFile, h.maxBytes)
	if err != nil {
		writeUploadError(w, err)
		return
	}
	defer closeUpload()
	if upload == nil {
		writeError(w, http.StatusBadRequest, "file is required")
		return
	}

	doc, err := h.documents.UploadToFolder(
		r.Context(),
		currentUser(r),
		youngPersonID,
		r.FormValue(formFieldTitle),
		r.FormValue(formFieldCategory),
		upload,
	)
	if err != nil {
		writeServiceError(w, r, h.logger, "upload folder document", err)
		return
	}
	writeJSON(w, http.StatusCreated, doc)
}

func (h *DocumentHandler) ListFolder(w http.ResponseWriter, r *http.Request) {
	youngPersonID, err := parseIDParam(r, "youngPersonID")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	docs, err := h.documents.ListFolder(r.Context(), youngPersonID, strings.TrimSpace(r.URL.Query().Get("category")))
	if err != nil {
		writeServiceError(w, r, h.logger, "list folder documents", err)
		return
	}
	writeJSON(w, http.StatusOK, docs)
}

func (h *DocumentHandler) DownloadFromFolder(w http.ResponseWriter, r *http.Request) {
	youngPersonID, err := parseIDParam(r, "youngPersonID")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	id, err := parseIDParam(r, "documentID")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	_, file, err := h.documents.OpenFolderDocument(r.Context(), youngPersonID, id)
	if err != nil {
		writeServiceError(w, r, h.logger, "open folder document", err)
		return
	}
	serveFile(w, file)
}
