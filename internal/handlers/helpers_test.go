package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/carevault/apiserver/config"
	"github.com/carevault/apiserver/internal/services"
	"github.com/carevault/apiserver/internal/session"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const testUploadLimit = 1 << 20

type testServer struct {
	handler http.Handler
	db      *memDB
	files   *memFiles
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	db := &memDB{}
	files := &memFiles{objects: map[string][]byte{}}
	logger := zap.NewNop()

	users := memUsers{db: db}
	people := memPeople{db: db}

	userService := services.NewUserService(users, nil)
	peopleService := services.NewYoungPersonService(people, nil)
	shiftLogService := services.NewShiftLogService(memShiftLogs{db: db}, nil)
	documentService := services.NewDocumentService(memDocuments{db: db}, memYPDocuments{db: db}, people, files, nil, logger)
	hrService := services.NewHRActivityService(memActivities{db: db}, users, files, nil, logger)
	timesheetService := services.NewTimesheetService(memTimesheets{db: db}, nil)

	shiftLogs := NewShiftLogHandler(shiftLogService, logger)
	api := API{
		Auth: NewAuthHandler(userService, session.NewMemoryRevoker(), config.AuthConfig{
			JWTSecret: "test-secret",
			TokenTTL:  time.Hour,
		}, logger),
		Users:        NewUserHandler(userService, logger),
		YoungPeople:  NewYoungPersonHandler(peopleService, shiftLogs, logger),
		ShiftLogs:    shiftLogs,
		Documents:    NewDocumentHandler(documentService, testUploadLimit, logger),
		HRActivities: NewHRActivityHandler(hrService, testUploadLimit, logger),
		Timesheets:   NewTimesheetHandler(timesheetService, logger),
		Tasks:        NewTaskHandler(services.NewTaskService(memTasks{db: db}, nil), logger),
		Contacts:     NewContactHandler(services.NewContactService(memContacts{db: db}, nil), logger),
	}

	router := chi.NewRouter()
	router.Route("/api", api.Mount)
	return &testServer{handler: router, db: db, files: files}
}

func (s *testServer) do(t *testing.T, req *http.Request, token string) *httptest.ResponseRecorder {
	t.Helper()
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	return rec
}

func (s *testServer) doJSON(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		switch b := body.(type) {
		case string:
			reader = bytes.NewBufferString(b)
		default:
			data, err := json.Marshal(body)
			require.NoError(t, err)
			reader = bytes.NewReader(data)
		}
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	return s.do(t, req, token)
}

type formFile struct {
	field    string
	filename string
	content  string
}

func (s *testServer) doMultipart(t *testing.T, path, token string, fields map[string]string, file *formFile) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	if file != nil {
		part, err := mw.CreateFormFile(file.field, file.filename)
		require.NoError(t, err)
		_, err = part.Write([]byte(file.content))
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return s.do(t, req, token)
}

// register creates an account and returns its token and id.
func (s *testServer) register(t *testing.T, username, role string) (string, int) {
	t.Helper()
	rec := s.doJSON(t, http.MethodPost, "/api/register", "", map[string]string{
		"username": username,
		"password": "password1",
		"role":     role,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var resp AuthResponse
	decodeBody(t, rec, &resp)
	return resp.Token, resp.User.ID
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, dst any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), dst), rec.Body.String())
}

func errorMessage(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var resp ErrorResponse
	decodeBody(t, rec, &resp)
	return resp.Error
}
