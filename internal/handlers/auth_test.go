package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/carevault/apiserver/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterLoginLogout(t *testing.T) {
	srv := newTestServer(t)

	token, id := srv.register(t, "alice", "")
	require.NotEmpty(t, token)

	rec := srv.doJSON(t, http.MethodPost, "/api/register", "", map[string]string{"username": "alice", "password": "password2"})
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = srv.doJSON(t, http.MethodPost, "/api/register", "", map[string]string{"username": "bob", "password": "123"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "password must be at least 6", errorMessage(t, rec))

	rec = srv.doJSON(t, http.MethodPost, "/api/login", "", map[string]string{"username": "alice", "password": "wrong-one"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = srv.doJSON(t, http.MethodPost, "/api/login", "", map[string]string{"username": "alice", "password": "password1"})
	require.Equal(t, http.StatusOK, rec.Code)
	var login AuthResponse
	decodeBody(t, rec, &login)
	assert.Equal(t, id, login.User.ID)
	assert.Equal(t, types.RoleCarer, login.User.Role)

	cookies := rec.Result().Cookies()
	require.NotEmpty(t, cookies)
	assert.Equal(t, sessionCookieName, cookies[0].Name)
	assert.True(t, cookies[0].HttpOnly)

	req := httptest.NewRequest(http.MethodGet, "/api/user", nil)
	req.AddCookie(cookies[0])
	rec = srv.do(t, req, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var me types.User
	decodeBody(t, rec, &me)
	assert.Equal(t, "alice", me.Username)

	rec = srv.doJSON(t, http.MethodPost, "/api/logout", login.Token, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = srv.doJSON(t, http.MethodGet, "/api/user", login.Token, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = srv.doJSON(t, http.MethodGet, "/api/user", token, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRegisterRejectsUnknownRole(t *testing.T) {
	srv := newTestServer(t)

	rec := srv.doJSON(t, http.MethodPost, "/api/register", "", map[string]string{
		"username": "eve",
		"password": "password1",
		"role":     "admin",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, srv.db.users)
}
