package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmcnair/carehub/internal/models"
)

func TestHandleUserCreate(t *testing.T) {
	ts := newTestServer(t, "")

	body := `{"email":"Admin@Example.com","name":"Admin","password":"s3cret-pass","role":"admin"}`
	req := httptest.NewRequest(http.MethodPost, "/api/users", strings.NewReader(body))
	w := httptest.NewRecorder()
	ts.Handler().ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)

	var user struct {
		UserID string `json:"user_id"`
		Email  string `json:"email"`
		Role   string `json:"role"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &user))
	assert.NotEmpty(t, user.UserID)
	assert.Equal(t, "admin@example.com", user.Email, "email is normalized")
	assert.Equal(t, models.RoleAdmin, user.Role)
	assert.NotContains(t, w.Body.String(), "password_hash")

	stored, err := ts.storage.internal.GetStaffByEmail(t.Context(), "admin@example.com")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret-pass", stored.PasswordHash)
	assert.NotEmpty(t, stored.PasswordHash)
}

func TestHandleUserCreateValidation(t *testing.T) {
	ts := newTestServer(t, "")

	cases := []struct {
		name string
		body string
	}{
		{"missing email", `{"password":"s3cret-pass"}`},
		{"bad email", `{"email":"not-an-email","password":"s3cret-pass"}`},
		{"short password", `{"email":"a@b.com","password":"short"}`},
		{"bad role", `{"email":"a@b.com","password":"s3cret-pass","role":"superuser"}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/users", strings.NewReader(tc.body))
			w := httptest.NewRecorder()
			ts.Handler().ServeHTTP(w, req)
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestHandleUserCreateDuplicateEmail(t *testing.T) {
	ts := newTestServer(t, "")
	seedStaff(t, ts, "taken@example.com", "password123", models.RoleStaff)

	body := `{"email":"taken@example.com","password":"password123"}`
	req := httptest.NewRequest(http.MethodPost, "/api/users", strings.NewReader(body))
	w := httptest.NewRecorder()
	ts.Handler().ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestHandleUserGetAndDelete(t *testing.T) {
	ts := newTestServer(t, "")
	seedStaff(t, ts, "nurse@example.com", "password123", models.RoleStaff)

	w := doGET(ts, "/api/users/user-1")
	require.Equal(t, http.StatusOK, w.Code)

	req := httptest.NewRequest(http.MethodDelete, "/api/users/user-1", nil)
	rec := httptest.NewRecorder()
	ts.Handler().ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	w = doGET(ts, "/api/users/user-1")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHandleUserList(t *testing.T) {
	ts := newTestServer(t, "")
	seedStaff(t, ts, "nurse@example.com", "password123", models.RoleStaff)

	w := doGET(ts, "/api/users")
	require.Equal(t, http.StatusOK, w.Code)

	var users []map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &users))
	require.Len(t, users, 1)
	assert.Equal(t, "nurse@example.com", users[0]["email"])
	assert.NotContains(t, w.Body.String(), "password_hash")
}

func TestHandleUserDeleteMissing(t *testing.T) {
	ts := newTestServer(t, "")

	req := httptest.NewRequest(http.MethodDelete, "/api/users/ghost", nil)
	w := httptest.NewRecorder()
	ts.Handler().ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
