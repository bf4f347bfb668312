package server

import (
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jmcnair/carehub/internal/models"
)

type createUserRequest struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// handleUserCreate registers a new staff user.
func (s *Server) handleUserCreate(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	var req createUserRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	req.Email = strings.TrimSpace(strings.ToLower(req.Email))
	if req.Email == "" || !strings.Contains(req.Email, "@") {
		WriteError(w, http.StatusBadRequest, "A valid email is required")
		return
	}
	if len(req.Password) < 8 {
		WriteError(w, http.StatusBadRequest, "Password must be at least 8 characters")
		return
	}
	role := req.Role
	if role == "" {
		role = models.RoleStaff
	}
	if role != models.RoleStaff && role != models.RoleAdmin {
		WriteError(w, http.StatusBadRequest, "Role must be staff or admin")
		return
	}

	if _, err := s.app.Storage.InternalStore().GetStaffByEmail(r.Context(), req.Email); err == nil {
		WriteError(w, http.StatusConflict, "A user with this email already exists")
		return
	}

	password := req.Password
	if len(password) > 72 {
		password = password[:72]
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to hash password")
		WriteError(w, http.StatusInternalServerError, "Failed to create user")
		return
	}

	user := &models.StaffUser{
		UserID:       uuid.New().String(),
		Email:        req.Email,
		Name:         req.Name,
		PasswordHash: string(hash),
		Role:         role,
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.app.Storage.InternalStore().SaveStaff(r.Context(), user); err != nil {
		s.logger.Error().Err(err).Msg("Failed to save staff user")
		WriteError(w, http.StatusInternalServerError, "Failed to create user")
		return
	}

	s.logger.Info().Str("user_id", user.UserID).Str("role", user.Role).Msg("Staff user created")
	WriteJSON(w, http.StatusCreated, publicUser(user))
}

// publicUser shapes a staff user for API responses. The stored password
// hash never leaves the server.
func publicUser(u *models.StaffUser) map[string]interface{} {
	return map[string]interface{}{
		"user_id":    u.UserID,
		"email":      u.Email,
		"name":       u.Name,
		"role":       u.Role,
		"created_at": u.CreatedAt,
	}
}

// handleUserList returns all staff users.
func (s *Server) handleUserList(w http.ResponseWriter, r *http.Request) {
	if s.requireStaff(w, r) == nil {
		return
	}

	users, err := s.app.Storage.InternalStore().ListStaff(r.Context())
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to list staff users")
		WriteError(w, http.StatusInternalServerError, "Failed to list users")
		return
	}

	out := make([]map[string]interface{}, 0, len(users))
	for _, u := range users {
		out = append(out, publicUser(u))
	}
	WriteJSON(w, http.StatusOK, out)
}

// handleUserGet returns a staff user by id.
func (s *Server) handleUserGet(w http.ResponseWriter, r *http.Request, id string) {
	staff := s.requireStaff(w, r)
	if staff == nil {
		return
	}

	user, err := s.app.Storage.InternalStore().GetStaff(r.Context(), id)
	if err != nil {
		WriteError(w, http.StatusNotFound, "User not found")
		return
	}
	WriteJSON(w, http.StatusOK, publicUser(user))
}

// handleUserDelete removes a staff user.
func (s *Server) handleUserDelete(w http.ResponseWriter, r *http.Request, id string) {
	staff := s.requireStaff(w, r)
	if staff == nil {
		return
	}

	if _, err := s.app.Storage.InternalStore().GetStaff(r.Context(), id); err != nil {
		WriteError(w, http.StatusNotFound, "User not found")
		return
	}

	if err := s.app.Storage.InternalStore().DeleteStaff(r.Context(), id); err != nil {
		s.logger.Error().Err(err).Str("user_id", id).Msg("Failed to delete staff user")
		WriteError(w, http.StatusInternalServerError, "Failed to delete user")
		return
	}

	s.logger.Info().Str("user_id", id).Msg("Staff user deleted")
	WriteJSON(w, http.StatusOK, map[string]string{"status": "deleted", "user_id": id})
}
