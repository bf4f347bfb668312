package server

import (
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/jmcnair/carehub/internal/models"
)

// sessionClaims are the JWT claims carried by staff session tokens.
type sessionClaims struct {
	UserID string `json:"uid"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// signJWT creates a signed session token for the given staff user.
func (s *Server) signJWT(user *models.StaffUser) (string, error) {
	secret := s.app.Config.Auth.JWTSecret
	if secret == "" {
		return "", fmt.Errorf("jwt secret is not configured")
	}

	now := time.Now()
	claims := sessionClaims{
		UserID: user.UserID,
		Email:  user.Email,
		Role:   user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.UserID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.app.Config.Auth.GetTokenExpiry())),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// validateJWT parses and verifies a session token, returning its claims.
func (s *Server) validateJWT(tokenString string) (*sessionClaims, error) {
	secret := s.app.Config.Auth.JWTSecret
	if secret == "" {
		return nil, fmt.Errorf("jwt secret is not configured")
	}

	claims := &sessionClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}
	if !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	return claims, nil
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}


// handleAuthLogin authenticates a staff user by email and password and
// issues a session token.
func (s *Server) handleAuthLogin(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	var req loginRequest
	if !DecodeJSON(w, r, &req) {
		return
	}
	if req.Email == "" || req.Password == "" {
		WriteError(w, http.StatusBadRequest, "email and password are required")
		return
	}

	user, err := s.app.Storage.InternalStore().GetStaffByEmail(r.Context(), req.Email)
	if err != nil {
		s.logger.Warn().Str("email", req.Email).Msg("Login failed: unknown user")
		WriteError(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	password := req.Password
	if len(password) > 72 {
		password = password[:72]
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		s.logger.Warn().Str("email", req.Email).Msg("Login failed: bad password")
		WriteError(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	token, err := s.signJWT(user)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to sign session token")
		WriteError(w, http.StatusInternalServerError, "Failed to create session")
		return
	}

	s.logger.Info().Str("user_id", user.UserID).Msg("Staff login")
	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"token":      token,
		"expires_at": time.Now().Add(s.app.Config.Auth.GetTokenExpiry()),
		"user":       publicUser(user),
	})
}

// handleAuthValidate reports whether the caller's bearer token resolves
// to a valid staff session.
func (s *Server) handleAuthValidate(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet, http.MethodPost) {
		return
	}

	authHeader := r.Header.Get("Authorization")
	if len(authHeader) < 8 || authHeader[:7] != "Bearer " {
		WriteJSON(w, http.StatusUnauthorized, map[string]interface{}{
			"valid": false,
			"error": "Missing bearer token",
		})
		return
	}

	claims, err := s.validateJWT(authHeader[7:])
	if err != nil {
		WriteJSON(w, http.StatusUnauthorized, map[string]interface{}{
			"valid": false,
			"error": "Invalid or expired token",
		})
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"valid":   true,
		"user_id": claims.UserID,
		"email":   claims.Email,
		"role":    claims.Role,
	})
}
