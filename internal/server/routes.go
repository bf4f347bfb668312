package server

import (
	"net/http"
	"strings"
	"time"

	"github.com/jmcnair/carehub/internal/common"
)

// registerRoutes wires all API endpoints onto the mux.
func (s *Server) registerRoutes(mux *http.ServeMux) {
	// System
	mux.HandleFunc("/api/health", s.handleHealth)
	mux.HandleFunc("/api/version", s.handleVersion)
	mux.HandleFunc("/api/config", s.handleConfig)

	// OAuth proxy
	mux.HandleFunc("/api/auth/authorize-url", s.handleAuthorizeURL)
	mux.HandleFunc("/api/auth/refresh", s.handleTokenRefresh)
	mux.HandleFunc("/api/auth/token", s.handleTokenExchange)
	mux.HandleFunc("/api/signin-oidc", s.handleSigninOIDC)

	// Staff sessions
	mux.HandleFunc("/api/auth/login", s.handleAuthLogin)
	mux.HandleFunc("/api/auth/validate", s.handleAuthValidate)

	// Directory
	mux.HandleFunc("/api/patients", s.handlePatientList)
	mux.HandleFunc("/api/patients/", s.routePatients)
	mux.HandleFunc("/api/agencies", s.handleAgencyList)
	mux.HandleFunc("/api/agencies/", s.routeAgencies)
	mux.HandleFunc("/api/contacts", s.handleContactList)
	mux.HandleFunc("/api/contacts/", s.routeContacts)

	// Staff accounts
	mux.HandleFunc("/api/users", s.routeUserCollection)
	mux.HandleFunc("/api/users/", s.routeUsers)
}

// routePatients dispatches /api/patients/* subpaths.
func (s *Server) routePatients(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/api/patients/")
	switch {
	case rest == "search":
		s.handlePatientSearch(w, r)
	case rest == "grouped":
		s.handlePatientGrouped(w, r)
	case rest != "" && !strings.Contains(rest, "/"):
		s.handlePatientGet(w, r, rest)
	default:
		WriteError(w, http.StatusNotFound, "Not found")
	}
}

// routeAgencies dispatches /api/agencies/* subpaths.
func (s *Server) routeAgencies(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/api/agencies/")
	parts := strings.Split(rest, "/")
	switch {
	case len(parts) == 1 && parts[0] != "":
		s.handleAgencyGet(w, r, parts[0])
	case len(parts) == 2 && parts[1] == "patients":
		s.handleAgencyPatients(w, r, parts[0])
	default:
		WriteError(w, http.StatusNotFound, "Not found")
	}
}

// routeContacts dispatches /api/contacts/* subpaths.
func (s *Server) routeContacts(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/api/contacts/")
	switch {
	case rest == "search":
		s.handleContactSearch(w, r)
	case rest != "" && !strings.Contains(rest, "/"):
		s.handleContactGet(w, r, rest)
	default:
		WriteError(w, http.StatusNotFound, "Not found")
	}
}

// routeUserCollection dispatches /api/users by method.
func (s *Server) routeUserCollection(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		s.handleUserCreate(w, r)
	case http.MethodGet:
		s.handleUserList(w, r)
	default:
		WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
	}
}

// routeUsers dispatches /api/users/{id}.
func (s *Server) routeUsers(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/api/users/")
	if id == "" || strings.Contains(id, "/") {
		WriteError(w, http.StatusNotFound, "Not found")
		return
	}
	switch r.Method {
	case http.MethodGet:
		s.handleUserGet(w, r, id)
	case http.MethodDelete:
		s.handleUserDelete(w, r, id)
	default:
		WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}
	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "healthy",
		"uptime":  time.Since(s.app.StartupTime).String(),
		"version": common.GetVersion(),
	})
}

func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{
		"version": common.GetVersion(),
		"build":   common.GetBuild(),
		"commit":  common.GetGitCommit(),
	})
}

// handleConfig exposes the effective runtime configuration with secrets
// masked.
func (s *Server) handleConfig(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}
	cfg := s.app.Config
	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"environment": cfg.Environment,
		"server": map[string]interface{}{
			"host": cfg.Server.Host,
			"port": cfg.Server.Port,
		},
		"storage": map[string]string{
			"address":   cfg.Storage.Address,
			"namespace": cfg.Storage.Namespace,
			"database":  cfg.Storage.Database,
		},
		"auth": map[string]interface{}{
			"require_bearer": cfg.Auth.RequireBearer,
			"token_expiry":   cfg.Auth.GetTokenExpiry().String(),
		},
		"identity": map[string]string{
			"base_url":      cfg.Auth.Identity.BaseURL,
			"tenant_id":     cfg.Auth.Identity.TenantID,
			"client_id":     cfg.Auth.Identity.ClientID,
			"client_secret": maskSecret(cfg.Auth.Identity.ClientSecret),
			"scope":         cfg.Auth.Identity.APIScope(),
		},
	})
}
