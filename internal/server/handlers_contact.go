package server

import (
	"net/http"
)

// handleContactList returns all agency contacts.
func (s *Server) handleContactList(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}
	if s.requireStaff(w, r) == nil {
		return
	}

	contacts, err := s.app.Directory.ListContacts(r.Context())
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to list contacts")
		WriteError(w, http.StatusInternalServerError, "Failed to list contacts")
		return
	}
	WriteJSON(w, http.StatusOK, contacts)
}

// handleContactSearch searches contacts by name, role or agency.
func (s *Server) handleContactSearch(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}
	if s.requireStaff(w, r) == nil {
		return
	}

	query := r.URL.Query().Get("q")
	contacts, err := s.app.Directory.SearchContacts(r.Context(), query)
	if err != nil {
		s.logger.Error().Err(err).Str("query", query).Msg("Contact search failed")
		WriteError(w, http.StatusInternalServerError, "Contact search failed")
		return
	}
	WriteJSON(w, http.StatusOK, contacts)
}

// handleContactGet returns a single contact by id.
func (s *Server) handleContactGet(w http.ResponseWriter, r *http.Request, id string) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}
	if s.requireStaff(w, r) == nil {
		return
	}

	contact, err := s.app.Directory.GetContact(r.Context(), id)
	if err != nil {
		WriteError(w, http.StatusNotFound, "Contact not found")
		return
	}
	WriteJSON(w, http.StatusOK, contact)
}
