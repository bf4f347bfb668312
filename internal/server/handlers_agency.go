package server

import (
	"net/http"
)

// handleAgencyList returns all referring agencies.
func (s *Server) handleAgencyList(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}
	if s.requireStaff(w, r) == nil {
		return
	}

	agencies, err := s.app.Directory.ListAgencies(r.Context())
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to list agencies")
		WriteError(w, http.StatusInternalServerError, "Failed to list agencies")
		return
	}
	WriteJSON(w, http.StatusOK, agencies)
}

// handleAgencyGet returns a single agency by id.
func (s *Server) handleAgencyGet(w http.ResponseWriter, r *http.Request, id string) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}
	if s.requireStaff(w, r) == nil {
		return
	}

	agency, err := s.app.Directory.GetAgency(r.Context(), id)
	if err != nil {
		WriteError(w, http.StatusNotFound, "Agency not found")
		return
	}
	WriteJSON(w, http.StatusOK, agency)
}

// handleAgencyPatients returns all patients referred by an agency.
func (s *Server) handleAgencyPatients(w http.ResponseWriter, r *http.Request, id string) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}
	if s.requireStaff(w, r) == nil {
		return
	}

	if _, err := s.app.Directory.GetAgency(r.Context(), id); err != nil {
		WriteError(w, http.StatusNotFound, "Agency not found")
		return
	}

	patients, err := s.app.Directory.PatientsByAgency(r.Context(), id)
	if err != nil {
		s.logger.Error().Err(err).Str("agency_id", id).Msg("Failed to list agency patients")
		WriteError(w, http.StatusInternalServerError, "Failed to list agency patients")
		return
	}
	WriteJSON(w, http.StatusOK, patients)
}
