package server

import (
	"net/http"
)

// handlePatientList returns all patients.
func (s *Server) handlePatientList(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}
	if s.requireStaff(w, r) == nil {
		return
	}

	patients, err := s.app.Directory.ListPatients(r.Context())
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to list patients")
		WriteError(w, http.StatusInternalServerError, "Failed to list patients")
		return
	}
	WriteJSON(w, http.StatusOK, patients)
}

// handlePatientSearch searches patients by name or MRN.
func (s *Server) handlePatientSearch(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}
	if s.requireStaff(w, r) == nil {
		return
	}

	query := r.URL.Query().Get("q")
	patients, err := s.app.Directory.SearchPatients(r.Context(), query)
	if err != nil {
		s.logger.Error().Err(err).Str("query", query).Msg("Patient search failed")
		WriteError(w, http.StatusInternalServerError, "Patient search failed")
		return
	}
	WriteJSON(w, http.StatusOK, patients)
}

// handlePatientGrouped returns patients grouped by agency or status.
func (s *Server) handlePatientGrouped(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}
	if s.requireStaff(w, r) == nil {
		return
	}

	by := r.URL.Query().Get("by")
	if by == "" {
		by = "agency"
	}
	groups, err := s.app.Directory.GroupPatients(r.Context(), by)
	if err != nil {
		WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	WriteJSON(w, http.StatusOK, groups)
}

// handlePatientGet returns a single patient by id.
func (s *Server) handlePatientGet(w http.ResponseWriter, r *http.Request, id string) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}
	if s.requireStaff(w, r) == nil {
		return
	}

	patient, err := s.app.Directory.GetPatient(r.Context(), id)
	if err != nil {
		WriteError(w, http.StatusNotFound, "Patient not found")
		return
	}
	WriteJSON(w, http.StatusOK, patient)
}
