package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/secmon-lab/safetydocs/pkg/domain/types"
)

func hazardID(r *http.Request) types.HazardID {
	return types.HazardID(chi.URLParam(r, "hazardID"))
}

func (s *Server) listProjectHazards(w http.ResponseWriter, r *http.Request) {
	hazards, err := s.uc.Hazard.ListByProject(r.Context(), projectID(r))
	if err != nil {
		handleError(r.Context(), w, err)
		return
	}
	writeJSON(r.Context(), w, http.StatusOK, hazards)
}

func (s *Server) createHazard(w http.ResponseWriter, r *http.Request) {
	var req hazardRequest
	if err := decode(r, &req); err != nil {
		handleError(r.Context(), w, err)
		return
	}

	hazard, err := s.uc.Hazard.Create(r.Context(), projectID(r), req.input())
	if err != nil {
		handleError(r.Context(), w, err)
		return
	}
	writeJSON(r.Context(), w, http.StatusCreated, hazard)
}

func (s *Server) getHazard(w http.ResponseWriter, r *http.Request) {
	hazard, err := s.uc.Hazard.Get(r.Context(), hazardID(r))
	if err != nil {
		handleError(r.Context(), w, err)
		return
	}
	writeJSON(r.Context(), w, http.StatusOK, hazard)
}

func (s *Server) updateHazard(w http.ResponseWriter, r *http.Request) {
	var req hazardRequest
	if err := decode(r, &req); err != nil {
		handleError(r.Context(), w, err)
		return
	}

	hazard, err := s.uc.Hazard.Update(r.Context(), hazardID(r), req.input())
	if err != nil {
		handleError(r.Context(), w, err)
		return
	}
	writeJSON(r.Context(), w, http.StatusOK, hazard)
}

func (s *Server) deleteHazard(w http.ResponseWriter, r *http.Request) {
	if err := s.uc.Hazard.Delete(r.Context(), hazardID(r)); err != nil {
		handleError(r.Context(), w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
