package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/secmon-lab/safetydocs/pkg/domain/types"
)

func briefingID(r *http.Request) types.BriefingID {
	return types.BriefingID(chi.URLParam(r, "briefingID"))
}

func (s *Server) listBriefings(w http.ResponseWriter, r *http.Request) {
	briefings, err := s.uc.Briefing.List(r.Context(), projectID(r))
	if err != nil {
		handleError(r.Context(), w, err)
		return
	}
	writeJSON(r.Context(), w, http.StatusOK, briefings)
}

func (s *Server) createBriefing(w http.ResponseWriter, r *http.Request) {
	var req briefingRequest
	if err := decode(r, &req); err != nil {
		handleError(r.Context(), w, err)
		return
	}

	b, err := s.uc.Briefing.Create(r.Context(), projectID(r), req.input())
	if err != nil {
		handleError(r.Context(), w, err)
		return
	}
	writeJSON(r.Context(), w, http.StatusCreated, b)
}

func (s *Server) generateBriefing(w http.ResponseWriter, r *http.Request) {
	b, err := s.uc.Briefing.Generate(r.Context(), projectID(r))
	if err != nil {
		handleError(r.Context(), w, err)
		return
	}
	writeJSON(r.Context(), w, http.StatusCreated, b)
}

func (s *Server) getBriefing(w http.ResponseWriter, r *http.Request) {
	b, err := s.uc.Briefing.Get(r.Context(), briefingID(r))
	if err != nil {
		handleError(r.Context(), w, err)
		return
	}
	writeJSON(r.Context(), w, http.StatusOK, b)
}

func (s *Server) updateBriefing(w http.ResponseWriter, r *http.Request) {
	var req briefingRequest
	if err := decode(r, &req); err != nil {
		handleError(r.Context(), w, err)
		return
	}

	b, err := s.uc.Briefing.Update(r.Context(), briefingID(r), req.input())
	if err != nil {
		handleError(r.Context(), w, err)
		return
	}
	writeJSON(r.Context(), w, http.StatusOK, b)
}

func (s *Server) deleteBriefing(w http.ResponseWriter, r *http.Request) {
	if err := s.uc.Briefing.Delete(r.Context(), briefingID(r)); err != nil {
		handleError(r.Context(), w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
