package http

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/safetydocs/pkg/domain/types"
	"github.com/secmon-lab/safetydocs/pkg/usecase"
)

func (s *Server) listAreas(w http.ResponseWriter, r *http.Request) {
	areas, err := s.uc.Area.List(r.Context())
	if err != nil {
		handleError(r.Context(), w, err)
		return
	}
	writeJSON(r.Context(), w, http.StatusOK, areas)
}

func (s *Server) createArea(w http.ResponseWriter, r *http.Request) {
	var req areaRequest
	if err := decode(r, &req); err != nil {
		handleError(r.Context(), w, err)
		return
	}

	area, err := s.uc.Area.Create(r.Context(), usecase.AreaInput{
		Name:        req.Name,
		Description: req.Description,
		SortOrder:   req.SortOrder,
	})
	if err != nil {
		handleError(r.Context(), w, err)
		return
	}
	writeJSON(r.Context(), w, http.StatusCreated, area)
}

func (s *Server) listAssignments(w http.ResponseWriter, r *http.Request) {
	assignments, err := s.uc.Area.ListAssignments(r.Context(), projectID(r))
	if err != nil {
		handleError(r.Context(), w, err)
		return
	}
	writeJSON(r.Context(), w, http.StatusOK, assignments)
}

func (s *Server) assignArea(w http.ResponseWriter, r *http.Request) {
	var req areaAssignmentRequest
	if err := decode(r, &req); err != nil {
		handleError(r.Context(), w, err)
		return
	}

	assignment, err := s.uc.Area.Assign(r.Context(), projectID(r),
		types.AreaID(req.AreaID), types.UserID(req.UserID), req.Notes)
	if err != nil {
		handleError(r.Context(), w, err)
		return
	}
	writeJSON(r.Context(), w, http.StatusOK, assignment)
}

func (s *Server) unassignArea(w http.ResponseWriter, r *http.Request) {
	areaID := types.AreaID(chi.URLParam(r, "areaID"))
	if err := s.uc.Area.Unassign(r.Context(), projectID(r), areaID); err != nil {
		handleError(r.Context(), w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) listAudit(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	limit := 0
	if v := q.Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			handleError(r.Context(), w, goerr.Wrap(usecase.ErrInvalidInput, "limit must be a non-negative number", goerr.V(usecase.FieldKey, "limit")))
			return
		}
		limit = n
	}

	entries, err := s.uc.Audit.List(r.Context(), q.Get("resource"), q.Get("id"), limit)
	if err != nil {
		handleError(r.Context(), w, err)
		return
	}
	writeJSON(r.Context(), w, http.StatusOK, entries)
}
