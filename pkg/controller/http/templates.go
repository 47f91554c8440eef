package http

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/safetydocs/pkg/domain/types"
	"github.com/secmon-lab/safetydocs/pkg/usecase"
)

func templateID(r *http.Request) types.TemplateID {
	return types.TemplateID(chi.URLParam(r, "templateID"))
}

// templateFilter reads ?season=&indoor_outdoor=&include_inactive=
func templateFilter(r *http.Request) (usecase.TemplateFilter, error) {
	q := r.URL.Query()
	filter := usecase.TemplateFilter{
		Season:        types.Season(q.Get("season")),
		IndoorOutdoor: types.IndoorOutdoor(q.Get("indoor_outdoor")),
	}
	if filter.Season != "" && !filter.Season.IsValidForTemplate() {
		return filter, goerr.Wrap(usecase.ErrInvalidInput, "unknown season", goerr.V(usecase.FieldKey, "season"))
	}
	if filter.IndoorOutdoor != "" && !filter.IndoorOutdoor.IsValidForTemplate() {
		return filter, goerr.Wrap(usecase.ErrInvalidInput, "unknown indoor/outdoor value", goerr.V(usecase.FieldKey, "indoor_outdoor"))
	}
	if v := q.Get("include_inactive"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return filter, goerr.Wrap(usecase.ErrInvalidInput, "include_inactive must be a boolean", goerr.V(usecase.FieldKey, "include_inactive"))
		}
		filter.IncludeInactive = b
	}
	return filter, nil
}

func (s *Server) listTemplates(w http.ResponseWriter, r *http.Request) {
	filter, err := templateFilter(r)
	if err != nil {
		handleError(r.Context(), w, err)
		return
	}

	templates, err := s.uc.Template.List(r.Context(), filter)
	if err != nil {
		handleError(r.Context(), w, err)
		return
	}
	writeJSON(r.Context(), w, http.StatusOK, templates)
}

func (s *Server) createTemplate(w http.ResponseWriter, r *http.Request) {
	var req templateRequest
	if err := decode(r, &req); err != nil {
		handleError(r.Context(), w, err)
		return
	}

	tmpl, err := s.uc.Template.Create(r.Context(), req.input())
	if err != nil {
		handleError(r.Context(), w, err)
		return
	}
	writeJSON(r.Context(), w, http.StatusCreated, tmpl)
}

func (s *Server) getTemplate(w http.ResponseWriter, r *http.Request) {
	tmpl, err := s.uc.Template.Get(r.Context(), templateID(r))
	if err != nil {
		handleError(r.Context(), w, err)
		return
	}
	writeJSON(r.Context(), w, http.StatusOK, tmpl)
}

func (s *Server) updateTemplate(w http.ResponseWriter, r *http.Request) {
	var req templateRequest
	if err := decode(r, &req); err != nil {
		handleError(r.Context(), w, err)
		return
	}

	tmpl, err := s.uc.Template.Update(r.Context(), templateID(r), req.input())
	if err != nil {
		handleError(r.Context(), w, err)
		return
	}
	writeJSON(r.Context(), w, http.StatusOK, tmpl)
}

func (s *Server) deleteTemplate(w http.ResponseWriter, r *http.Request) {
	if err := s.uc.Template.Delete(r.Context(), templateID(r)); err != nil {
		handleError(r.Context(), w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) listTemplateHazards(w http.ResponseWriter, r *http.Request) {
	hazards, err := s.uc.Template.ListHazards(r.Context(), templateID(r))
	if err != nil {
		handleError(r.Context(), w, err)
		return
	}
	writeJSON(r.Context(), w, http.StatusOK, hazards)
}

func (s *Server) addTemplateHazard(w http.ResponseWriter, r *http.Request) {
	var req hazardRequest
	if err := decode(r, &req); err != nil {
		handleError(r.Context(), w, err)
		return
	}

	hazard, err := s.uc.Template.AddHazard(r.Context(), templateID(r), req.input())
	if err != nil {
		handleError(r.Context(), w, err)
		return
	}
	writeJSON(r.Context(), w, http.StatusCreated, hazard)
}
