package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/secmon-lab/safetydocs/pkg/domain/types"
)

func projectID(r *http.Request) types.ProjectID {
	return types.ProjectID(chi.URLParam(r, "projectID"))
}

func (s *Server) listProjects(w http.ResponseWriter, r *http.Request) {
	projects, err := s.uc.Project.List(r.Context())
	if err != nil {
		handleError(r.Context(), w, err)
		return
	}
	writeJSON(r.Context(), w, http.StatusOK, projects)
}

func (s *Server) createProject(w http.ResponseWriter, r *http.Request) {
	var req projectRequest
	if err := decode(r, &req); err != nil {
		handleError(r.Context(), w, err)
		return
	}
	in, err := req.input()
	if err != nil {
		handleError(r.Context(), w, err)
		return
	}

	project, err := s.uc.Project.Create(r.Context(), in)
	if err != nil {
		handleError(r.Context(), w, err)
		return
	}
	writeJSON(r.Context(), w, http.StatusCreated, project)
}

func (s *Server) getProject(w http.ResponseWriter, r *http.Request) {
	project, err := s.uc.Project.Get(r.Context(), projectID(r))
	if err != nil {
		handleError(r.Context(), w, err)
		return
	}
	writeJSON(r.Context(), w, http.StatusOK, project)
}

func (s *Server) updateProject(w http.ResponseWriter, r *http.Request) {
	var req projectRequest
	if err := decode(r, &req); err != nil {
		handleError(r.Context(), w, err)
		return
	}
	in, err := req.input()
	if err != nil {
		handleError(r.Context(), w, err)
		return
	}

	project, err := s.uc.Project.Update(r.Context(), projectID(r), in)
	if err != nil {
		handleError(r.Context(), w, err)
		return
	}
	writeJSON(r.Context(), w, http.StatusOK, project)
}

func (s *Server) deleteProject(w http.ResponseWriter, r *http.Request) {
	if err := s.uc.Project.Delete(r.Context(), projectID(r)); err != nil {
		handleError(r.Context(), w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) listMembers(w http.ResponseWriter, r *http.Request) {
	members, err := s.uc.Project.ListMembers(r.Context(), projectID(r))
	if err != nil {
		handleError(r.Context(), w, err)
		return
	}
	writeJSON(r.Context(), w, http.StatusOK, members)
}

func (s *Server) addMember(w http.ResponseWriter, r *http.Request) {
	var req memberRequest
	if err := decode(r, &req); err != nil {
		handleError(r.Context(), w, err)
		return
	}

	member, err := s.uc.Project.AddMember(r.Context(), projectID(r), types.UserID(req.UserID))
	if err != nil {
		handleError(r.Context(), w, err)
		return
	}
	writeJSON(r.Context(), w, http.StatusCreated, member)
}

func (s *Server) removeMember(w http.ResponseWriter, r *http.Request) {
	userID := types.UserID(chi.URLParam(r, "userID"))
	if err := s.uc.Project.RemoveMember(r.Context(), projectID(r), userID); err != nil {
		handleError(r.Context(), w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) copyTemplate(w http.ResponseWriter, r *http.Request) {
	templateID := types.TemplateID(chi.URLParam(r, "templateID"))
	hazards, err := s.uc.Template.CopyToProject(r.Context(), projectID(r), templateID)
	if err != nil {
		handleError(r.Context(), w, err)
		return
	}
	writeJSON(r.Context(), w, http.StatusCreated, hazards)
}
