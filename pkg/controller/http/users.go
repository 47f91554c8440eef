package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/secmon-lab/safetydocs/pkg/domain/types"
)

func (s *Server) getMe(w http.ResponseWriter, r *http.Request) {
	user, err := s.uc.User.Me(r.Context())
	if err != nil {
		handleError(r.Context(), w, err)
		return
	}
	writeJSON(r.Context(), w, http.StatusOK, user)
}

func (s *Server) listUsers(w http.ResponseWriter, r *http.Request) {
	users, err := s.uc.User.List(r.Context())
	if err != nil {
		handleError(r.Context(), w, err)
		return
	}
	writeJSON(r.Context(), w, http.StatusOK, users)
}

func (s *Server) createUser(w http.ResponseWriter, r *http.Request) {
	var req userRequest
	if err := decode(r, &req); err != nil {
		handleError(r.Context(), w, err)
		return
	}

	user, err := s.uc.User.Create(r.Context(), req.input())
	if err != nil {
		handleError(r.Context(), w, err)
		return
	}
	writeJSON(r.Context(), w, http.StatusCreated, user)
}

func (s *Server) updateUser(w http.ResponseWriter, r *http.Request) {
	var req userRequest
	if err := decode(r, &req); err != nil {
		handleError(r.Context(), w, err)
		return
	}

	user, err := s.uc.User.Update(r.Context(), types.UserID(chi.URLParam(r, "userID")), req.input())
	if err != nil {
		handleError(r.Context(), w, err)
		return
	}
	writeJSON(r.Context(), w, http.StatusOK, user)
}

func (s *Server) deactivateUser(w http.ResponseWriter, r *http.Request) {
	if err := s.uc.User.Deactivate(r.Context(), types.UserID(chi.URLParam(r, "userID"))); err != nil {
		handleError(r.Context(), w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
