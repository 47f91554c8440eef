package http

import (
	"io"
	"mime"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/safetydocs/pkg/domain/types"
	"github.com/secmon-lab/safetydocs/pkg/usecase"
	"github.com/secmon-lab/safetydocs/pkg/utils/safe"
)

// maxImportBytes bounds uploaded participant lists
const maxImportBytes = 10 << 20

func participantID(r *http.Request) types.ParticipantID {
	return types.ParticipantID(chi.URLParam(r, "participantID"))
}

func (s *Server) listParticipants(w http.ResponseWriter, r *http.Request) {
	participants, err := s.uc.Participant.List(r.Context(), projectID(r))
	if err != nil {
		handleError(r.Context(), w, err)
		return
	}
	writeJSON(r.Context(), w, http.StatusOK, participants)
}

func (s *Server) createParticipant(w http.ResponseWriter, r *http.Request) {
	var req participantRequest
	if err := decode(r, &req); err != nil {
		handleError(r.Context(), w, err)
		return
	}

	p, err := s.uc.Participant.Create(r.Context(), projectID(r), req.input())
	if err != nil {
		handleError(r.Context(), w, err)
		return
	}
	writeJSON(r.Context(), w, http.StatusCreated, p)
}

// importParticipants accepts the CSV either as raw body (text/csv) or as
// the "file" field of a multipart form
func (s *Server) importParticipants(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	body := http.MaxBytesReader(w, r.Body, maxImportBytes)

	var src io.Reader = body
	if mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type")); mediaType == "multipart/form-data" {
		r.Body = body
		file, _, err := r.FormFile("file")
		if err != nil {
			handleError(ctx, w, goerr.Wrap(usecase.ErrInvalidInput, "multipart upload needs a file field", goerr.V("error", err.Error())))
			return
		}
		defer safe.Close(ctx, file)
		src = file
	}

	result, err := s.uc.Participant.Import(ctx, projectID(r), src)
	if err != nil {
		handleError(ctx, w, err)
		return
	}
	writeJSON(ctx, w, http.StatusCreated, result)
}

func (s *Server) updateParticipant(w http.ResponseWriter, r *http.Request) {
	var req participantRequest
	if err := decode(r, &req); err != nil {
		handleError(r.Context(), w, err)
		return
	}

	p, err := s.uc.Participant.Update(r.Context(), participantID(r), req.input())
	if err != nil {
		handleError(r.Context(), w, err)
		return
	}
	writeJSON(r.Context(), w, http.StatusOK, p)
}

func (s *Server) deleteParticipant(w http.ResponseWriter, r *http.Request) {
	if err := s.uc.Participant.Delete(r.Context(), participantID(r)); err != nil {
		handleError(r.Context(), w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) signParticipant(w http.ResponseWriter, r *http.Request) {
	var req signRequest
	if err := decode(r, &req); err != nil {
		handleError(r.Context(), w, err)
		return
	}

	p, err := s.uc.Participant.Sign(r.Context(), participantID(r), req.SignatureData)
	if err != nil {
		handleError(r.Context(), w, err)
		return
	}
	writeJSON(r.Context(), w, http.StatusOK, p)
}

func (s *Server) markAnalog(w http.ResponseWriter, r *http.Request) {
	p, err := s.uc.Participant.MarkAnalog(r.Context(), participantID(r))
	if err != nil {
		handleError(r.Context(), w, err)
		return
	}
	writeJSON(r.Context(), w, http.StatusOK, p)
}
