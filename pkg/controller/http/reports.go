package http

import (
	"net/http"
)

func (s *Server) hazardReport(w http.ResponseWriter, r *http.Request) {
	rep, err := s.uc.Report.HazardOverview(r.Context(), projectID(r))
	if err != nil {
		handleError(r.Context(), w, err)
		return
	}
	writePDF(r.Context(), w, rep)
}

func (s *Server) rosterReport(w http.ResponseWriter, r *http.Request) {
	rep, err := s.uc.Report.Roster(r.Context(), projectID(r))
	if err != nil {
		handleError(r.Context(), w, err)
		return
	}
	writePDF(r.Context(), w, rep)
}

func (s *Server) briefingReport(w http.ResponseWriter, r *http.Request) {
	rep, err := s.uc.Report.Briefing(r.Context(), briefingID(r))
	if err != nil {
		handleError(r.Context(), w, err)
		return
	}
	writePDF(r.Context(), w, rep)
}
