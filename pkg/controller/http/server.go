package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/secmon-lab/safetydocs/pkg/usecase"
	"github.com/secmon-lab/safetydocs/pkg/utils/metrics"
)

type Server struct {
	router  *chi.Mux
	uc      *usecase.UseCases
	metrics *metrics.Metrics
}

type Options func(*Server)

// WithMetrics counts requests and exposes /metrics
func WithMetrics(m *metrics.Metrics) Options {
	return func(s *Server) {
		s.metrics = m
	}
}

func New(uc *usecase.UseCases, opts ...Options) *Server {
	r := chi.NewRouter()

	s := &Server{
		router: r,
		uc:     uc,
	}
	for _, opt := range opts {
		opt(s)
	}

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(accessLogger)
	r.Use(middleware.Recoverer)
	r.Use(s.observe)

	r.Get("/health", healthHandler)
	if s.metrics != nil {
		r.Handle("/metrics", s.metrics.Handler())
	}

	r.Route("/api", func(r chi.Router) {
		r.Use(authMiddleware(uc.Auth))

		r.Route("/users", func(r chi.Router) {
			r.Get("/me", s.getMe)
			r.Get("/", s.listUsers)
			r.Post("/", s.createUser)
			r.Put("/{userID}", s.updateUser)
			r.Delete("/{userID}", s.deactivateUser)
		})

		r.Route("/projects", func(r chi.Router) {
			r.Get("/", s.listProjects)
			r.Post("/", s.createProject)

			r.Route("/{projectID}", func(r chi.Router) {
				r.Get("/", s.getProject)
				r.Put("/", s.updateProject)
				r.Delete("/", s.deleteProject)

				r.Get("/members", s.listMembers)
				r.Post("/members", s.addMember)
				r.Delete("/members/{userID}", s.removeMember)

				r.Get("/hazards", s.listProjectHazards)
				r.Post("/hazards", s.createHazard)
				r.Post("/templates/{templateID}", s.copyTemplate)

				r.Get("/participants", s.listParticipants)
				r.Post("/participants", s.createParticipant)
				r.Post("/participants/import", s.importParticipants)

				r.Get("/briefings", s.listBriefings)
				r.Post("/briefings", s.createBriefing)
				r.Post("/briefings/generate", s.generateBriefing)

				r.Get("/areas", s.listAssignments)
				r.Put("/areas", s.assignArea)
				r.Delete("/areas/{areaID}", s.unassignArea)

				r.Get("/reports/gbu", s.hazardReport)
				r.Get("/reports/participants", s.rosterReport)
			})
		})

		r.Route("/hazards/{hazardID}", func(r chi.Router) {
			r.Get("/", s.getHazard)
			r.Put("/", s.updateHazard)
			r.Delete("/", s.deleteHazard)
		})

		r.Route("/participants/{participantID}", func(r chi.Router) {
			r.Put("/", s.updateParticipant)
			r.Delete("/", s.deleteParticipant)
			r.Post("/sign", s.signParticipant)
			r.Post("/analog", s.markAnalog)
		})

		r.Route("/briefings/{briefingID}", func(r chi.Router) {
			r.Get("/", s.getBriefing)
			r.Put("/", s.updateBriefing)
			r.Delete("/", s.deleteBriefing)
			r.Get("/report", s.briefingReport)
		})

		r.Route("/templates", func(r chi.Router) {
			r.Get("/", s.listTemplates)
			r.Post("/", s.createTemplate)
			r.Get("/{templateID}", s.getTemplate)
			r.Put("/{templateID}", s.updateTemplate)
			r.Delete("/{templateID}", s.deleteTemplate)
			r.Get("/{templateID}/hazards", s.listTemplateHazards)
			r.Post("/{templateID}/hazards", s.addTemplateHazard)
		})

		r.Get("/areas", s.listAreas)
		r.Post("/areas", s.createArea)

		r.Get("/audit", s.listAudit)
	})

	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(r.Context(), w, http.StatusOK, map[string]string{"status": "ok"})
}
