// Package httpapi exposes the booking use cases over HTTP.
package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"evenza/internal/domain/entities"
	"evenza/internal/ports/input"
	"evenza/internal/ports/output"
)

// Localizer translates message codes and negotiates a request's locale.
type Localizer interface {
	output.T
	Negotiate(acceptLanguage string) string
}

type Deps struct {
	Events       input.EventUseCase
	Reservations input.ReservationUseCase
	Admin        input.AdminUseCase
	Tickets      input.TicketUseCase
	Translator   Localizer
	JWTSecret    string
	// Metrics is mounted on /metrics when set.
	Metrics http.Handler
}

type Server struct {
	events       input.EventUseCase
	reservations input.ReservationUseCase
	admin        input.AdminUseCase
	tickets      input.TicketUseCase
	tr           Localizer
	verifier     *TokenVerifier
	router       chi.Router
}

func NewServer(d Deps) *Server {
	s := &Server{
		events:       d.Events,
		reservations: d.Reservations,
		admin:        d.Admin,
		tickets:      d.Tickets,
		tr:           d.Translator,
		verifier:     NewTokenVerifier(d.JWTSecret),
	}
	s.router = s.routes(d.Metrics)
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes(metrics http.Handler) chi.Router {
	admin := s.requireRole(entities.RoleAdmin)
	anyone := s.requireRole(entities.RoleAdmin, entities.RoleParticipant)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(s.withLocale)

	r.Get("/health", health)
	if metrics != nil {
		r.Handle("/metrics", metrics)
	}

	r.Route("/events", func(r chi.Router) {
		r.Get("/", s.listPublishedEvents)
		r.Get("/{id}", s.getPublishedEvent)
		r.Group(func(r chi.Router) {
			r.Use(s.authenticate, admin)
			r.Post("/", s.createEvent)
			r.Patch("/{id}", s.updateEvent)
			r.Patch("/{id}/publish", s.publishEvent)
			r.Patch("/{id}/cancel", s.cancelEvent)
		})
	})

	r.Route("/admin", func(r chi.Router) {
		r.Use(s.authenticate, admin)
		r.Get("/events", s.listEvents)
		r.Get("/events/{id}", s.getEvent)
		r.Get("/stats", s.stats)
	})

	r.Route("/reservations", func(r chi.Router) {
		r.Use(s.authenticate)
		r.Group(func(r chi.Router) {
			r.Use(anyone)
			r.Post("/", s.createReservation)
			r.Get("/me", s.myReservations)
			r.Get("/{id}", s.getReservation)
			r.Patch("/{id}/cancel", s.cancelReservation)
			r.Get("/{id}/ticket", s.ticket)
		})
		r.Group(func(r chi.Router) {
			r.Use(admin)
			r.Get("/", s.listReservations)
			r.Get("/event/{eventId}", s.eventReservations)
			r.Patch("/{id}/confirm", s.confirmReservation)
			r.Patch("/{id}/refuse", s.refuseReservation)
		})
	})
	return r
}

func health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
