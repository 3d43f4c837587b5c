package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"evenza/internal/domain"
	"evenza/internal/domain/entities"
)

func (s *Server) listPublishedEvents(w http.ResponseWriter, r *http.Request) {
	events, err := s.events.ListPublishedEvents(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, events)
}

func (s *Server) getPublishedEvent(w http.ResponseWriter, r *http.Request) {
	a, err := s.events.PublishedAvailability(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, a)
}

func (s *Server) createEvent(w http.ResponseWriter, r *http.Request) {
	var in entities.CreateEventInput
	if err := decodeJSON(r, &in); err != nil {
		s.badRequest(w, r, err)
		return
	}
	event, err := s.events.CreateEvent(r.Context(), in)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, event)
}

func (s *Server) updateEvent(w http.ResponseWriter, r *http.Request) {
	var in entities.UpdateEventInput
	if err := decodeJSON(r, &in); err != nil {
		s.badRequest(w, r, err)
		return
	}
	event, err := s.events.UpdateEvent(r.Context(), chi.URLParam(r, "id"), in)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, event)
}

func (s *Server) publishEvent(w http.ResponseWriter, r *http.Request) {
	event, err := s.events.PublishEvent(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, event)
}

func (s *Server) cancelEvent(w http.ResponseWriter, r *http.Request) {
	event, err := s.events.CancelEvent(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, event)
}

func (s *Server) listEvents(w http.ResponseWriter, r *http.Request) {
	status := domain.EventStatus(r.URL.Query().Get("status"))
	events, err := s.events.ListEvents(r.Context(), status)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, events)
}

func (s *Server) getEvent(w http.ResponseWriter, r *http.Request) {
	a, err := s.events.Availability(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, a)
}

func (s *Server) stats(w http.ResponseWriter, r *http.Request) {
	st, err := s.admin.Stats(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, st)
}
