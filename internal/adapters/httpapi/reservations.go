package httpapi

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"evenza/internal/domain"
	"evenza/internal/domain/entities"
)

type createReservationRequest struct {
	EventID string `json:"eventId"`
}

func (s *Server) createReservation(w http.ResponseWriter, r *http.Request) {
	var req createReservationRequest
	if err := decodeJSON(r, &req); err != nil {
		s.badRequest(w, r, err)
		return
	}
	if strings.TrimSpace(req.EventID) == "" {
		s.writeError(w, r, fmt.Errorf("%w: eventId is required", domain.ErrInvalidReservation))
		return
	}
	u, _ := userFrom(r.Context())
	res, err := s.reservations.CreateReservation(r.Context(), req.EventID, u.ID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeReservation(w, r, http.StatusCreated, res)
}

func (s *Server) myReservations(w http.ResponseWriter, r *http.Request) {
	u, _ := userFrom(r.Context())
	list, err := s.reservations.ListByUser(r.Context(), u.ID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeReservations(w, r, list)
}

func (s *Server) getReservation(w http.ResponseWriter, r *http.Request) {
	res, err := s.reservations.GetReservation(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if u, _ := userFrom(r.Context()); !u.IsAdmin() && !res.OwnedBy(u.ID) {
		s.writeError(w, r, domain.ErrReservationNotOwned)
		return
	}
	s.writeReservation(w, r, http.StatusOK, res)
}

func (s *Server) cancelReservation(w http.ResponseWriter, r *http.Request) {
	u, _ := userFrom(r.Context())
	owner := u.ID
	if u.IsAdmin() {
		owner = ""
	}
	res, err := s.reservations.CancelReservation(r.Context(), chi.URLParam(r, "id"), owner)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeReservation(w, r, http.StatusOK, res)
}

func (s *Server) confirmReservation(w http.ResponseWriter, r *http.Request) {
	res, err := s.reservations.ConfirmReservation(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeReservation(w, r, http.StatusOK, res)
}

func (s *Server) refuseReservation(w http.ResponseWriter, r *http.Request) {
	res, err := s.reservations.RefuseReservation(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeReservation(w, r, http.StatusOK, res)
}

// listReservations accepts optional eventId, userId and a comma separated
// status query parameter.
func (s *Server) listReservations(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := entities.ReservationFilter{EventID: q.Get("eventId"), UserID: q.Get("userId")}
	if raw := q.Get("status"); raw != "" {
		for _, part := range strings.Split(raw, ",") {
			st := domain.ReservationStatus(strings.ToUpper(strings.TrimSpace(part)))
			if !st.Valid() {
				s.writeError(w, r, fmt.Errorf("%w: unknown status %q", domain.ErrInvalidReservation, part))
				return
			}
			filter.Statuses = append(filter.Statuses, st)
		}
	}
	list, err := s.reservations.ListReservations(r.Context(), filter)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeReservations(w, r, list)
}

func (s *Server) eventReservations(w http.ResponseWriter, r *http.Request) {
	list, err := s.reservations.ListByEvent(r.Context(), chi.URLParam(r, "eventId"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeReservations(w, r, list)
}

func (s *Server) ticket(w http.ResponseWriter, r *http.Request) {
	u, _ := userFrom(r.Context())
	id := chi.URLParam(r, "id")
	doc, err := s.tickets.IssueTicket(r.Context(), id, u, localeFrom(r.Context()))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", s.tickets.ContentType())
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="ticket-%s.pdf"`, id))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(doc)
}

func (s *Server) writeReservation(w http.ResponseWriter, r *http.Request, status int, res *entities.Reservation) {
	views, err := s.reservations.ResolveEvents(r.Context(), []entities.Reservation{*res})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, status, views[0])
}

func (s *Server) writeReservations(w http.ResponseWriter, r *http.Request, list []entities.Reservation) {
	views, err := s.reservations.ResolveEvents(r.Context(), list)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, views)
}
