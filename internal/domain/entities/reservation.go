package entities

import (
	"time"

	"evenza/internal/domain"
)

// Reservation is a participant's claim on one seat of an event.
type Reservation struct {
	ID        string                   `json:"id"`
	EventID   string                   `json:"eventId"`
	UserID    string                   `json:"userId"`
	Status    domain.ReservationStatus `json:"status"`
	CreatedAt time.Time                `json:"createdAt"`
	UpdatedAt time.Time                `json:"updatedAt"`
}

func (r *Reservation) OwnedBy(userID string) bool {
	return r.UserID == userID
}

// ReservationFilter selects reservations; zero fields match everything.
type ReservationFilter struct {
	EventID  string
	UserID   string
	Statuses []domain.ReservationStatus
}

// Matches reports whether r satisfies the filter.
func (f ReservationFilter) Matches(r *Reservation) bool {
	if f.EventID != "" && r.EventID != f.EventID {
		return false
	}
	if f.UserID != "" && r.UserID != f.UserID {
		return false
	}
	if len(f.Statuses) == 0 {
		return true
	}
	for _, s := range f.Statuses {
		if r.Status == s {
			return true
		}
	}
	return false
}

// ReservationView is a reservation with its references, resolved or not.
type ReservationView struct {
	ID        string                   `json:"id"`
	Event     Ref[Event]               `json:"eventId"`
	User      Ref[User]                `json:"userId"`
	Status    domain.ReservationStatus `json:"status"`
	CreatedAt time.Time                `json:"createdAt"`
	UpdatedAt time.Time                `json:"updatedAt"`
}

// View returns r with both references unresolved.
func (r Reservation) View() ReservationView {
	return ReservationView{
		ID:        r.ID,
		Event:     Unresolved[Event](r.EventID),
		User:      Unresolved[User](r.UserID),
		Status:    r.Status,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}
