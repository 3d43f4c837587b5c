package domain

// EventStatus is the publication status of an event.
type EventStatus string

const (
	EventDraft     EventStatus = "DRAFT"
	EventPublished EventStatus = "PUBLISHED"
	EventCanceled  EventStatus = "CANCELED"
)

func (s EventStatus) Valid() bool {
	switch s {
	case EventDraft, EventPublished, EventCanceled:
		return true
	}
	return false
}

// EventStatuses lists every event status in display order.
var EventStatuses = []EventStatus{EventDraft, EventPublished, EventCanceled}

// ReservationStatus is the lifecycle status of a reservation.
type ReservationStatus string

const (
	ReservationPending   ReservationStatus = "PENDING"
	ReservationConfirmed ReservationStatus = "CONFIRMED"
	ReservationRefused   ReservationStatus = "REFUSED"
	ReservationCanceled  ReservationStatus = "CANCELED"
)

func (s ReservationStatus) Valid() bool {
	switch s {
	case ReservationPending, ReservationConfirmed, ReservationRefused, ReservationCanceled:
		return true
	}
	return false
}

// Active reports whether the reservation still holds or claims a seat.
func (s ReservationStatus) Active() bool {
	return s == ReservationPending || s == ReservationConfirmed
}

// ReservationStatuses lists every reservation status in display order.
var ReservationStatuses = []ReservationStatus{
	ReservationConfirmed, ReservationPending, ReservationRefused, ReservationCanceled,
}
