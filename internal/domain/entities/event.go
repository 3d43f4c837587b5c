package entities

import (
	"math"
	"time"

	"evenza/internal/domain"
)

// MaxCapacity is the largest capacity the events table can hold (INTEGER).
// The validate tags on the inputs below repeat it literally.
const MaxCapacity = math.MaxInt32

// Event is a schedulable activity with a finite number of seats.
type Event struct {
	ID          string             `json:"id"`
	Title       string             `json:"title"`
	Description string             `json:"description"`
	Location    string             `json:"location"`
	Date        time.Time          `json:"date"`
	Capacity    int                `json:"capacity"`
	Status      domain.EventStatus `json:"status"`
	CreatedAt   time.Time          `json:"createdAt"`
	UpdatedAt   time.Time          `json:"updatedAt"`
}

func (e *Event) IsReservable() bool {
	return domain.Reservable(e.Status)
}

// IsUpcoming reports whether the event is published and not yet started at now.
func (e *Event) IsUpcoming(now time.Time) bool {
	return e.Status == domain.EventPublished && !e.Date.Before(now)
}

// CreateEventInput is the admin payload for a new event. Status is optional
// and defaults to DRAFT.
type CreateEventInput struct {
	Title       string             `json:"title" validate:"required,notblank"`
	Description string             `json:"description" validate:"required,notblank"`
	Location    string             `json:"location" validate:"required,notblank"`
	Date        time.Time          `json:"date" validate:"required"`
	Capacity    int                `json:"capacity" validate:"gte=1,lte=2147483647"`
	Status      domain.EventStatus `json:"status,omitempty" validate:"omitempty,oneof=DRAFT PUBLISHED CANCELED"`
}

// UpdateEventInput is a partial update; nil fields are left untouched.
type UpdateEventInput struct {
	Title       *string    `json:"title,omitempty" validate:"omitempty,notblank"`
	Description *string    `json:"description,omitempty" validate:"omitempty,notblank"`
	Location    *string    `json:"location,omitempty" validate:"omitempty,notblank"`
	Date        *time.Time `json:"date,omitempty"`
	Capacity    *int       `json:"capacity,omitempty" validate:"omitempty,gte=1,lte=2147483647"`
}

// EventAvailability is an event together with its live seat counts.
type EventAvailability struct {
	Event          Event `json:"event"`
	ConfirmedCount int   `json:"confirmedCount"`
	AvailableSpots int   `json:"availableSpots"`
}
