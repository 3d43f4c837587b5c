package output

import (
	"context"

	"evenza/internal/domain/entities"
)

// ReservationRepository stores reservations. FindByID returns
// domain.ErrReservationNotFound when absent. Update is an atomic
// single-record write.
type ReservationRepository interface {
	Create(ctx context.Context, reservation *entities.Reservation) error
	FindByID(ctx context.Context, id string) (*entities.Reservation, error)
	// Find returns matching reservations ordered by creation time, newest first.
	Find(ctx context.Context, filter entities.ReservationFilter) ([]entities.Reservation, error)
	Count(ctx context.Context, filter entities.ReservationFilter) (int, error)
	Update(ctx context.Context, reservation *entities.Reservation) error
	// Confirm writes reservation as CONFIRMED only while its stored status is
	// PENDING and fewer than capacity reservations of the event are confirmed.
	// The check and the write are atomic in the store, so the seat limit holds
	// even if the caller's lock was lost. Returns the domain.CheckConfirm error
	// or domain.ErrCapacityReached otherwise.
	Confirm(ctx context.Context, reservation *entities.Reservation, capacity int) error
}
